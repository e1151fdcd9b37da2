package geometry

// SignedArea computes the shoelace-style sum Σ (x[i+1]-x[i])·(y[i+1]+y[i])
// over the ring. In this coordinate convention a positive sum denotes
// clockwise winding.
func SignedArea(r Ring) float64 {
	var sum float64
	for i := 0; i < len(r)-1; i++ {
		sum += (r[i+1][0] - r[i][0]) * (r[i+1][1] + r[i][1])
	}
	return sum
}

// IsClockwise reports whether the ring winds clockwise.
func (r Ring) IsClockwise() bool {
	return SignedArea(r) > 0
}

// FixOrientation normalizes ring winding for the target renderer: ring 0
// (the exterior) is made clockwise, rings 1.. (holes) counter-clockwise.
// Ring count and point counts are preserved; only point order within a ring
// may be reversed. The input is never modified.
//
// Rings with fewer than 3 distinct points cannot be classified and are
// passed through unchanged; their indexes are returned as degenerate so the
// caller can report a data-quality warning without failing the feature.
func FixOrientation(rings []Ring) (fixed []Ring, degenerate []int) {
	fixed = make([]Ring, len(rings))
	for i, ring := range rings {
		if distinctPoints(ring) < 3 {
			fixed[i] = ring
			degenerate = append(degenerate, i)
			continue
		}
		wantClockwise := i == 0
		if ring.IsClockwise() != wantClockwise {
			fixed[i] = reversed(ring)
		} else {
			fixed[i] = ring
		}
	}
	return fixed, degenerate
}

// reversed returns a copy of the ring with point order reversed.
func reversed(r Ring) Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// distinctPoints counts unique coordinates in the ring. A closed triangle
// has 4 points but 3 distinct ones.
func distinctPoints(r Ring) int {
	seen := make(map[Point]struct{}, len(r))
	for _, p := range r {
		seen[p] = struct{}{}
	}
	return len(seen)
}
