package geometry

import "github.com/Farzan505/UrbanAI-App-sub000/pkg/errors"

// Extent is an axis-aligned bounding rectangle in geographic degrees.
type Extent struct {
	XMin float64 `json:"xmin"`
	YMin float64 `json:"ymin"`
	XMax float64 `json:"xmax"`
	YMax float64 `json:"ymax"`
}

// Center returns the midpoint of the extent.
func (e Extent) Center() (x, y float64) {
	return (e.XMin + e.XMax) / 2, (e.YMin + e.YMax) / 2
}

// Span returns the larger of the extent's width and height.
func (e Extent) Span() float64 {
	return max(e.XMax-e.XMin, e.YMax-e.YMin)
}

// ExtentOf computes the bounding extent of every exterior-ring point across
// all records in all collections. Hole rings do not contribute: a hole is by
// definition inside its exterior. Returns an EMPTY_GEOMETRY error when no
// points are found; callers fall back to a neutral default view.
func ExtentOf(collections ...[]RenderRecord) (Extent, error) {
	var ext Extent
	found := false

	for _, records := range collections {
		for _, rec := range records {
			for _, poly := range rec.Polygons {
				for _, p := range poly.Exterior() {
					if !found {
						ext = Extent{XMin: p[0], YMin: p[1], XMax: p[0], YMax: p[1]}
						found = true
						continue
					}
					if p[0] < ext.XMin {
						ext.XMin = p[0]
					}
					if p[1] < ext.YMin {
						ext.YMin = p[1]
					}
					if p[0] > ext.XMax {
						ext.XMax = p[0]
					}
					if p[1] > ext.YMax {
						ext.YMax = p[1]
					}
				}
			}
		}
	}

	if !found {
		return Extent{}, errors.New(errors.ErrCodeEmptyGeometry, "no framable points in any collection")
	}
	return ext, nil
}
