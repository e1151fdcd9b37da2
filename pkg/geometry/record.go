package geometry

import (
	"encoding/json"
	"fmt"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/errors"
)

// Geometry types accepted by the builder. Other GeoJSON types (Point,
// LineString, ...) are unsupported for building envelopes.
const (
	TypePolygon      = "Polygon"
	TypeMultiPolygon = "MultiPolygon"
)

// Build converts one raw feature into a render record with the given
// sequential ID. It returns an INVALID_GEOMETRY error when the geometry is
// absent, has empty coordinates, or is neither Polygon nor MultiPolygon.
// Degenerate rings are reported as warnings, not errors.
func Build(f RawFeature, id int) (RenderRecord, []string, error) {
	if f.Geometry == nil || len(f.Geometry.Coordinates) == 0 {
		return RenderRecord{}, nil, errors.New(errors.ErrCodeInvalidGeometry, "feature %d: geometry is missing", id)
	}

	var polys []OrientedPolygon
	var warnings []string

	switch f.Geometry.Type {
	case TypePolygon:
		rings, err := decodeRings(f.Geometry.Coordinates)
		if err != nil {
			return RenderRecord{}, nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "feature %d: malformed polygon coordinates", id)
		}
		poly, w := orientPolygon(rings, id, 0)
		polys = append(polys, poly)
		warnings = append(warnings, w...)

	case TypeMultiPolygon:
		var raw []json.RawMessage
		if err := json.Unmarshal(f.Geometry.Coordinates, &raw); err != nil {
			return RenderRecord{}, nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "feature %d: malformed multipolygon coordinates", id)
		}
		for part, sub := range raw {
			rings, err := decodeRings(sub)
			if err != nil {
				return RenderRecord{}, nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "feature %d: malformed multipolygon part %d", id, part)
			}
			if len(rings) == 0 {
				warnings = append(warnings, fmt.Sprintf("feature %d: multipolygon part %d has no rings, dropped", id, part))
				continue
			}
			poly, w := orientPolygon(rings, id, part)
			polys = append(polys, poly)
			warnings = append(warnings, w...)
		}

	default:
		return RenderRecord{}, nil, errors.New(errors.ErrCodeInvalidGeometry, "feature %d: unsupported geometry type %q", id, f.Geometry.Type)
	}

	if len(polys) == 0 || len(polys[0]) == 0 {
		return RenderRecord{}, nil, errors.New(errors.ErrCodeInvalidGeometry, "feature %d: empty coordinates", id)
	}

	return RenderRecord{
		ID:         id,
		Polygons:   polys,
		Attributes: copyAttributes(f.Properties),
	}, warnings, nil
}

// BuildReport summarizes a batch build: features skipped because of invalid
// geometry and data-quality warnings from degenerate rings.
type BuildReport struct {
	Skipped  int
	Errors   []error
	Warnings []string
}

// BuildAll converts a feature collection into render records with sequential
// IDs starting at 0. Invalid features are skipped and recorded in the
// report; they never abort the batch.
func BuildAll(features []RawFeature) ([]RenderRecord, BuildReport) {
	records := make([]RenderRecord, 0, len(features))
	var report BuildReport

	for _, f := range features {
		rec, warnings, err := Build(f, len(records))
		if err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, err)
			continue
		}
		report.Warnings = append(report.Warnings, warnings...)
		records = append(records, rec)
	}
	return records, report
}

func orientPolygon(rings []Ring, id, part int) (OrientedPolygon, []string) {
	fixed, degenerate := FixOrientation(rings)
	warnings := make([]string, 0, len(degenerate))
	for _, idx := range degenerate {
		warnings = append(warnings, fmt.Sprintf("feature %d: part %d ring %d has fewer than 3 distinct points, left as-is", id, part, idx))
	}
	return OrientedPolygon(fixed), warnings
}

func decodeRings(coords json.RawMessage) ([]Ring, error) {
	var raw [][][]float64
	if err := json.Unmarshal(coords, &raw); err != nil {
		return nil, err
	}
	rings := make([]Ring, 0, len(raw))
	for _, rawRing := range raw {
		ring := make(Ring, 0, len(rawRing))
		for _, pt := range rawRing {
			if len(pt) < 2 {
				return nil, fmt.Errorf("coordinate with %d components", len(pt))
			}
			ring = append(ring, Point{pt[0], pt[1]})
		}
		rings = append(rings, ring)
	}
	return rings, nil
}

func copyAttributes(props map[string]any) map[string]any {
	attrs := make(map[string]any, len(props))
	for k, v := range props {
		attrs[k] = v
	}
	return attrs
}
