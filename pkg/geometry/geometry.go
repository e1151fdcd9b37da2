// Package geometry converts externally-sourced building footprints into
// renderer-ready records.
//
// The geometry service returns GeoJSON-like features with inconsistent ring
// winding, nested hole rings, and a mix of Polygon and MultiPolygon
// encodings. This package normalizes all of that into [RenderRecord] values
// whose ring winding follows the target renderer's convention: exterior
// rings clockwise, hole rings counter-clockwise. Note that this is the
// opposite of the GeoJSON specification (exterior counter-clockwise), so
// well-formed GeoJSON input is always reversed.
package geometry

import "encoding/json"

// Point is a coordinate pair in geographic degrees: [longitude, latitude].
type Point [2]float64

// Ring is a closed sequence of points: the first and last point are equal.
type Ring []Point

// OrientedPolygon is a ring list where ring 0 is the exterior boundary
// (clockwise) and rings 1.. are holes (counter-clockwise).
type OrientedPolygon []Ring

// Exterior returns the outer boundary ring, or nil for an empty polygon.
func (p OrientedPolygon) Exterior() Ring {
	if len(p) == 0 {
		return nil
	}
	return p[0]
}

// Geometry is the raw geometry member of a feature. Coordinates stay raw
// until the type is known: Polygon and MultiPolygon nest differently.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// RawFeature is one feature as delivered by the geometry service.
// It is treated as immutable; building a record copies what it keeps.
type RawFeature struct {
	Geometry   *Geometry      `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// RenderRecord is a renderer-ready feature: normalized polygons plus a
// shallow copy of the source attributes. IDs are sequential within a layer.
//
// MultiPolygon features keep one OrientedPolygon per sub-polygon so that
// hole rings stay associated with their own exterior. Flattening all rings
// of all sub-polygons into one list (as some upstream viewers do) would
// mis-classify the first ring of every subsequent sub-polygon as a hole.
type RenderRecord struct {
	ID         int             `json:"id"`
	Polygons   []OrientedPolygon `json:"polygons"`
	Attributes map[string]any  `json:"attributes"`
}

// Attribute returns the named attribute value, or nil when absent.
func (r RenderRecord) Attribute(name string) any {
	if r.Attributes == nil {
		return nil
	}
	return r.Attributes[name]
}
