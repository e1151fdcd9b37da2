// Package envelope locates feature collections inside the geometry
// service's response envelope.
//
// The service wraps its payload inconsistently: a named sub-collection may
// sit at the top level of the JSON document or one level deep under an
// arbitrary key, and may be either a bare feature array or a GeoJSON-style
// FeatureCollection. Instead of scanning unknown keys ad hoc, each known
// collection name expands to an explicit, ordered list of locations that
// are probed in priority order; the first structurally valid match wins.
package envelope

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/errors"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/geometry"
)

// Well-known collection names in geometry responses.
const (
	CollectionSurfaces = "surfaces"
	CollectionBuilding = "building"
	CollectionContext  = "context"
)

// topLevelPaths returns the ordered gjson path expressions probed at the
// document root: the bare feature array first, then the FeatureCollection
// form. The same pair is probed again one level deep under every top-level
// key, in document order.
func topLevelPaths(name string) []string {
	return []string{
		name,
		name + ".features",
	}
}

// Extract locates the named collection in the response document and decodes
// its features. Returns a MISSING_COLLECTION error when no probe location
// holds a feature array; callers degrade gracefully and render what is
// present.
func Extract(data []byte, name string) ([]geometry.RawFeature, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "response envelope is not valid JSON")
	}

	doc := gjson.ParseBytes(data)
	if features, ok := probe(doc, name); ok {
		return features, nil
	}

	// One level deep under an arbitrary key.
	var features []geometry.RawFeature
	found := false
	doc.ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			return true
		}
		if f, ok := probe(value, name); ok {
			features, found = f, true
			return false
		}
		return true
	})
	if found {
		return features, nil
	}
	return nil, errors.New(errors.ErrCodeMissingCollection, "collection %q not found in response", name)
}

// ExtractAll probes the document for every given collection name. Missing
// collections are skipped; only when none of the names resolve does it
// return a MISSING_COLLECTION error.
func ExtractAll(data []byte, names ...string) (map[string][]geometry.RawFeature, error) {
	out := make(map[string][]geometry.RawFeature, len(names))
	for _, name := range names {
		features, err := Extract(data, name)
		if err != nil {
			if errors.Is(err, errors.ErrCodeMissingCollection) {
				continue
			}
			return nil, err
		}
		out[name] = features
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeMissingCollection, "none of the expected collections %v found in response", names)
	}
	return out, nil
}

// probe tries the ordered locations for name within node and decodes the
// first structurally valid feature array.
func probe(node gjson.Result, name string) ([]geometry.RawFeature, bool) {
	for _, path := range topLevelPaths(name) {
		match := node.Get(path)
		if !match.IsArray() {
			continue
		}
		features, err := decodeFeatures(match)
		if err != nil {
			// Structurally an array but not features; keep probing.
			continue
		}
		return features, true
	}
	return nil, false
}

func decodeFeatures(match gjson.Result) ([]geometry.RawFeature, error) {
	var features []geometry.RawFeature
	if err := json.Unmarshal([]byte(match.Raw), &features); err != nil {
		return nil, err
	}
	if len(features) == 0 {
		return features, nil
	}
	for _, f := range features {
		// A feature array must carry geometry objects somewhere; an
		// array of scalars or unrelated objects is not a match.
		if f.Geometry != nil {
			return features, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "array holds no feature objects")
}
