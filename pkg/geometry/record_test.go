package geometry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/errors"
)

func polygonFeature(t *testing.T, coords string, props map[string]any) RawFeature {
	t.Helper()
	return RawFeature{
		Geometry:   &Geometry{Type: TypePolygon, Coordinates: json.RawMessage(coords)},
		Properties: props,
	}
}

func TestBuildPolygon(t *testing.T) {
	f := polygonFeature(t, `[[[0,0],[1,0],[1,1],[0,1],[0,0]]]`, map[string]any{"function": "residential"})

	rec, warnings, err := Build(f, 7)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 7, rec.ID)
	require.Len(t, rec.Polygons, 1)
	assert.True(t, rec.Polygons[0].Exterior().IsClockwise())
	assert.Equal(t, "residential", rec.Attribute("function"))
}

func TestBuildCopiesAttributes(t *testing.T) {
	props := map[string]any{"function": "office"}
	f := polygonFeature(t, `[[[0,0],[1,0],[1,1],[0,1],[0,0]]]`, props)

	rec, _, err := Build(f, 0)
	require.NoError(t, err)

	props["function"] = "mutated"
	assert.Equal(t, "office", rec.Attribute("function"), "attributes must be a copy of the source properties")
}

func TestBuildMultiPolygonKeepsPartGrouping(t *testing.T) {
	// Two sub-polygons; the second one carries a hole. Per-part grouping
	// means that hole stays attached to the second exterior.
	coords := `[
		[[[0,0],[1,0],[1,1],[0,1],[0,0]]],
		[[[10,10],[14,10],[14,14],[10,14],[10,10]],
		 [[11,11],[13,11],[13,13],[11,13],[11,11]]]
	]`
	f := RawFeature{Geometry: &Geometry{Type: TypeMultiPolygon, Coordinates: json.RawMessage(coords)}}

	rec, warnings, err := Build(f, 0)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rec.Polygons, 2)
	assert.Len(t, rec.Polygons[0], 1)
	require.Len(t, rec.Polygons[1], 2)
	assert.True(t, rec.Polygons[1][0].IsClockwise(), "second exterior must be an exterior, not a hole")
	assert.False(t, rec.Polygons[1][1].IsClockwise(), "hole of the second part must stay a hole")
}

func TestBuildMultiPolygonDropsEmptyPart(t *testing.T) {
	coords := `[
		[[[0,0],[1,0],[1,1],[0,1],[0,0]]],
		[]
	]`
	f := RawFeature{Geometry: &Geometry{Type: TypeMultiPolygon, Coordinates: json.RawMessage(coords)}}

	rec, warnings, err := Build(f, 0)
	require.NoError(t, err)
	require.Len(t, rec.Polygons, 1, "empty part must be dropped, not kept as an empty polygon")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "part 1")
}

func TestBuildMultiPolygonAllPartsEmpty(t *testing.T) {
	f := RawFeature{Geometry: &Geometry{Type: TypeMultiPolygon, Coordinates: json.RawMessage(`[[],[]]`)}}

	_, _, err := Build(f, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidGeometry), "err = %v", err)
}

func TestBuildFailures(t *testing.T) {
	tests := []struct {
		name    string
		feature RawFeature
	}{
		{name: "nil geometry", feature: RawFeature{}},
		{
			name:    "empty coordinates",
			feature: polygonFeature(t, `[]`, nil),
		},
		{
			name: "unsupported type",
			feature: RawFeature{
				Geometry: &Geometry{Type: "LineString", Coordinates: json.RawMessage(`[[0,0],[1,1]]`)},
			},
		},
		{
			name:    "malformed coordinates",
			feature: polygonFeature(t, `[[[0],[1,1]]]`, nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Build(tt.feature, 0)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidGeometry), "err = %v", err)
		})
	}
}

func TestBuildAllSkipsInvalid(t *testing.T) {
	features := []RawFeature{
		polygonFeature(t, `[[[0,0],[1,0],[1,1],[0,1],[0,0]]]`, map[string]any{"type": "A"}),
		{}, // invalid: no geometry
		polygonFeature(t, `[[[2,2],[3,2],[3,3],[2,3],[2,2]]]`, map[string]any{"type": "B"}),
	}

	records, report := BuildAll(features)
	require.Len(t, records, 2)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, report.Errors, 1)

	// IDs are sequential over the surviving records.
	assert.Equal(t, 0, records[0].ID)
	assert.Equal(t, 1, records[1].ID)
}
