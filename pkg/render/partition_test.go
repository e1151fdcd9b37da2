package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/geometry"
)

func recordsWithTypes(values ...any) []geometry.RenderRecord {
	records := make([]geometry.RenderRecord, len(values))
	for i, v := range values {
		attrs := map[string]any{}
		if v != nil {
			attrs["type"] = v
		}
		records[i] = geometry.RenderRecord{ID: i, Attributes: attrs}
	}
	return records
}

func TestPartitionFirstSeenOrder(t *testing.T) {
	// Five features with type values A,B,A,C,A: three groups in order
	// A,B,C with sizes 3,1,1 and palette colors at index 0,1,2.
	result := Partition(recordsWithTypes("A", "B", "A", "C", "A"), "type")

	require.Len(t, result.Groups, 3)
	assert.Zero(t, result.Excluded)

	assert.Equal(t, "A", result.Groups[0].Value)
	assert.Equal(t, "B", result.Groups[1].Value)
	assert.Equal(t, "C", result.Groups[2].Value)

	assert.Len(t, result.Groups[0].Records, 3)
	assert.Len(t, result.Groups[1].Records, 1)
	assert.Len(t, result.Groups[2].Records, 1)

	assert.Equal(t, PaletteColor(0), result.Groups[0].Color)
	assert.Equal(t, PaletteColor(1), result.Groups[1].Color)
	assert.Equal(t, PaletteColor(2), result.Groups[2].Color)
}

func TestPartitionExcludesNil(t *testing.T) {
	records := recordsWithTypes("A", nil, "B", nil)
	result := Partition(records, "type")

	assert.Equal(t, 2, result.Excluded)

	total := 0
	for _, g := range result.Groups {
		total += len(g.Records)
	}
	assert.Equal(t, len(records)-result.Excluded, total,
		"group sizes must sum to input size minus excluded records")
}

func TestPartitionIsDisjoint(t *testing.T) {
	result := Partition(recordsWithTypes("A", "B", "A", "C", "B", "A"), "type")

	seen := make(map[int]bool)
	for _, g := range result.Groups {
		for _, rec := range g.Records {
			assert.False(t, seen[rec.ID], "record %d appears in more than one group", rec.ID)
			seen[rec.ID] = true
		}
	}
}

func TestPartitionCompositeAttributeValues(t *testing.T) {
	// Decoded JSON can carry arrays or objects in a property. Those values
	// are not comparable, so they must group by their printed form rather
	// than crash the pass.
	records := recordsWithTypes(
		[]any{"residential", "office"},
		"residential",
		[]any{"residential", "office"},
		map[string]any{"primary": "retail"},
	)
	result := Partition(records, "type")

	require.Len(t, result.Groups, 3)
	assert.Zero(t, result.Excluded)
	assert.Len(t, result.Groups[0].Records, 2, "equal arrays land in one group")
	assert.Equal(t, []any{"residential", "office"}, result.Groups[0].Value)
	assert.Len(t, result.Groups[1].Records, 1)
	assert.Len(t, result.Groups[2].Records, 1)
}

func TestColorAssignerDeterminism(t *testing.T) {
	a := NewColorAssigner()
	first := a.ColorFor("A")
	a.ColorFor("B")
	assert.Equal(t, first, a.ColorFor("A"), "same value must keep its color within a pass")
	assert.Equal(t, 2, a.Seen())
}

func TestPaletteCycles(t *testing.T) {
	assert.Equal(t, PaletteColor(0), PaletteColor(PaletteSize))
	assert.Equal(t, PaletteColor(5), PaletteColor(5+2*PaletteSize))
}
