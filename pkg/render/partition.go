package render

import "github.com/Farzan505/UrbanAI-App-sub000/pkg/geometry"

// CategoryGroup is one render group of a categorical partition: all records
// sharing one attribute value, plus the palette color assigned to it.
type CategoryGroup struct {
	Value   any                     `json:"value"`
	Color   RGBA                    `json:"color"`
	Records []geometry.RenderRecord `json:"records"`
}

// PartitionResult carries the groups plus the count of records excluded
// because their attribute value was nil or absent. Excluded records are
// simply not part of the categorical view; they are not an error.
type PartitionResult struct {
	Groups   []CategoryGroup
	Excluded int
}

// Partition groups records by the values of the given attribute. Distinct
// values keep their first-seen order (not sorted), which also fixes their
// palette index. The groups are a true partition of the non-nil records:
// every such record lands in exactly one group. Grouping uses [CategoryKey],
// so composite JSON values (arrays, objects) form groups like any other
// value instead of aborting the pass.
func Partition(records []geometry.RenderRecord, attribute string) PartitionResult {
	assigner := NewColorAssigner()
	index := make(map[string]int)
	var result PartitionResult

	for _, rec := range records {
		value := rec.Attribute(attribute)
		if value == nil {
			result.Excluded++
			continue
		}
		key := CategoryKey(value)
		i, ok := index[key]
		if !ok {
			i = len(result.Groups)
			index[key] = i
			result.Groups = append(result.Groups, CategoryGroup{
				Value: value,
				Color: assigner.ColorFor(value),
			})
		}
		result.Groups[i].Records = append(result.Groups[i].Records, rec)
	}
	return result
}
