// Package render turns normalized geometry records into renderer-ready
// scene layers: categorical color assignment, partitioning by attribute,
// camera framing, and zoom-based detail switching.
//
// Nothing in this package talks to a rendering surface. The outputs are
// plain values ([Layer], [CameraFraming]) that the API, the CLI artifact
// writer, and the terminal viewer all consume.
package render

import "fmt"

// RGBA is an opaque color. Alpha is carried explicitly because the scene
// output is serialized for an external renderer that expects four channels.
type RGBA [4]uint8

// Hex returns the color as a #rrggbb string, ignoring alpha.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// palette is the fixed ordered set of categorical colors. Twelve opaque
// colors, cycled by first-seen index mod 12.
var palette = [12]RGBA{
	{31, 119, 180, 255},  // blue
	{255, 127, 14, 255},  // orange
	{44, 160, 44, 255},   // green
	{214, 39, 40, 255},   // red
	{148, 103, 189, 255}, // purple
	{140, 86, 75, 255},   // brown
	{227, 119, 194, 255}, // pink
	{127, 127, 127, 255}, // gray
	{188, 189, 34, 255},  // olive
	{23, 190, 207, 255},  // cyan
	{174, 199, 232, 255}, // light blue
	{255, 187, 120, 255}, // light orange
}

// NeutralColor is the fixed color for the always-visible context collection
// that renders independently of any categorical partition.
var NeutralColor = RGBA{200, 200, 200, 255}

// PaletteSize is the number of colors before the palette cycles.
const PaletteSize = len(palette)

// PaletteColor returns the palette entry for a first-seen index.
func PaletteColor(index int) RGBA {
	return palette[index%PaletteSize]
}

// ColorAssigner maps attribute values to stable palette colors within one
// render pass. The color of a value is determined by the position of its
// first occurrence, so the same ordered record list always yields the same
// assignment. Across passes the assignment may shift when the set of
// distinct values changes; that is an accepted property of categorical
// coloring, not a defect.
type ColorAssigner struct {
	order map[string]int
}

// NewColorAssigner creates an empty assigner for one render pass.
func NewColorAssigner() *ColorAssigner {
	return &ColorAssigner{order: make(map[string]int)}
}

// CategoryKey canonicalizes an attribute value for grouping. Decoded JSON
// properties can be arrays or objects, which are not comparable and cannot
// be used as map keys directly, so values are keyed by their printed form.
func CategoryKey(value any) string {
	return fmt.Sprint(value)
}

// ColorFor returns the color for value, registering it on first sight.
func (a *ColorAssigner) ColorFor(value any) RGBA {
	key := CategoryKey(value)
	idx, ok := a.order[key]
	if !ok {
		idx = len(a.order)
		a.order[key] = idx
	}
	return PaletteColor(idx)
}

// Seen returns the number of distinct values registered so far.
func (a *ColorAssigner) Seen() int {
	return len(a.order)
}
