package tui

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/geometry"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/render"
)

// viewport maps lon/lat onto the braille micro-grid. It centers on the
// camera target; zooming relative to the framing zoom narrows the window,
// one zoom level per doubling.
type viewport struct {
	cx, cy float64
	halfW  float64
	halfH  float64
	mw, mh int // micro-grid size
}

func newViewport(ext geometry.Extent, camera render.CameraFraming, zoom float64, w, h int) viewport {
	span := ext.Span()
	if span <= 0 {
		span = 1e-4
	}
	scale := math.Pow(2, zoom-camera.Zoom)
	if scale <= 0 {
		scale = 1
	}
	// Small margin so edge vertices don't sit on the border.
	half := span * 0.55 / scale
	return viewport{
		cx:    camera.TargetX,
		cy:    camera.TargetY,
		halfW: half,
		halfH: half,
		mw:    w * 2,
		mh:    h * 4,
	}
}

// micro projects a point to micro-pixel coordinates. ok is false outside
// the window.
func (v viewport) micro(p geometry.Point) (int, int, bool) {
	nx := (p[0] - (v.cx - v.halfW)) / (2 * v.halfW)
	ny := 1 - (p[1]-(v.cy-v.halfH))/(2*v.halfH)
	if nx < -0.1 || nx > 1.1 || ny < -0.1 || ny > 1.1 {
		return 0, 0, false
	}
	return int(nx * float64(v.mw-1)), int(ny * float64(v.mh-1)), true
}

// drawScene rasterizes the visible layers onto a canvas and returns the
// styled terminal rows plus the per-layer styles used for the legend.
func drawScene(layers []render.Layer, ext geometry.Extent, camera render.CameraFraming, zoom float64, w, h int) []string {
	c := newCanvas(w, h)
	styles := layerStyles(layers)
	vp := newViewport(ext, camera, zoom, w, h)

	for slot, layer := range layers {
		switch layer.Kind {
		case render.KindPoint:
			for _, rec := range layer.Records {
				drawMarker(c, vp, rec, slot)
			}
		default:
			for _, rec := range layer.Records {
				for _, poly := range rec.Polygons {
					drawPolygon(c, vp, poly, slot)
				}
			}
		}
	}

	rows := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			r, slot := c.cell(x, y)
			if slot < 0 {
				b.WriteRune(r)
				continue
			}
			b.WriteString(styles[slot].Render(string(r)))
		}
		rows[y] = b.String()
	}
	return rows
}

func layerStyles(layers []render.Layer) []lipgloss.Style {
	styles := make([]lipgloss.Style, len(layers))
	for i, l := range layers {
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color.Hex()))
	}
	return styles
}

// drawPolygon fills the exterior ring with an even-odd scanline pass and
// strokes every ring. Holes are stroked only; on a braille grid a true
// hole subtraction reads worse than the outline.
func drawPolygon(c *canvas, vp viewport, poly geometry.OrientedPolygon, slot int) {
	var rings [][][2]int
	for _, ring := range poly {
		var projected [][2]int
		for _, p := range ring {
			mx, my, ok := vp.micro(p)
			if !ok {
				continue
			}
			projected = append(projected, [2]int{mx, my})
		}
		if len(projected) >= 3 {
			rings = append(rings, projected)
		}
	}
	if len(rings) == 0 {
		return
	}

	fillRing(c, rings[0], slot)
	for _, ring := range rings {
		for i := range ring {
			a := ring[i]
			b := ring[(i+1)%len(ring)]
			c.line(a[0], a[1], b[0], b[1], slot)
		}
	}
}

// fillRing paints the ring interior scanline by scanline on the micro-grid.
func fillRing(c *canvas, ring [][2]int, slot int) {
	for y := 0; y < c.h*4; y++ {
		var xs []int
		for i := range ring {
			a := ring[i]
			b := ring[(i+1)%len(ring)]
			if a[1] == b[1] {
				continue
			}
			if (y >= a[1] && y < b[1]) || (y >= b[1] && y < a[1]) {
				t := float64(y-a[1]) / float64(b[1]-a[1])
				xs = append(xs, a[0]+int(t*float64(b[0]-a[0])))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := xs[i]; x <= xs[i+1]; x++ {
				c.set(x, y, slot)
			}
		}
	}
}

// drawMarker plots a small cross at the record's centroid.
func drawMarker(c *canvas, vp viewport, rec geometry.RenderRecord, slot int) {
	cx, cy, ok := centroid(rec)
	if !ok {
		return
	}
	mx, my, ok := vp.micro(geometry.Point{cx, cy})
	if !ok {
		return
	}
	c.set(mx, my, slot)
	c.set(mx-1, my, slot)
	c.set(mx+1, my, slot)
	c.set(mx, my-1, slot)
	c.set(mx, my+1, slot)
}

// centroid averages the exterior ring vertices of the first polygon. Good
// enough for a point symbol; this is not an area-weighted centroid.
func centroid(rec geometry.RenderRecord) (float64, float64, bool) {
	if len(rec.Polygons) == 0 {
		return 0, 0, false
	}
	ext := rec.Polygons[0].Exterior()
	if len(ext) == 0 {
		return 0, 0, false
	}
	var sx, sy float64
	for _, p := range ext {
		sx += p[0]
		sy += p[1]
	}
	n := float64(len(ext))
	return sx / n, sy / n, true
}
