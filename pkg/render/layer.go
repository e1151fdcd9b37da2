package render

import "github.com/Farzan505/UrbanAI-App-sub000/pkg/geometry"

// LayerKind selects the renderer for a layer.
type LayerKind string

const (
	// KindFill renders filled polygons (the detailed representation).
	KindFill LayerKind = "fill"

	// KindPoint renders point symbols at polygon centroids (the overview
	// representation).
	KindPoint LayerKind = "point"
)

// Layer is one renderer-ready layer of a scene: a set of records drawn with
// one color by one renderer kind.
type Layer struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Kind  LayerKind `json:"kind"`
	Color RGBA      `json:"color"`

	// AlwaysVisible marks context layers that render in every detail
	// state, outside the categorical partition.
	AlwaysVisible bool `json:"always_visible"`

	Records []geometry.RenderRecord `json:"records"`
}

// Scene is one render pass: the layers to display plus the camera command.
// It is what the core emits to the rendering surface; the surface itself is
// owned elsewhere.
type Scene struct {
	Layers   []Layer       `json:"layers"`
	Camera   CameraFraming `json:"camera"`
	Warnings []string      `json:"warnings,omitempty"`
}

// VisibleLayers returns the layers to display for the given detail state:
// fill layers when detailed, point layers when overview. Both
// representations are prebuilt into the scene; this is a pure visibility
// selection. Context layers are returned in every state.
func (s Scene) VisibleLayers(state DetailState) []Layer {
	want := KindFill
	if state == StateOverview {
		want = KindPoint
	}
	var out []Layer
	for _, l := range s.Layers {
		if l.AlwaysVisible || l.Kind == want {
			out = append(out, l)
		}
	}
	return out
}
