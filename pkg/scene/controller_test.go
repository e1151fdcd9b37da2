package scene

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/errors"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/render"
)

type recordingRenderer struct {
	layers   [][]render.Layer
	cameras  []render.CameraFraming
	messages []string
}

func (r *recordingRenderer) ShowLayers(layers []render.Layer)  { r.layers = append(r.layers, layers) }
func (r *recordingRenderer) MoveCamera(f render.CameraFraming) { r.cameras = append(r.cameras, f) }
func (r *recordingRenderer) ShowMessage(msg string)            { r.messages = append(r.messages, msg) }

func (r *recordingRenderer) lastLayers() []render.Layer {
	if len(r.layers) == 0 {
		return nil
	}
	return r.layers[len(r.layers)-1]
}

// envelopeWith builds a geometry response holding a surfaces collection of
// unit squares tagged with the given usage values, plus one context feature.
func envelopeWith(usages ...string) []byte {
	features := ""
	for i, usage := range usages {
		if i > 0 {
			features += ","
		}
		x := float64(i) * 2
		features += fmt.Sprintf(`{
			"geometry": {"type": "Polygon", "coordinates": [[[%f,0],[%f,0],[%f,1],[%f,1],[%f,0]]]},
			"properties": {"usage": %q}
		}`, x, x+1, x+1, x, x, usage)
	}
	return []byte(fmt.Sprintf(`{
		"surfaces": {"type": "FeatureCollection", "features": [%s]},
		"context": [{
			"geometry": {"type": "Polygon", "coordinates": [[[10,10],[11,10],[11,11],[10,11],[10,10]]]},
			"properties": {}
		}]
	}`, features))
}

func TestControllerIngestComposesAndFrames(t *testing.T) {
	renderer := &recordingRenderer{}
	c := NewController(renderer, 0, 18, 0, nil)

	require.NoError(t, c.OnGeometryResponse(envelopeWith("residential", "office")))
	require.NotEmpty(t, renderer.layers)
	require.Len(t, renderer.cameras, 1)

	// Detailed at zoom 18: fill layers plus the always-visible context.
	shown := renderer.lastLayers()
	kinds := map[render.LayerKind]int{}
	hasContext := false
	for _, l := range shown {
		kinds[l.Kind]++
		if l.AlwaysVisible {
			hasContext = true
		}
	}
	assert.Zero(t, kinds[render.KindPoint])
	assert.True(t, hasContext)

	cam := renderer.cameras[0]
	assert.Equal(t, render.FramingDuration, cam.Duration)
	assert.Greater(t, cam.Zoom, 0.0)
}

func TestControllerFramingOverride(t *testing.T) {
	renderer := &recordingRenderer{}
	c := NewController(renderer, 0, 18, 1500*time.Millisecond, nil)

	require.NoError(t, c.OnGeometryResponse(envelopeWith("a")))
	require.Len(t, renderer.cameras, 1)
	assert.Equal(t, 1500*time.Millisecond, renderer.cameras[0].Duration)
}

func TestControllerSelectAttributePartitions(t *testing.T) {
	renderer := &recordingRenderer{}
	c := NewController(renderer, 0, 18, 0, nil)
	require.NoError(t, c.OnGeometryResponse(envelopeWith("a", "b", "a")))

	c.SelectAttribute("usage")

	var fills []render.Layer
	for _, l := range renderer.lastLayers() {
		if l.Kind == render.KindFill && !l.AlwaysVisible {
			fills = append(fills, l)
		}
	}
	require.Len(t, fills, 2)
	// First-seen order fixes both the group order and the palette index.
	assert.Equal(t, "a", fills[0].Title)
	assert.Equal(t, "b", fills[1].Title)
	assert.Equal(t, render.PaletteColor(0), fills[0].Color)
	assert.Equal(t, render.PaletteColor(1), fills[1].Color)
	assert.Len(t, fills[0].Records, 2)
	assert.Len(t, fills[1].Records, 1)
}

func TestControllerUnusableResponse(t *testing.T) {
	renderer := &recordingRenderer{}
	c := NewController(renderer, 0, 18, 0, nil)

	err := c.OnGeometryResponse([]byte(`{"unrelated": 1}`))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeMissingCollection, errors.GetCode(err))
	assert.NotEmpty(t, renderer.messages)
	assert.Empty(t, renderer.layers)
}

func TestControllerZoomTogglesDetail(t *testing.T) {
	renderer := &recordingRenderer{}
	c := NewController(renderer, 0, 18, 0, nil)
	require.NoError(t, c.OnGeometryResponse(envelopeWith("a")))
	passes := len(renderer.layers)

	// Same-state zoom: no render pass.
	c.OnZoom(17)
	assert.Len(t, renderer.layers, passes)

	// Crossing below the threshold switches to the point representation.
	c.OnZoom(10)
	require.Len(t, renderer.layers, passes+1)
	for _, l := range renderer.lastLayers() {
		if !l.AlwaysVisible {
			assert.Equal(t, render.KindPoint, l.Kind)
		}
	}

	// And back.
	c.OnZoom(15)
	require.Len(t, renderer.layers, passes+2)
	for _, l := range renderer.lastLayers() {
		if !l.AlwaysVisible {
			assert.Equal(t, render.KindFill, l.Kind)
		}
	}
}

func TestSessionLastWriteWins(t *testing.T) {
	s := NewSession(0, 18)

	older := s.Begin()
	newer := s.Begin()

	newerScene := render.Scene{Warnings: []string{"newer"}}
	require.True(t, s.Commit(newer, newerScene))

	// The older rebuild finishes late; its output must be discarded.
	assert.False(t, s.Commit(older, render.Scene{Warnings: []string{"older"}}))
	assert.Equal(t, newerScene.Warnings, s.Scene().Warnings)
}

func TestSessionCloseRejectsCommits(t *testing.T) {
	s := NewSession(0, 18)
	gen := s.Begin()
	s.Close()
	assert.False(t, s.Commit(gen, render.Scene{}))
}
