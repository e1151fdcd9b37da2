package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/geometry"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/render"
)

var viewerEnvelope = []byte(`{
	"surfaces": [
		{"geometry": {"type": "Polygon", "coordinates": [[[11.56,48.13],[11.561,48.13],[11.561,48.131],[11.56,48.131],[11.56,48.13]]]},
		 "properties": {"usage": "residential"}},
		{"geometry": {"type": "Polygon", "coordinates": [[[11.562,48.13],[11.563,48.13],[11.563,48.131],[11.562,48.131],[11.562,48.13]]]},
		 "properties": {"usage": "office"}}
	]
}`)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestNewIngestsScene(t *testing.T) {
	m := New(Options{Envelope: viewerEnvelope, Attributes: []string{"usage"}})
	require.NoError(t, m.err)

	layers, _, _, framed, _ := m.surf.snapshot()
	assert.True(t, framed)
	assert.NotEmpty(t, layers)
	// Close regime: a building-scale extent frames at the detailed zoom.
	assert.Equal(t, render.StateDetailed, m.controller.Session().DetailState())
}

func TestZoomOutSwitchesToOverview(t *testing.T) {
	m := New(Options{Envelope: viewerEnvelope, Attributes: []string{"usage"}})
	require.NoError(t, m.err)

	model := tea.Model(m)
	for i := 0; i < 10; i++ {
		model, _ = model.Update(keyMsg("-"))
	}
	got := model.(Model)
	assert.Equal(t, render.StateOverview, got.controller.Session().DetailState())

	layers, _, _, _, _ := got.surf.snapshot()
	for _, l := range layers {
		if !l.AlwaysVisible {
			assert.Equal(t, render.KindPoint, l.Kind)
		}
	}
}

func TestCycleAttribute(t *testing.T) {
	m := New(Options{Envelope: viewerEnvelope, Attributes: []string{"usage"}})
	require.NoError(t, m.err)
	assert.Equal(t, -1, m.attrIndex)

	model, _ := tea.Model(m).Update(tea.KeyMsg(tea.Key{Type: tea.KeyTab}))
	got := model.(Model)
	assert.Equal(t, 0, got.attrIndex)
	assert.Equal(t, "usage", got.controller.Attribute())

	model, _ = model.Update(tea.KeyMsg(tea.Key{Type: tea.KeyTab}))
	got = model.(Model)
	assert.Equal(t, -1, got.attrIndex)
	assert.Equal(t, "", got.controller.Attribute())
}

func TestViewportProjection(t *testing.T) {
	ext := geometry.Extent{XMin: 0, YMin: 0, XMax: 1, YMax: 1}
	camera := render.FrameExtent(ext)
	vp := newViewport(ext, camera, camera.Zoom, 40, 20)

	// The extent center projects to the middle of the micro-grid.
	mx, my, ok := vp.micro(geometry.Point{0.5, 0.5})
	require.True(t, ok)
	assert.InDelta(t, vp.mw/2, mx, 2)
	assert.InDelta(t, vp.mh/2, my, 2)

	// Far outside the window is rejected.
	_, _, ok = vp.micro(geometry.Point{50, 50})
	assert.False(t, ok)
}

func TestQuitKey(t *testing.T) {
	m := New(Options{Envelope: viewerEnvelope})
	_, cmd := tea.Model(m).Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
