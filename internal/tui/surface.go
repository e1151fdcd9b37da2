package tui

import (
	"sync"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/geometry"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/render"
)

// surface is the rendering target the controller draws onto. The bubbletea
// model reads it on every View; the controller writes it from Update
// handlers, so access stays on the program goroutine, but the mutex keeps it
// safe for background rebuilds as well.
type surface struct {
	mu      sync.Mutex
	layers  []render.Layer
	camera  render.CameraFraming
	extent  geometry.Extent
	framed  bool
	message string
}

func (s *surface) ShowLayers(layers []render.Layer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layers = layers

	pools := make([][]geometry.RenderRecord, 0, len(layers))
	for _, l := range layers {
		pools = append(pools, l.Records)
	}
	ext, err := geometry.ExtentOf(pools...)
	s.framed = err == nil
	if err == nil {
		s.extent = ext
	}
}

func (s *surface) MoveCamera(f render.CameraFraming) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera = f
}

func (s *surface) ShowMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = msg
}

// snapshot returns a consistent copy for one view pass.
func (s *surface) snapshot() (layers []render.Layer, camera render.CameraFraming, ext geometry.Extent, framed bool, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layers, s.camera, s.extent, s.framed, s.message
}
