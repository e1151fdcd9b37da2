// Package scene orchestrates the visualization: it owns the scene session,
// ingests geometry responses, drives partitioning and framing, and reacts
// to attribute-selection and zoom events.
//
// The session is an explicit value created on mount and destroyed on
// teardown. Components receive it by reference; nothing reaches into
// ambient global view state.
package scene

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/render"
)

// Session holds the mutable state of one mounted scene: the composed layers,
// the camera, the detail switcher, and the rebuild generation counter used
// for last-write-wins.
type Session struct {
	id string

	mu         sync.Mutex
	generation uint64
	scene      render.Scene
	detail     *render.DetailSwitcher
	closed     bool
}

// NewSession creates a session for one scene mount. A detailThreshold of 0
// selects the default; initialZoom seeds the detail switcher.
func NewSession(detailThreshold, initialZoom float64) *Session {
	return &Session{
		id:     uuid.NewString(),
		detail: render.NewDetailSwitcher(detailThreshold, initialZoom),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Begin reserves a rebuild generation. Every rebuild captures a generation
// before composing; only the newest one may commit.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// Commit installs the composed scene if gen is still the newest rebuild.
// A superseded rebuild returns false and its output is discarded; the
// in-flight work itself was never cancelled, its result is simply ignored.
func (s *Session) Commit(gen uint64, sc render.Scene) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation {
		return false
	}
	s.scene = sc
	return true
}

// Scene returns the currently committed scene.
func (s *Session) Scene() render.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene
}

// DetailState returns the current representation state.
func (s *Session) DetailState() render.DetailState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detail.State()
}

// UpdateZoom consumes a zoom change and reports whether the representation
// flipped.
func (s *Session) UpdateZoom(zoom float64) (render.DetailState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detail.Update(zoom)
}

// Close tears the session down. Later commits are rejected.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.scene = render.Scene{}
}
