// Package tui is the terminal scene viewer. It renders composed scenes on a
// braille canvas and drives the controller with zoom and attribute events,
// so detail switching and recategorization behave exactly as they do for
// API consumers.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/scene"
)

// Model is the bubbletea model for the scene viewer.
type Model struct {
	width  int
	height int

	controller *scene.Controller
	surf       *surface

	// attributes the user can cycle through with tab; index -1 is the
	// neutral, uncategorized view.
	attributes []string
	attrIndex  int

	zoom        float64
	helpVisible bool
	status      string
	err         error
}

// Options configures the viewer.
type Options struct {
	// Envelope is the raw geometry response to ingest.
	Envelope []byte

	// Attributes are the categorization attributes offered for cycling.
	Attributes []string

	// Attribute preselects one of Attributes.
	Attribute string

	// DetailThreshold is the zoom level for the detailed representation;
	// zero selects the default.
	DetailThreshold float64

	// FramingDuration overrides the camera animation length; zero keeps
	// the default.
	FramingDuration time.Duration

	Logger *log.Logger
}

// New builds the viewer model and ingests the geometry response.
func New(opts Options) Model {
	surf := &surface{}
	controller := scene.NewController(surf, opts.DetailThreshold, 0, opts.FramingDuration, opts.Logger)

	m := Model{
		controller:  controller,
		surf:        surf,
		attributes:  opts.Attributes,
		attrIndex:   -1,
		helpVisible: true,
		status:      "loading scene",
	}

	if err := controller.OnGeometryResponse(opts.Envelope); err != nil {
		m.err = err
		m.status = "scene unavailable"
		return m
	}

	for i, attr := range opts.Attributes {
		if attr == opts.Attribute {
			m.attrIndex = i
			controller.SelectAttribute(attr)
			break
		}
	}

	// Adopt the framing zoom so the first keypress zooms relative to the
	// framed view.
	_, camera, _, _, _ := surf.snapshot()
	m.zoom = camera.Zoom
	m.controller.OnZoom(m.zoom)
	m.status = "scene ready"
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }
