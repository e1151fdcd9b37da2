package scene

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/envelope"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/geometry"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/render"
)

// Renderer is the surface the controller draws onto. The controller owns
// scene composition; the renderer owns pixels. Implementations: the TUI
// viewer and the JSON artifact writer.
type Renderer interface {
	// ShowLayers replaces the displayed layers.
	ShowLayers(layers []render.Layer)

	// MoveCamera starts an animated camera transition.
	MoveCamera(framing render.CameraFraming)

	// ShowMessage surfaces a user-facing message (partial data, failures).
	ShowMessage(msg string)
}

// Controller orchestrates one scene: it ingests geometry responses, composes
// layers for the selected attribute, frames the camera, and toggles detail
// on zoom changes. All view state lives in the [Session] it owns; the
// controller is safe for concurrent event delivery.
type Controller struct {
	session  *Session
	renderer Renderer
	framing  time.Duration
	logger   *log.Logger

	mu          sync.Mutex
	attribute   string
	collections map[string][]geometry.RenderRecord
	warnings    []string
}

// NewController creates a controller over a fresh session. A framing of 0
// keeps the default camera animation length.
func NewController(renderer Renderer, detailThreshold, initialZoom float64, framing time.Duration, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{
		session:  NewSession(detailThreshold, initialZoom),
		renderer: renderer,
		framing:  framing,
		logger:   logger,
	}
}

// Session exposes the controller's session, e.g. for artifact output.
func (c *Controller) Session() *Session { return c.session }

// Attribute returns the currently selected categorization attribute.
func (c *Controller) Attribute() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attribute
}

// OnGeometryResponse ingests a raw geometry-service envelope: collections
// are located, features built into render records, and the scene recomposed
// under the current attribute selection. A missing collection degrades to
// rendering what is present; only a wholly unusable response is an error.
func (c *Controller) OnGeometryResponse(data []byte) error {
	found, err := envelope.ExtractAll(data,
		envelope.CollectionSurfaces,
		envelope.CollectionBuilding,
		envelope.CollectionContext,
	)
	if err != nil {
		c.renderer.ShowMessage("geometry response held no renderable collections")
		return err
	}

	collections := make(map[string][]geometry.RenderRecord, len(found))
	var warnings []string
	total := 0
	for name, features := range found {
		records, report := geometry.BuildAll(features)
		if report.Skipped > 0 {
			c.logger.Warn("skipped invalid features", "collection", name, "skipped", report.Skipped)
			warnings = append(warnings, fmt.Sprintf("collection %q: %d invalid features skipped", name, report.Skipped))
		}
		warnings = append(warnings, report.Warnings...)
		collections[name] = records
		total += len(records)
	}
	c.logger.Debug("built render records", "records", total, "collections", len(collections))

	c.mu.Lock()
	c.collections = collections
	c.warnings = warnings
	gen := c.session.Begin()
	c.mu.Unlock()

	c.rebuild(gen)
	return nil
}

// SelectAttribute switches the categorization attribute and rebuilds the
// scene. Rebuilds are last-write-wins: when selections arrive faster than
// composition completes, a superseded rebuild's output is discarded and the
// newest selection's scene is the one displayed.
func (c *Controller) SelectAttribute(attribute string) {
	c.mu.Lock()
	c.attribute = attribute
	gen := c.session.Begin()
	c.mu.Unlock()
	c.rebuild(gen)
}

// OnZoom consumes a viewport zoom change. Crossing the detail threshold
// toggles between the prebuilt fill and point representations; no geometry
// is refetched or re-derived.
func (c *Controller) OnZoom(zoom float64) {
	state, changed := c.session.UpdateZoom(zoom)
	if !changed {
		return
	}
	c.logger.Debug("detail state changed", "state", state, "zoom", zoom)
	c.renderer.ShowLayers(c.session.Scene().VisibleLayers(state))
}

// rebuild composes the scene for the captured generation and commits it. A
// stale generation means a newer rebuild superseded this one; its output is
// dropped without touching the renderer.
func (c *Controller) rebuild(gen uint64) {
	c.mu.Lock()
	attribute := c.attribute
	collections := c.collections
	warnings := c.warnings
	c.mu.Unlock()

	sc := Compose(collections, attribute, c.framing)
	sc.Warnings = append(sc.Warnings, warnings...)

	if !c.session.Commit(gen, sc) {
		c.logger.Debug("discarding superseded rebuild", "generation", gen)
		return
	}

	for _, w := range sc.Warnings {
		c.logger.Warn(w)
	}
	c.renderer.ShowLayers(sc.VisibleLayers(c.session.DetailState()))
	c.renderer.MoveCamera(sc.Camera)
}

// Compose builds a full scene from built record collections: categorical
// fill and point layers for the surfaces collection, an always-visible
// context layer, and a camera framing over everything present. A framing of
// 0 keeps the default animation length.
func Compose(collections map[string][]geometry.RenderRecord, attribute string, framing time.Duration) render.Scene {
	var sc render.Scene

	surfaces := collections[envelope.CollectionSurfaces]
	if len(surfaces) == 0 {
		// The building collection stands in when no surfaces exist.
		surfaces = collections[envelope.CollectionBuilding]
	}

	if attribute == "" {
		if len(surfaces) > 0 {
			sc.Layers = append(sc.Layers,
				layerPair("all", "All features", render.NeutralColor, surfaces)...)
		}
	} else {
		part := render.Partition(surfaces, attribute)
		for _, group := range part.Groups {
			id := fmt.Sprintf("%s=%v", attribute, group.Value)
			sc.Layers = append(sc.Layers,
				layerPair(id, fmt.Sprint(group.Value), group.Color, group.Records)...)
		}
		if part.Excluded > 0 {
			sc.Warnings = append(sc.Warnings,
				fmt.Sprintf("%d features without %q excluded from categorization", part.Excluded, attribute))
		}
	}

	if ctx := collections[envelope.CollectionContext]; len(ctx) > 0 {
		sc.Layers = append(sc.Layers, render.Layer{
			ID:            "context",
			Title:         "Context",
			Kind:          render.KindFill,
			Color:         render.NeutralColor,
			AlwaysVisible: true,
			Records:       ctx,
		})
	}

	framed := make([][]geometry.RenderRecord, 0, len(collections))
	for _, records := range collections {
		framed = append(framed, records)
	}
	camera, err := render.Frame(framed...)
	if err != nil {
		// Nothing framable: keep a neutral default view.
		camera = render.DefaultFraming()
		sc.Warnings = append(sc.Warnings, "no framable geometry, keeping default view")
	}
	if framing > 0 {
		camera.Duration = framing
	}
	sc.Camera = camera
	return sc
}

// layerPair builds the detailed (fill) and overview (point) layer for one
// record group. Both are part of the scene; the detail switcher selects
// which one is visible.
func layerPair(id, title string, color render.RGBA, records []geometry.RenderRecord) []render.Layer {
	return []render.Layer{
		{ID: id + "/fill", Title: title, Kind: render.KindFill, Color: color, Records: records},
		{ID: id + "/point", Title: title, Kind: render.KindPoint, Color: color, Records: records},
	}
}
