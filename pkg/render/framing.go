package render

import (
	"math"
	"time"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/geometry"
)

// CameraFraming positions the camera over a feature collection. The camera
// always centers on the extent midpoint; zoom and tilt follow a size-based
// heuristic with two regimes.
type CameraFraming struct {
	TargetX float64 `json:"target_x"`
	TargetY float64 `json:"target_y"`
	Zoom    float64 `json:"zoom"`
	Tilt    float64 `json:"tilt"`
	Heading float64 `json:"heading"`

	// Duration is the intended length of the animated camera move. The
	// transition is explicit and time-bounded, never an instantaneous cut.
	Duration time.Duration `json:"duration"`
}

// Framing heuristic constants. The close regime covers near-building-scale
// extents; beyond it, zoom decreases on a log scale of the span.
const (
	// closeSpan is the small-angle threshold in degrees below which the
	// close regime applies. 0.002° is roughly 200m at mid latitudes.
	closeSpan = 0.002

	closeZoom = 18.0
	closeTilt = 60.0

	farTilt = 30.0
	minZoom = 3.0

	// FramingDuration is the camera move time. A UX parameter, not a
	// correctness constraint.
	FramingDuration = 3 * time.Second
)

// Frame computes a camera framing for the given record collections. Only
// exterior-ring points contribute to the extent. Returns an EMPTY_GEOMETRY
// error when no points exist; callers keep a neutral default view.
func Frame(collections ...[]geometry.RenderRecord) (CameraFraming, error) {
	ext, err := geometry.ExtentOf(collections...)
	if err != nil {
		return CameraFraming{}, err
	}
	return FrameExtent(ext), nil
}

// FrameExtent derives a framing from an already-computed extent.
func FrameExtent(ext geometry.Extent) CameraFraming {
	cx, cy := ext.Center()
	f := CameraFraming{
		TargetX:  cx,
		TargetY:  cy,
		Heading:  0,
		Duration: FramingDuration,
	}

	span := ext.Span()
	if span < closeSpan {
		f.Zoom = closeZoom
		f.Tilt = closeTilt
		return f
	}

	// Far regime: each doubling of the span costs one zoom level, so zoom
	// is monotonically non-increasing in span.
	f.Zoom = max(closeZoom-math.Log2(span/closeSpan), minZoom)
	f.Tilt = farTilt
	return f
}

// DefaultFraming is the neutral view used when nothing is framable.
func DefaultFraming() CameraFraming {
	return CameraFraming{Zoom: minZoom, Duration: FramingDuration}
}
