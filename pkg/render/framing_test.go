package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/errors"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/geometry"
)

func squareRecord(x, y, size float64) geometry.RenderRecord {
	ring := geometry.Ring{
		{x, y}, {x, y + size}, {x + size, y + size}, {x + size, y}, {x, y},
	}
	return geometry.RenderRecord{Polygons: []geometry.OrientedPolygon{{ring}}}
}

func TestFrameCentersOnExtent(t *testing.T) {
	f, err := Frame([]geometry.RenderRecord{squareRecord(10, 20, 0.001)})
	require.NoError(t, err)

	assert.InDelta(t, 10.0005, f.TargetX, 1e-9)
	assert.InDelta(t, 20.0005, f.TargetY, 1e-9)
	assert.Equal(t, FramingDuration, f.Duration, "camera move must be time-bounded")
}

func TestFrameCloseRegime(t *testing.T) {
	// A single building footprint well below the small-angle threshold.
	f, err := Frame([]geometry.RenderRecord{squareRecord(11.58, 48.14, 0.0005)})
	require.NoError(t, err)

	assert.Equal(t, closeZoom, f.Zoom)
	assert.Equal(t, closeTilt, f.Tilt)
}

func TestFrameZoomMonotonicity(t *testing.T) {
	spans := []float64{0.001, 0.003, 0.01, 0.1, 1, 10, 100}
	prev := closeZoom + 1
	for _, span := range spans {
		f, err := Frame([]geometry.RenderRecord{squareRecord(0, 0, span)})
		require.NoError(t, err)
		assert.LessOrEqual(t, f.Zoom, prev, "zoom must be non-increasing as span grows (span=%v)", span)
		assert.GreaterOrEqual(t, f.Zoom, minZoom)
		prev = f.Zoom
	}
}

func TestFrameTargetWithinExtent(t *testing.T) {
	records := []geometry.RenderRecord{
		squareRecord(-3, 7, 2),
		squareRecord(5, -1, 0.5),
	}
	ext, err := geometry.ExtentOf(records)
	require.NoError(t, err)

	f, err := Frame(records)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, f.TargetX, ext.XMin)
	assert.LessOrEqual(t, f.TargetX, ext.XMax)
	assert.GreaterOrEqual(t, f.TargetY, ext.YMin)
	assert.LessOrEqual(t, f.TargetY, ext.YMax)
}

func TestFrameEmpty(t *testing.T) {
	_, err := Frame(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeEmptyGeometry))

	// The neutral default view is what callers fall back to.
	def := DefaultFraming()
	assert.Equal(t, minZoom, def.Zoom)
}
