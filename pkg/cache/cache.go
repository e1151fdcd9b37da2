// Package cache provides pluggable caching for the visualization pipeline.
//
// The [Cache] interface abstracts over storage backends:
//   - FileCache: file-based storage for CLI usage
//   - RedisCache: Redis-backed storage for server deployments
//   - NullCache: no-op cache for testing or when caching is disabled
//
// Cache keys are produced by a [Keyer], which hashes the identifying inputs
// of each pipeline stage so that different fetch/build options never collide.
package cache

import (
	"context"
	"time"
)

// TTLs for the different pipeline stages. Geometry responses are the most
// expensive to refetch but also the most likely to change upstream; composed
// scenes are cheap to rebuild from a cached response.
const (
	// TTLGeometry is the time-to-live for raw geometry service responses.
	TTLGeometry = 24 * time.Hour

	// TTLScene is the time-to-live for composed scene outputs.
	TTLScene = 6 * time.Hour

	// TTLHTTP is the default time-to-live for generic HTTP responses.
	TTLHTTP = 24 * time.Hour
)

// Cache is the interface for cache backends.
// Get returns (data, hit, error); a miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GeometryKeyOpts are the inputs that distinguish geometry fetch results.
type GeometryKeyOpts struct {
	Endpoint string
	IDs      []string
}

// SceneKeyOpts are the inputs that distinguish composed scene outputs.
type SceneKeyOpts struct {
	Attribute       string
	DetailThreshold float64
	Framing         time.Duration
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// HTTPKey generates a key for raw HTTP response caching.
	HTTPKey(namespace, key string) string

	// GeometryKey generates a key for geometry service responses.
	GeometryKey(opts GeometryKeyOpts) string

	// SceneKey generates a key for composed scenes derived from the
	// geometry response identified by geometryHash.
	SceneKey(geometryHash string, opts SceneKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for raw HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return stageKey("http", namespace, key)
}

// GeometryKey generates a key for geometry service responses.
func (k *DefaultKeyer) GeometryKey(opts GeometryKeyOpts) string {
	return stageKey("geometry", opts)
}

// SceneKey generates a key for composed scenes.
func (k *DefaultKeyer) SceneKey(geometryHash string, opts SceneKeyOpts) string {
	return stageKey("scene", geometryHash, opts)
}
