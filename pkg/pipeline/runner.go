package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/cache"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/envelope"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/errors"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/geometry"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/integrations/buildings"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/observability"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/render"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/scene"
)

// GeometrySource fetches raw geometry response envelopes. Implemented by
// citydb.Client; tests substitute fakes.
type GeometrySource interface {
	BaseURL() string
	Geometry(ctx context.Context, gmlIDs []string) ([]byte, error)
}

// BuildingResolver maps a building ID to its registry record. Implemented
// by buildings.Client.
type BuildingResolver interface {
	Lookup(ctx context.Context, buildingID string) (*buildings.Building, error)
}

// Runner executes the fetch → build → compose pipeline with per-stage
// caching. It is stateless apart from the cache and logger; multiple
// goroutines can share one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Geometry is required; Buildings is only needed when options carry a
	// building ID instead of GML identifiers.
	Geometry  GeometrySource
	Buildings BuildingResolver

	// Framing overrides the camera animation length of composed scenes.
	// Zero keeps the default.
	Framing time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer selects the DefaultKeyer; a nil cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete fetch → build → compose pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}

	result := &Result{}

	// Stage 1: Fetch
	fetchStart := time.Now()
	ids, err := r.resolveIDs(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.GMLIDs = ids

	raw, geometryHit, err := r.FetchWithCacheInfo(ctx, ids, opts.Refresh)
	if err != nil {
		return nil, err
	}
	result.Stats.FetchTime = time.Since(fetchStart)
	result.Stats.ResponseBytes = len(raw)
	result.CacheInfo.GeometryHit = geometryHit
	result.GeometryHash = cache.Hash(raw)

	logger.Info("fetched geometry",
		"ids", len(ids),
		"bytes", len(raw),
		"cached", geometryHit,
		"duration", result.Stats.FetchTime)

	// Composed scenes are cached by geometry hash plus the view options
	// that shape them; a hit skips both build and compose.
	sceneKey := r.Keyer.SceneKey(result.GeometryHash, cache.SceneKeyOpts{
		Attribute:       opts.Attribute,
		DetailThreshold: opts.DetailThreshold,
		Framing:         r.Framing,
	})
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, sceneKey); err == nil && hit {
			var cached render.Scene
			if err := json.Unmarshal(data, &cached); err == nil {
				result.Scene = cached
				result.Artifact = data
				result.CacheInfo.SceneHit = true
				result.Stats.LayerCount = len(cached.Layers)
				logger.Info("composed scene", "layers", len(cached.Layers), "cached", true)
				return result, nil
			}
		}
	}

	// Stage 2: Build
	buildStart := time.Now()
	collections, report, err := r.build(ctx, raw)
	if err != nil {
		return nil, err
	}
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.SkippedCount = report.Skipped
	for _, records := range collections {
		result.Stats.RecordCount += len(records)
	}

	logger.Info("built render records",
		"records", result.Stats.RecordCount,
		"skipped", report.Skipped,
		"duration", result.Stats.BuildTime)
	for _, w := range report.Warnings {
		logger.Warn(w)
	}

	// Stage 3: Compose
	composeStart := time.Now()
	observability.Pipeline().OnComposeStart(ctx, opts.Attribute)
	sc := scene.Compose(collections, opts.Attribute, r.Framing)
	sc.Warnings = append(sc.Warnings, report.Warnings...)
	result.Scene = sc
	result.Stats.ComposeTime = time.Since(composeStart)
	result.Stats.LayerCount = len(sc.Layers)
	observability.Pipeline().OnComposeComplete(ctx, len(sc.Layers), result.Stats.ComposeTime, nil)

	logger.Info("composed scene",
		"layers", len(sc.Layers),
		"attribute", opts.Attribute,
		"duration", result.Stats.ComposeTime)

	artifact, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize scene")
	}
	result.Artifact = artifact
	_ = r.Cache.Set(ctx, sceneKey, artifact, cache.TTLScene)

	return result, nil
}

// resolveIDs returns the GML identifiers for the execution, consulting the
// building registry when only a building ID was given.
func (r *Runner) resolveIDs(ctx context.Context, opts Options) ([]string, error) {
	if len(opts.GMLIDs) > 0 {
		return opts.GMLIDs, nil
	}
	if r.Buildings == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "building registry not configured, pass GML identifiers directly")
	}
	b, err := r.Buildings.Lookup(ctx, opts.BuildingID)
	if err != nil {
		return nil, err
	}
	return b.GMLIDs, nil
}

// FetchWithCacheInfo downloads the raw geometry envelope with caching and
// reports whether the response came from cache.
func (r *Runner) FetchWithCacheInfo(ctx context.Context, gmlIDs []string, refresh bool) ([]byte, bool, error) {
	if r.Geometry == nil {
		return nil, false, errors.New(errors.ErrCodeInvalidConfig, "geometry source not configured")
	}

	key := r.Keyer.GeometryKey(cache.GeometryKeyOpts{
		Endpoint: r.Geometry.BaseURL(),
		IDs:      gmlIDs,
	})
	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			return data, true, nil
		}
	}

	observability.Pipeline().OnFetchStart(ctx, gmlIDs)
	start := time.Now()
	data, err := r.Geometry.Geometry(ctx, gmlIDs)
	observability.Pipeline().OnFetchComplete(ctx, gmlIDs, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	_ = r.Cache.Set(ctx, key, data, cache.TTLGeometry)
	return data, false, nil
}

// build locates the feature collections in the raw envelope and converts
// them into render records. Reports from all collections are merged.
func (r *Runner) build(ctx context.Context, raw []byte) (map[string][]geometry.RenderRecord, geometry.BuildReport, error) {
	found, err := envelope.ExtractAll(raw,
		envelope.CollectionSurfaces,
		envelope.CollectionBuilding,
		envelope.CollectionContext,
	)
	if err != nil {
		return nil, geometry.BuildReport{}, err
	}

	featureCount := 0
	for _, features := range found {
		featureCount += len(features)
	}
	observability.Pipeline().OnBuildStart(ctx, featureCount)
	start := time.Now()

	collections := make(map[string][]geometry.RenderRecord, len(found))
	var merged geometry.BuildReport
	for name, features := range found {
		records, report := geometry.BuildAll(features)
		collections[name] = records
		merged.Skipped += report.Skipped
		merged.Errors = append(merged.Errors, report.Errors...)
		merged.Warnings = append(merged.Warnings, report.Warnings...)
	}

	recordCount := 0
	for _, records := range collections {
		recordCount += len(records)
	}
	observability.Pipeline().OnBuildComplete(ctx, recordCount, merged.Skipped, time.Since(start), nil)
	return collections, merged, nil
}
