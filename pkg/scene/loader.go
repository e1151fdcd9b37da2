package scene

import (
	"context"
	stderrors "errors"

	"github.com/charmbracelet/log"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/errors"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/integrations"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/integrations/auth"
)

// LayerRef identifies an externally hosted secured layer.
type LayerRef struct {
	ID    string
	Title string
	URL   string
}

// LayerSource loads external layers into the scene and evicts them again.
// Eviction must be idempotent.
type LayerSource interface {
	Load(ctx context.Context, ref LayerRef) error
	Evict(ref LayerRef)
}

// SecuredLoader loads layers that may require authentication. Its recovery
// protocol is a fixed state machine, not an open-ended retry loop:
//
//	load -> authorization failure -> login (only if not yet authenticated)
//	     -> retry load exactly once -> failure -> evict + LAYER_LOAD_FAILED
//
// Non-authorization failures and failures while already authenticated skip
// the login step and go straight to eviction. A failed layer never stays
// half-loaded in the scene.
type SecuredLoader struct {
	source LayerSource
	auth   auth.Provider
	logger *log.Logger
}

// NewSecuredLoader wires a loader over the given source and auth provider.
func NewSecuredLoader(source LayerSource, provider auth.Provider, logger *log.Logger) *SecuredLoader {
	if logger == nil {
		logger = log.Default()
	}
	return &SecuredLoader{source: source, auth: provider, logger: logger}
}

// Load attempts to load the layer, applying the single-retry auth recovery
// protocol. On any terminal failure the layer is evicted and a
// LAYER_LOAD_FAILED (or LAYER_AUTH_FAILED) error is returned.
func (l *SecuredLoader) Load(ctx context.Context, ref LayerRef) error {
	err := l.source.Load(ctx, ref)
	if err == nil {
		return nil
	}

	if !isAuthError(err) {
		return l.fail(ref, errors.Wrap(errors.ErrCodeLayerLoadFailed, err, "layer %q failed to load", ref.ID))
	}

	if !l.auth.IsAuthenticated() {
		l.logger.Info("layer requires authentication, logging in", "layer", ref.ID)
		if loginErr := l.auth.Login(ctx); loginErr != nil {
			return l.fail(ref, errors.Wrap(errors.ErrCodeLayerAuthFailed, loginErr, "login for layer %q failed", ref.ID))
		}
		if !l.auth.IsAuthenticated() {
			return l.fail(ref, errors.New(errors.ErrCodeLayerAuthFailed, "login for layer %q did not produce a credential", ref.ID))
		}
	}

	// One retry with the (possibly fresh) credential. A second
	// authorization failure is terminal; there is no login loop.
	if err := l.source.Load(ctx, ref); err != nil {
		return l.fail(ref, errors.Wrap(errors.ErrCodeLayerLoadFailed, err, "layer %q failed after authentication", ref.ID))
	}
	return nil
}

func (l *SecuredLoader) fail(ref LayerRef, err error) error {
	l.source.Evict(ref)
	l.logger.Warn("layer removed from scene", "layer", ref.ID, "error", err)
	return err
}

func isAuthError(err error) bool {
	return stderrors.Is(err, integrations.ErrUnauthorized) ||
		errors.Is(err, errors.ErrCodeUnauthorized)
}
