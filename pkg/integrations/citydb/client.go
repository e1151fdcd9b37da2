// Package citydb is the client for the city geometry service, which serves
// building envelope geometry keyed by GML identifiers.
package citydb

import (
	"context"
	stderrors "errors"
	"net/url"
	"strings"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/errors"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/httputil"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/integrations"
)

// Client fetches building geometry from the geometry service.
type Client struct {
	base    *integrations.Client
	baseURL string
}

// NewClient creates a geometry service client.
// The cache may be nil to disable response caching.
func NewClient(baseURL string, cache *httputil.Cache, token func() string) *Client {
	base := integrations.NewClient(cache, map[string]string{"Accept": "application/json"})
	if token != nil {
		base = base.WithTokenSource(token)
	}
	return &Client{
		base:    base,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the configured service root. Cache keys for geometry
// responses include it so different deployments never collide.
func (c *Client) BaseURL() string { return c.baseURL }

// Geometry fetches the raw geometry response envelope for one or more GML
// identifiers. The envelope structure varies between deployments, so the
// body is returned as-is for structural probing by the envelope package.
func (c *Client) Geometry(ctx context.Context, gmlIDs []string) ([]byte, error) {
	if len(gmlIDs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "at least one GML identifier is required")
	}

	q := url.Values{}
	q.Set("gmlid", strings.Join(gmlIDs, ","))
	endpoint := c.baseURL + "/geometry?" + q.Encode()

	data, err := c.base.GetRaw(ctx, endpoint)
	if err != nil {
		return nil, mapError(err, gmlIDs)
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyGeometry, "geometry service returned an empty response")
	}
	return data, nil
}

func mapError(err error, gmlIDs []string) error {
	switch {
	case stderrors.Is(err, integrations.ErrUnauthorized):
		return errors.Wrap(errors.ErrCodeUnauthorized, err, "geometry service rejected the credential")
	case stderrors.Is(err, integrations.ErrNotFound):
		return errors.Wrap(errors.ErrCodeBuildingNotFound, err, "no geometry for %v", gmlIDs)
	default:
		return errors.Wrap(errors.ErrCodeNetwork, err, "geometry fetch failed")
	}
}
