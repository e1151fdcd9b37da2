// Package buildings is the client for the building registry, which resolves
// application building IDs to the GML identifiers the geometry service
// understands. The registry's CRUD surface is external; only lookup is
// consumed here.
package buildings

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/errors"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/httputil"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/integrations"
)

// Building is the registry's record for one building.
type Building struct {
	ID      string   `json:"id"`
	GMLIDs  []string `json:"gmlids"`
	Name    string   `json:"name,omitempty"`
	Address string   `json:"address,omitempty"`
}

// Client looks up buildings in the registry.
type Client struct {
	base    *integrations.Client
	baseURL string
}

// NewClient creates a building registry client.
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

// Lookup resolves a building ID to its registry record.
func (c *Client) Lookup(ctx context.Context, buildingID string) (*Building, error) {
	if buildingID == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "building ID is required")
	}

	endpoint := fmt.Sprintf("%s/buildings/%s", c.baseURL, url.PathEscape(buildingID))
	var b Building
	key := "lookup:" + buildingID
	err := c.base.Cached(ctx, key, false, &b, func() error {
		return c.base.Get(ctx, endpoint, &b)
	})
	if err != nil {
		switch {
		case stderrors.Is(err, integrations.ErrUnauthorized):
			return nil, errors.Wrap(errors.ErrCodeUnauthorized, err, "building registry rejected the credential")
		case stderrors.Is(err, integrations.ErrNotFound):
			return nil, errors.Wrap(errors.ErrCodeBuildingNotFound, err, "building %q not found", buildingID)
		default:
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "building lookup failed")
		}
	}
	if len(b.GMLIDs) == 0 {
		return nil, errors.New(errors.ErrCodeBuildingNotFound, "building %q has no geometry identifiers", buildingID)
	}
	return &b, nil
}
