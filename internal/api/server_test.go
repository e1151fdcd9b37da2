package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/errors"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/integrations/buildings"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/pipeline"
)

type stubGeometry struct{}

func (stubGeometry) BaseURL() string { return "https://geometry.test" }

func (stubGeometry) Geometry(context.Context, []string) ([]byte, error) {
	return []byte(`{
		"surfaces": [{"geometry": {"type": "Polygon",
			"coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]},
			"properties": {"usage": "residential"}}]
	}`), nil
}

type stubRegistry struct{}

func (stubRegistry) Lookup(_ context.Context, id string) (*buildings.Building, error) {
	if id == "missing" {
		return nil, errors.New(errors.ErrCodeBuildingNotFound, "no building %q", id)
	}
	return &buildings.Building{ID: id, GMLIDs: []string{"gml-" + id}}, nil
}

func newTestServer() *httptest.Server {
	runner := pipeline.NewRunner(nil, nil, nil)
	runner.Geometry = stubGeometry{}
	runner.Buildings = stubRegistry{}
	return httptest.NewServer(NewServer(runner, nil).Handler())
}

func TestHealthz(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSceneEndpoint(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/buildings/b-1/scene?attribute=usage")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body struct {
		BuildingID string   `json:"building_id"`
		GMLIDs     []string `json:"gml_ids"`
		Scene      struct {
			Layers []struct {
				Kind  string `json:"kind"`
				Title string `json:"title"`
			} `json:"layers"`
		} `json:"scene"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "b-1", body.BuildingID)
	assert.Equal(t, []string{"gml-b-1"}, body.GMLIDs)
	require.Len(t, body.Scene.Layers, 2)
	assert.Equal(t, "residential", body.Scene.Layers[0].Title)
}

func TestSceneUnknownBuilding(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/buildings/missing/scene")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(errors.ErrCodeBuildingNotFound), body.Code)
}

func TestSceneInvalidQuery(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	for _, path := range []string{
		"/api/v1/buildings/b-1/scene?refresh=banana",
		"/api/v1/buildings/b-1/scene?detail_threshold=-1",
	} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestVersionEndpoint(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/version")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
