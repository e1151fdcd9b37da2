package buildings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/errors"
)

func TestLookup(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/buildings/b-42", r.URL.Path)
		w.Write([]byte(`{"id": "b-42", "gmlids": ["gml-1", "gml-2"], "name": "Town hall"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, nil, nil)
	b, err := c.Lookup(context.Background(), "b-42")
	require.NoError(t, err)
	assert.Equal(t, "b-42", b.ID)
	assert.Equal(t, []string{"gml-1", "gml-2"}, b.GMLIDs)
	assert.Equal(t, "Town hall", b.Name)
}

func TestLookupNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, nil, nil)
	_, err := c.Lookup(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeBuildingNotFound, errors.GetCode(err))
}

func TestLookupWithoutGMLIDs(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "b-1", "gmlids": []}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, nil, nil)
	_, err := c.Lookup(context.Background(), "b-1")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeBuildingNotFound, errors.GetCode(err))
}

func TestLookupRequiresID(t *testing.T) {
	c := NewClient("https://example.test", nil, nil)
	_, err := c.Lookup(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
}
