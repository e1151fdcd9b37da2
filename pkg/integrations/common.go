// Package integrations provides HTTP clients for the external services the
// viewer consumes: the city geometry service, the building registry, and
// the authentication provider. All clients share one base [Client] that
// handles caching, retries, and bearer credentials.
package integrations

import (
	"errors"
	"net/http"
	"time"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/httputil"
)

const httpTimeout = 15 * time.Second

var (
	// ErrNotFound is returned when a building or resource doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized is returned for authorization-class failures (HTTP 401).
	// SecuredLayerLoader keys its single-retry login protocol off this error.
	ErrUnauthorized = errors.New("unauthorized")
)

// NewHTTPClient creates an HTTP client with a standard timeout for service requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NewCache creates a file-based cache with the given TTL in the default cache directory.
// See [httputil.NewCache] for details on cache location and behavior.
func NewCache(ttl time.Duration) (*httputil.Cache, error) {
	return httputil.NewCache("", ttl)
}
