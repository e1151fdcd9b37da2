// Package httputil provides HTTP client helpers shared by the integration
// clients: bounded retry policies and a TTL'd file-backed response cache.
//
// Two retry policies are provided. [Retry] doubles the delay after each
// failed attempt and suits background fetches. [RetryLinear] keeps a
// constant delay and suits interactive initialization, where a growing
// backoff would feel like a hang. Both retry only errors wrapped in
// [RetryableError]; everything else is returned to the caller on first
// failure.
package httputil
