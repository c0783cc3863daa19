// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request ids, request-scoped logging, tracing, CORS,
// rate limiting, content-type gating and panic recovery.
package middleware
