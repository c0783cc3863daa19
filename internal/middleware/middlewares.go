package middleware

import (
	"github.com/deppfellow/core-routing/internal/server"
)

// Middlewares groups all middleware components used by the HTTP server
// so router setup builds them once and reuses them.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers,
	// trailing-slash handling and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer enriches each request with a request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing provides New Relic middleware; a no-op without an APM app.
	Tracing *TracingMiddleware

	// RateLimit limits requests per client IP when enabled in config.
	RateLimit *RateLimitMiddleware
}

func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
