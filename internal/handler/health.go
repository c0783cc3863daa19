package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/core-routing/internal/middleware"
	"github.com/deppfellow/core-routing/internal/server"
)

// HealthHandler exposes a "system" endpoint that load balancers and uptime
// monitors can use to verify the service is alive.
type HealthHandler struct {
	Handler
	routeCount func() int
}

// HealthResponse is the body of GET /status.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
	Uptime      string    `json:"uptime"`
	Routes      int       `json:"routes"`
}

// NewHealthHandler constructs a HealthHandler. routeCount reports how many
// API routes are registered; it may be nil.
func NewHealthHandler(s *server.Server, routeCount func() int) *HealthHandler {
	return &HealthHandler{
		Handler:    NewHandler(s),
		routeCount: routeCount,
	}
}

// CheckHealth reports the service status. The service has no external
// dependencies, so a running process is a healthy one.
func (h *HealthHandler) CheckHealth(c echo.Context, _ *EmptyRequest) (HealthResponse, error) {
	routes := 0
	if h.routeCount != nil {
		routes = h.routeCount()
	}

	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Uptime:      time.Since(h.server.StartedAt).Round(time.Second).String(),
		Routes:      routes,
	}

	middleware.GetLogger(c).Debug().
		Str("operation", "health_check").
		Int("routes", routes).
		Msg("health check passed")

	return response, nil
}
