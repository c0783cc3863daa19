package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/core-routing/internal/handler"
)

const statusPath = "/status"

// registerSystemRoutes registers endpoints that are not part of the API
// route table.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	// Health status endpoint (used by load balancers and monitors).
	r.GET(statusPath, handler.Handle(h.Health.Handler, h.Health.CheckHealth, http.StatusOK))
}
