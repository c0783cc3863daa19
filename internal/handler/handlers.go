package handler

import (
	"github.com/deppfellow/core-routing/internal/server"
	"github.com/deppfellow/core-routing/internal/service"
)

// Handlers is a container that groups all HTTP handlers so router setup
// can pass one object around.
type Handlers struct {
	Health *HealthHandler
	Route  *RouteHandler
}

// NewHandlers constructs the handler container. routeCount feeds the
// health endpoint and may be nil.
func NewHandlers(s *server.Server, services *service.Services, routeCount func() int) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(s, routeCount),
		Route:  NewRouteHandler(s, services.Route),
	}
}
