package service

import (
	"github.com/deppfellow/core-routing/internal/server"
)

// Services is a container that groups all service implementations.
type Services struct {
	Route *RouteService
}

func NewServices(s *server.Server) *Services {
	return &Services{
		Route: NewRouteService(s),
	}
}
