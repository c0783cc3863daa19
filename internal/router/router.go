// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and the static route table, mapping
// each template to its handler and content-type gate.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/core-routing/internal/handler"
	"github.com/deppfellow/core-routing/internal/middleware"
	"github.com/deppfellow/core-routing/internal/server"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	routes := Routes()
	compiled := make([]compiledRoute, 0, len(routes))
	paths := []string{statusPath}
	for _, route := range routes {
		cr := route.compile()
		compiled = append(compiled, cr)
		paths = append(paths, cr.path)
	}

	// Pre middlewares run before routing.
	router.Pre(
		middlewares.Global.RemoveTrailingSlash(),
		newPathFolder(paths).Middleware(),
	)

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
		middlewares.RateLimit.Limiter(),
	)

	registerSystemRoutes(router, h)

	for _, cr := range compiled {
		var routeMiddlewares []echo.MiddlewareFunc
		if len(cr.constraints) > 0 {
			routeMiddlewares = append(routeMiddlewares, intConstraint(cr.constraints...))
		}
		if len(cr.Consumes) > 0 {
			routeMiddlewares = append(routeMiddlewares, middleware.Consumes(cr.Consumes...))
		}

		router.Add(cr.Method, cr.path, cr.handler(h), routeMiddlewares...)
	}

	return router
}
