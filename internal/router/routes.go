package router

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/core-routing/internal/handler"
)

const (
	mimeJSON      = echo.MIMEApplicationJSON
	mimeForm      = echo.MIMEApplicationForm
	mimeMultipart = echo.MIMEMultipartForm
)

// Route is one entry of the static route table.
//
// Template uses {name} placeholders; {name:int} additionally requires the
// segment to be an integer, otherwise the route does not match.
type Route struct {
	Method      string
	Template    string
	Consumes    []string
	Description string

	handler func(h *handler.Handlers) echo.HandlerFunc
}

// Routes returns the API route table.
func Routes() []Route {
	return []Route{
		{
			Method:      http.MethodGet,
			Template:    "/api/route",
			Description: "plain GET",
			handler: func(h *handler.Handlers) echo.HandlerFunc {
				return handler.HandleText(h.Route.Handler, h.Route.Index, http.StatusOK)
			},
		},
		{
			Method:      http.MethodGet,
			Template:    "/api/route/get1",
			Description: "GET on a sub-path",
			handler: func(h *handler.Handlers) echo.HandlerFunc {
				return handler.HandleText(h.Route.Handler, h.Route.Get1, http.StatusOK)
			},
		},
		{
			Method:      http.MethodGet,
			Template:    "/api/route/get2",
			Description: "one text query parameter",
			handler: func(h *handler.Handlers) echo.HandlerFunc {
				return handler.HandleText(h.Route.Handler, h.Route.Get2, http.StatusOK)
			},
		},
		{
			Method:      http.MethodGet,
			Template:    "/api/route/get3",
			Description: "two integer query parameters",
			handler: func(h *handler.Handlers) echo.HandlerFunc {
				return handler.HandleText(h.Route.Handler, h.Route.Get3, http.StatusOK)
			},
		},
		{
			Method:      http.MethodGet,
			Template:    "/api/route/get4",
			Description: "three mixed query parameters",
			handler: func(h *handler.Handlers) echo.HandlerFunc {
				return handler.HandleText(h.Route.Handler, h.Route.Get4, http.StatusOK)
			},
		},
		{
			Method:      http.MethodGet,
			Template:    "/api/route/get5/{routeParam1}",
			Description: "text route parameter",
			handler: func(h *handler.Handlers) echo.HandlerFunc {
				return handler.HandleText(h.Route.Handler, h.Route.Get5, http.StatusOK)
			},
		},
		{
			Method:      http.MethodGet,
			Template:    "/api/route/get6/{routeParam1:int}",
			Description: "integer-constrained route parameter",
			handler: func(h *handler.Handlers) echo.HandlerFunc {
				return handler.HandleText(h.Route.Handler, h.Route.Get6, http.StatusOK)
			},
		},
		{
			Method:      http.MethodPost,
			Template:    "/api/route/post1",
			Description: "POST without a body",
			handler: func(h *handler.Handlers) echo.HandlerFunc {
				return handler.HandleText(h.Route.Handler, h.Route.Post1, http.StatusOK)
			},
		},
		{
			Method:      http.MethodPost,
			Template:    "/api/route/post2",
			Consumes:    []string{mimeJSON},
			Description: "JSON string body",
			handler: func(h *handler.Handlers) echo.HandlerFunc {
				return handler.HandleText(h.Route.Handler, h.Route.Post2, http.StatusOK)
			},
		},
		{
			Method:      http.MethodPost,
			Template:    "/api/route/post3/{routeParam1}",
			Consumes:    []string{mimeJSON},
			Description: "JSON string body and integer route parameter",
			handler: func(h *handler.Handlers) echo.HandlerFunc {
				return handler.HandleText(h.Route.Handler, h.Route.Post3, http.StatusOK)
			},
		},
		{
			Method:      http.MethodPost,
			Template:    "/api/route/post4",
			Consumes:    []string{mimeForm},
			Description: "form-urlencoded body",
			handler: func(h *handler.Handlers) echo.HandlerFunc {
				return handler.HandleText(h.Route.Handler, h.Route.Post4, http.StatusOK)
			},
		},
		{
			Method:      http.MethodPost,
			Template:    "/api/route/post5",
			Consumes:    []string{mimeMultipart},
			Description: "multipart form body",
			handler: func(h *handler.Handlers) echo.HandlerFunc {
				return handler.HandleText(h.Route.Handler, h.Route.Post5, http.StatusOK)
			},
		},
		{
			Method:      http.MethodPost,
			Template:    "/api/route/post6",
			Consumes:    []string{mimeJSON},
			Description: "JSON object body",
			handler: func(h *handler.Handlers) echo.HandlerFunc {
				return handler.HandleText(h.Route.Handler, h.Route.Post6, http.StatusOK)
			},
		},
		{
			Method:      http.MethodPut,
			Template:    "/api/route/{routeParam1}",
			Consumes:    []string{mimeJSON},
			Description: "JSON object body and integer route parameter",
			handler: func(h *handler.Handlers) echo.HandlerFunc {
				return handler.HandleText(h.Route.Handler, h.Route.Put, http.StatusOK)
			},
		},
		{
			Method:      http.MethodPatch,
			Template:    "/api/route/{routeParam1}",
			Consumes:    []string{mimeJSON},
			Description: "JSON object body and integer route parameter",
			handler: func(h *handler.Handlers) echo.HandlerFunc {
				return handler.HandleText(h.Route.Handler, h.Route.Patch, http.StatusOK)
			},
		},
		{
			Method:      http.MethodDelete,
			Template:    "/api/route/{routeParam1}",
			Description: "integer route parameter",
			handler: func(h *handler.Handlers) echo.HandlerFunc {
				return handler.HandleText(h.Route.Handler, h.Route.Delete, http.StatusOK)
			},
		},
	}
}

// RouteCount reports the number of API routes in the table.
func RouteCount() int {
	return len(Routes())
}

// compiledRoute is a Route translated to echo's path syntax.
type compiledRoute struct {
	Route
	path        string
	constraints []string
}

// compile turns "/a/{x}/{y:int}" into "/a/:x/:y" and records y as an
// integer-constrained parameter.
func (r Route) compile() compiledRoute {
	segments := strings.Split(r.Template, "/")
	var constraints []string

	for i, segment := range segments {
		if !strings.HasPrefix(segment, "{") || !strings.HasSuffix(segment, "}") {
			continue
		}

		name, constraint, _ := strings.Cut(segment[1:len(segment)-1], ":")
		if constraint == "int" {
			constraints = append(constraints, name)
		}
		segments[i] = ":" + name
	}

	return compiledRoute{
		Route:       r,
		path:        strings.Join(segments, "/"),
		constraints: constraints,
	}
}
