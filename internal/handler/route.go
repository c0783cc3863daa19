package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/core-routing/internal/server"
	"github.com/deppfellow/core-routing/internal/service"
)

// RouteHandler serves the /api/route endpoints. Every method receives an
// already bound and validated request and returns the echo text.
type RouteHandler struct {
	Handler
	routeService *service.RouteService
}

func NewRouteHandler(s *server.Server, routeService *service.RouteService) *RouteHandler {
	return &RouteHandler{
		Handler:      NewHandler(s),
		routeService: routeService,
	}
}

// Index handles GET /api/route.
func (h *RouteHandler) Index(c echo.Context, _ *EmptyRequest) (string, error) {
	return h.routeService.Index(), nil
}

// Get1 handles GET /api/route/get1.
func (h *RouteHandler) Get1(c echo.Context, _ *EmptyRequest) (string, error) {
	return h.routeService.Get1(), nil
}

// Get2 handles GET /api/route/get2?queryParam1=...
func (h *RouteHandler) Get2(c echo.Context, req *QueryOneRequest) (string, error) {
	return h.routeService.QueryOne(req.QueryParam1), nil
}

// Get3 handles GET /api/route/get3?queryParam1=..&queryParam2=..
func (h *RouteHandler) Get3(c echo.Context, req *QueryTwoRequest) (string, error) {
	return h.routeService.QueryTwo(req.QueryParam1, req.QueryParam2), nil
}

// Get4 handles GET /api/route/get4 with three query parameters.
func (h *RouteHandler) Get4(c echo.Context, req *QueryThreeRequest) (string, error) {
	return h.routeService.QueryThree(req.QueryParam1, req.QueryParam2, req.QueryParam3), nil
}

// Get5 handles GET /api/route/get5/{routeParam1}.
func (h *RouteHandler) Get5(c echo.Context, req *TextRouteRequest) (string, error) {
	return h.routeService.RouteParam(req.RouteParam1), nil
}

// Get6 handles GET /api/route/get6/{routeParam1:int}.
func (h *RouteHandler) Get6(c echo.Context, req *IntRouteRequest) (string, error) {
	return h.routeService.RouteParam(req.RouteParam1), nil
}

// Post1 handles POST /api/route/post1.
func (h *RouteHandler) Post1(c echo.Context, _ *EmptyRequest) (string, error) {
	return h.routeService.PostEmpty(), nil
}

// Post2 handles POST /api/route/post2 with a JSON string body.
func (h *RouteHandler) Post2(c echo.Context, req *BodyRequest) (string, error) {
	return h.routeService.PostBody(req.Body), nil
}

// Post3 handles POST /api/route/post3/{routeParam1} with a JSON string body.
func (h *RouteHandler) Post3(c echo.Context, req *RouteBodyRequest) (string, error) {
	return h.routeService.PostBodyWithRoute(req.Body, req.RouteParam1), nil
}

// Post4 handles POST /api/route/post4 with a form-urlencoded body.
func (h *RouteHandler) Post4(c echo.Context, req *FormRequest) (string, error) {
	return h.routeService.PostForm(req.BodyParam1, req.BodyParam2), nil
}

// Post5 handles POST /api/route/post5 with a multipart/form-data body.
func (h *RouteHandler) Post5(c echo.Context, req *FormRequest) (string, error) {
	return h.routeService.PostMultipart(req.BodyParam1, req.BodyParam2), nil
}

// Post6 handles POST /api/route/post6 with a JSON Payload body.
func (h *RouteHandler) Post6(c echo.Context, req *PayloadRequest) (string, error) {
	return h.routeService.PostJSON(req.Payload()), nil
}

// Put handles PUT /api/route/{routeParam1}.
func (h *RouteHandler) Put(c echo.Context, req *RoutePayloadRequest) (string, error) {
	return h.routeService.Put(req.RouteParam1, req.Payload()), nil
}

// Patch handles PATCH /api/route/{routeParam1}.
func (h *RouteHandler) Patch(c echo.Context, req *RoutePayloadRequest) (string, error) {
	return h.routeService.Patch(req.RouteParam1, req.Payload()), nil
}

// Delete handles DELETE /api/route/{routeParam1}.
func (h *RouteHandler) Delete(c echo.Context, req *IntRouteRequest) (string, error) {
	return h.routeService.Delete(req.RouteParam1), nil
}
