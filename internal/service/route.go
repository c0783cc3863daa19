package service

import (
	"fmt"

	"github.com/deppfellow/core-routing/internal/model"
	"github.com/deppfellow/core-routing/internal/server"
)

// RouteService formats the echo responses of the /api/route endpoints.
type RouteService struct {
	server *server.Server
}

func NewRouteService(s *server.Server) *RouteService {
	return &RouteService{server: s}
}

func (s *RouteService) Index() string {
	return "Received a GET request"
}

func (s *RouteService) Get1() string {
	return "Received a different GET request"
}

func (s *RouteService) QueryOne(queryParam1 string) string {
	return fmt.Sprintf("Received a GET request with one parameter. param1:%s", queryParam1)
}

func (s *RouteService) QueryTwo(queryParam1, queryParam2 int32) string {
	return fmt.Sprintf("Received a GET request with two parameters. queryParam1:%d queryParam2:%d", queryParam1, queryParam2)
}

func (s *RouteService) QueryThree(queryParam1 string, queryParam2 int32, queryParam3 string) string {
	return fmt.Sprintf("Received a GET request with three parameters. queryParam1: %s queryParam2: %d queryParam3: %s",
		queryParam1, queryParam2, queryParam3)
}

// RouteParam echoes a path segment. get5 passes text, get6 an integer;
// both share the same response text.
func (s *RouteService) RouteParam(routeParam1 any) string {
	return fmt.Sprintf("Received a GET request with one parameter in the path. routeParam1: %v", routeParam1)
}

func (s *RouteService) PostEmpty() string {
	return "Received a POST request with no request body"
}

func (s *RouteService) PostBody(body string) string {
	return fmt.Sprintf("Received a POST request with a request body. body: %s", body)
}

func (s *RouteService) PostBodyWithRoute(body string, routeParam1 int32) string {
	return fmt.Sprintf("Received a POST request with both a route parameter and request body. body content: %s param1: %d",
		body, routeParam1)
}

// PostForm echoes an application/x-www-form-urlencoded body.
func (s *RouteService) PostForm(bodyParam1, bodyParam2 string) string {
	return fmt.Sprintf("Received a POST request with both query parameter and request body. bodyParam1: %s bodyParam2: %s",
		bodyParam1, bodyParam2)
}

// PostMultipart echoes a multipart/form-data body.
func (s *RouteService) PostMultipart(bodyParam1, bodyParam2 string) string {
	return fmt.Sprintf("Received a POST request with a form encoded request body. bodyParam1: %s bodyParam2: %s",
		bodyParam1, bodyParam2)
}

func (s *RouteService) PostJSON(payload model.Payload) string {
	return fmt.Sprintf("Received a POST request with a JSON encoded request body. bodyParam1: %s bodyParam2: %s",
		payload.BodyParam1, payload.BodyParam2)
}

func (s *RouteService) Put(routeParam1 int32, payload model.Payload) string {
	return fmt.Sprintf("Received a PUT request with a JSON encoded request body and route parameter. routeParam1: %d bodyParam1: %s bodyParam2: %s",
		routeParam1, payload.BodyParam1, payload.BodyParam2)
}

// Patch answers with the PUT wording; clients of the original service
// match on this text.
func (s *RouteService) Patch(routeParam1 int32, payload model.Payload) string {
	return s.Put(routeParam1, payload)
}

// Delete returns a fixed text. The "{routeParam1}" placeholder is part of
// the response and is not substituted.
func (s *RouteService) Delete(int32) string {
	return "Received a DELETE request with a route parameter. routeParam1: {routeParam1}"
}
