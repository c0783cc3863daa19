package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/core-routing/internal/config"
	"github.com/deppfellow/core-routing/internal/errs"
	"github.com/deppfellow/core-routing/internal/handler"
	"github.com/deppfellow/core-routing/internal/server"
	"github.com/deppfellow/core-routing/internal/service"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{
		Primary:       config.Primary{Env: "test"},
		Server:        config.DefaultServerConfig(),
		Observability: config.DefaultObservabilityConfig(),
	}

	s, err := server.New(cfg, nil, nil)
	require.NoError(t, err)

	h := handler.NewHandlers(s, service.NewServices(s), RouteCount)
	return NewRouter(s, h)
}

func do(t *testing.T, e *echo.Echo, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()

	var httpErr errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &httpErr), rec.Body.String())
	return httpErr
}

func TestRouter_Success(t *testing.T) {
	e := newTestRouter(t)

	form := url.Values{"bodyParam1": {"hello"}, "bodyParam2": {"world"}}.Encode()
	payload := `{"bodyParam1":"hello","bodyParam2":"world"}`

	tests := []struct {
		name        string
		method      string
		target      string
		contentType string
		body        string
		want        string
	}{
		{"index", http.MethodGet, "/api/route", "", "",
			"Received a GET request"},
		{"get1", http.MethodGet, "/api/route/get1", "", "",
			"Received a different GET request"},
		{"get2", http.MethodGet, "/api/route/get2?queryParam1=hello", "", "",
			"Received a GET request with one parameter. param1:hello"},
		{"get2 encoded space", http.MethodGet, "/api/route/get2?queryParam1=hello%20world", "", "",
			"Received a GET request with one parameter. param1:hello world"},
		{"get3", http.MethodGet, "/api/route/get3?queryParam1=6&queryParam2=-1", "", "",
			"Received a GET request with two parameters. queryParam1:6 queryParam2:-1"},
		{"get3 absent ints", http.MethodGet, "/api/route/get3", "", "",
			"Received a GET request with two parameters. queryParam1:0 queryParam2:0"},
		{"get4", http.MethodGet, "/api/route/get4?queryParam1=hello&queryParam2=2&queryParam3=people", "", "",
			"Received a GET request with three parameters. queryParam1: hello queryParam2: 2 queryParam3: people"},
		{"get5", http.MethodGet, "/api/route/get5/test", "", "",
			"Received a GET request with one parameter in the path. routeParam1: test"},
		{"get6", http.MethodGet, "/api/route/get6/10", "", "",
			"Received a GET request with one parameter in the path. routeParam1: 10"},
		{"get6 negative", http.MethodGet, "/api/route/get6/-1", "", "",
			"Received a GET request with one parameter in the path. routeParam1: -1"},
		{"post1", http.MethodPost, "/api/route/post1", "", "",
			"Received a POST request with no request body"},
		{"post2", http.MethodPost, "/api/route/post2", echo.MIMEApplicationJSON, `"request body"`,
			"Received a POST request with a request body. body: request body"},
		{"post3", http.MethodPost, "/api/route/post3/50", echo.MIMEApplicationJSON, `"another request body"`,
			"Received a POST request with both a route parameter and request body. body content: another request body param1: 50"},
		{"post4", http.MethodPost, "/api/route/post4", echo.MIMEApplicationForm, form,
			"Received a POST request with both query parameter and request body. bodyParam1: hello bodyParam2: world"},
		{"post6", http.MethodPost, "/api/route/post6", echo.MIMEApplicationJSON, payload,
			"Received a POST request with a JSON encoded request body. bodyParam1: hello bodyParam2: world"},
		{"post6 charset", http.MethodPost, "/api/route/post6", echo.MIMEApplicationJSONCharsetUTF8, payload,
			"Received a POST request with a JSON encoded request body. bodyParam1: hello bodyParam2: world"},
		{"post6 empty strings", http.MethodPost, "/api/route/post6", echo.MIMEApplicationJSON, `{"bodyParam1":"","bodyParam2":""}`,
			"Received a POST request with a JSON encoded request body. bodyParam1:  bodyParam2: "},
		{"put", http.MethodPut, "/api/route/7", echo.MIMEApplicationJSON, payload,
			"Received a PUT request with a JSON encoded request body and route parameter. routeParam1: 7 bodyParam1: hello bodyParam2: world"},
		{"patch uses put wording", http.MethodPatch, "/api/route/7", echo.MIMEApplicationJSON, payload,
			"Received a PUT request with a JSON encoded request body and route parameter. routeParam1: 7 bodyParam1: hello bodyParam2: world"},
		{"delete keeps placeholder", http.MethodDelete, "/api/route/5", "", "",
			"Received a DELETE request with a route parameter. routeParam1: {routeParam1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, tt.method, tt.target, tt.contentType, tt.body)

			assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.want, rec.Body.String())
			assert.Equal(t, echo.MIMETextPlainCharsetUTF8, rec.Header().Get(echo.HeaderContentType))
		})
	}
}

func TestRouter_DeclaredSourcesOnly(t *testing.T) {
	e := newTestRouter(t)

	tests := []struct {
		name        string
		method      string
		target      string
		contentType string
		body        string
		want        string
	}{
		{"json body does not replace path value", http.MethodGet, "/api/route/get6/10", echo.MIMEApplicationJSON, `{"routeParam1":42}`,
			"Received a GET request with one parameter in the path. routeParam1: 10"},
		{"json body does not replace text path value", http.MethodGet, "/api/route/get5/test", echo.MIMEApplicationJSON, `{"RouteParam1":"other"}`,
			"Received a GET request with one parameter in the path. routeParam1: test"},
		{"json body does not replace query value", http.MethodGet, "/api/route/get2?queryParam1=hello", echo.MIMEApplicationJSON, `{"queryParam1":"evil"}`,
			"Received a GET request with one parameter. param1:hello"},
		{"json body does not replace int query values", http.MethodGet, "/api/route/get3?queryParam1=1&queryParam2=2", echo.MIMEApplicationJSON, `{"queryParam1":7,"queryParam2":8}`,
			"Received a GET request with two parameters. queryParam1:1 queryParam2:2"},
		{"stray text body on get6", http.MethodGet, "/api/route/get6/10", echo.MIMETextPlain, "stray",
			"Received a GET request with one parameter in the path. routeParam1: 10"},
		{"stray text body on get2", http.MethodGet, "/api/route/get2?queryParam1=hello", echo.MIMETextPlain, "stray",
			"Received a GET request with one parameter. param1:hello"},
		{"stray text body on index", http.MethodGet, "/api/route", echo.MIMETextPlain, "stray",
			"Received a GET request"},
		{"stray text body on post1", http.MethodPost, "/api/route/post1", echo.MIMETextPlain, "stray",
			"Received a POST request with no request body"},
		{"stray text body on delete", http.MethodDelete, "/api/route/5", echo.MIMETextPlain, "stray",
			"Received a DELETE request with a route parameter. routeParam1: {routeParam1}"},
		{"query does not fill form fields", http.MethodPost, "/api/route/post4?bodyParam1=fromquery", echo.MIMEApplicationForm, "bodyParam1=hello&bodyParam2=world",
			"Received a POST request with both query parameter and request body. bodyParam1: hello bodyParam2: world"},
		{"form names match case-insensitively", http.MethodPost, "/api/route/post4", echo.MIMEApplicationForm, "BODYPARAM1=hello&bodyparam2=world",
			"Received a POST request with both query parameter and request body. bodyParam1: hello bodyParam2: world"},
		{"int32 bounds accepted", http.MethodGet, "/api/route/get3?queryParam1=2147483647&queryParam2=-2147483648", "", "",
			"Received a GET request with two parameters. queryParam1:2147483647 queryParam2:-2147483648"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, tt.method, tt.target, tt.contentType, tt.body)

			assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestRouter_MultipartIgnoresQuery(t *testing.T) {
	e := newTestRouter(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("bodyParam2", "world"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/route/post5?bodyParam1=fromquery", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestRouter_Multipart(t *testing.T) {
	e := newTestRouter(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("bodyParam1", "hello"))
	require.NoError(t, w.WriteField("bodyParam2", "world"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/route/post5", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Received a POST request with a form encoded request body. bodyParam1: hello bodyParam2: world", rec.Body.String())
}

func TestRouter_NotFound(t *testing.T) {
	e := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		target string
	}{
		{"unknown path", http.MethodGet, "/api/unknown"},
		{"int constraint rejects text", http.MethodGet, "/api/route/get6/abc"},
		{"int constraint rejects overflow", http.MethodGet, "/api/route/get6/99999999999"},
		{"method mismatch on static path", http.MethodPost, "/api/route/get1"},
		{"method mismatch on route root", http.MethodDelete, "/api/route"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, tt.method, tt.target, "", "")

			assert.Equal(t, http.StatusNotFound, rec.Code)
			httpErr := decodeError(t, rec)
			assert.Equal(t, "NOT_FOUND", httpErr.Code)
			assert.Equal(t, "Route not found", httpErr.Message)
		})
	}
}

func TestRouter_BadRequest(t *testing.T) {
	e := newTestRouter(t)

	tests := []struct {
		name        string
		method      string
		target      string
		contentType string
		body        string
		wantField   string
	}{
		{"get2 missing query", http.MethodGet, "/api/route/get2", "", "", "queryParam1"},
		{"get3 non-integer query", http.MethodGet, "/api/route/get3?queryParam1=abc", "", "", ""},
		{"get4 missing text", http.MethodGet, "/api/route/get4?queryParam1=a&queryParam2=1", "", "", "queryParam3"},
		{"post2 empty body", http.MethodPost, "/api/route/post2", echo.MIMEApplicationJSON, "", "body"},
		{"post2 malformed json", http.MethodPost, "/api/route/post2", echo.MIMEApplicationJSON, `"unterminated`, ""},
		{"post3 non-integer path", http.MethodPost, "/api/route/post3/abc", echo.MIMEApplicationJSON, `"x"`, ""},
		{"post4 missing field", http.MethodPost, "/api/route/post4", echo.MIMEApplicationForm, "bodyParam1=hello", "bodyParam2"},
		{"post6 missing field", http.MethodPost, "/api/route/post6", echo.MIMEApplicationJSON, `{"bodyParam1":"hello"}`, "bodyParam2"},
		{"post6 wrong type", http.MethodPost, "/api/route/post6", echo.MIMEApplicationJSON, `{"bodyParam1":1,"bodyParam2":"x"}`, ""},
		{"put non-integer path", http.MethodPut, "/api/route/abc", echo.MIMEApplicationJSON, `{"bodyParam1":"a","bodyParam2":"b"}`, ""},
		{"put empty body", http.MethodPut, "/api/route/1", echo.MIMEApplicationJSON, "", "bodyParam1"},
		{"delete non-integer path", http.MethodDelete, "/api/route/abc", "", "", ""},
		{"post4 field only in query", http.MethodPost, "/api/route/post4?bodyParam1=fromquery", echo.MIMEApplicationForm, "bodyParam2=world", "bodyParam1"},
		{"get2 value only in body", http.MethodGet, "/api/route/get2", echo.MIMEApplicationJSON, `{"queryParam1":"bodyonly"}`, "queryParam1"},
		{"get3 query overflows int32", http.MethodGet, "/api/route/get3?queryParam1=99999999999", "", "", ""},
		{"get4 query overflows int32", http.MethodGet, "/api/route/get4?queryParam1=a&queryParam2=99999999999&queryParam3=b", "", "", ""},
		{"post3 path overflows int32", http.MethodPost, "/api/route/post3/99999999999", echo.MIMEApplicationJSON, `"x"`, ""},
		{"put path overflows int32", http.MethodPut, "/api/route/99999999999", echo.MIMEApplicationJSON, `{"bodyParam1":"a","bodyParam2":"b"}`, ""},
		{"patch path overflows int32", http.MethodPatch, "/api/route/99999999999", echo.MIMEApplicationJSON, `{"bodyParam1":"a","bodyParam2":"b"}`, ""},
		{"delete path overflows int32", http.MethodDelete, "/api/route/99999999999", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, tt.method, tt.target, tt.contentType, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			httpErr := decodeError(t, rec)
			assert.Equal(t, "BAD_REQUEST", httpErr.Code)

			if tt.wantField != "" {
				fields := make([]string, 0, len(httpErr.Errors))
				for _, fe := range httpErr.Errors {
					fields = append(fields, fe.Field)
				}
				assert.Contains(t, fields, tt.wantField)
			}
		})
	}
}

func TestRouter_UnsupportedMediaType(t *testing.T) {
	e := newTestRouter(t)

	tests := []struct {
		name        string
		target      string
		contentType string
		body        string
	}{
		{"post4 with json", "/api/route/post4", echo.MIMEApplicationJSON, `{"bodyParam1":"a","bodyParam2":"b"}`},
		{"post4 without content type", "/api/route/post4", "", "bodyParam1=a&bodyParam2=b"},
		{"post5 with urlencoded form", "/api/route/post5", echo.MIMEApplicationForm, "bodyParam1=a&bodyParam2=b"},
		{"post6 with form", "/api/route/post6", echo.MIMEApplicationForm, "bodyParam1=a&bodyParam2=b"},
		{"post2 with text", "/api/route/post2", echo.MIMETextPlain, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, http.MethodPost, tt.target, tt.contentType, tt.body)

			assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code, rec.Body.String())
			assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", decodeError(t, rec).Code)
		})
	}
}

func TestRouter_PathNormalization(t *testing.T) {
	e := newTestRouter(t)

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"upper case static segments", "/API/ROUTE/GET1", "Received a different GET request"},
		{"mixed case root", "/Api/Route", "Received a GET request"},
		{"trailing slash", "/api/route/get1/", "Received a different GET request"},
		{"parameter keeps case", "/API/Route/Get5/HeLLo", "Received a GET request with one parameter in the path. routeParam1: HeLLo"},
		{"query name case", "/api/route/get2?QUERYPARAM1=hello", "Received a GET request with one parameter. param1:hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, http.MethodGet, tt.target, "", "")

			assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestRouter_RequestID(t *testing.T) {
	e := newTestRouter(t)

	t.Run("generated", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/route", "", "")
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/route", nil)
		req.Header.Set(echo.HeaderXRequestID, "req-123")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "req-123", rec.Header().Get(echo.HeaderXRequestID))
	})

	t.Run("present on errors", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/nowhere", "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	})
}

func TestRouter_Status(t *testing.T) {
	e := newTestRouter(t)

	rec := do(t, e, http.MethodGet, "/status", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body handler.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "test", body.Environment)
	assert.Equal(t, RouteCount(), body.Routes)
}

func TestRouter_IdempotentResponses(t *testing.T) {
	e := newTestRouter(t)

	first := do(t, e, http.MethodGet, "/api/route/get2?queryParam1=x", "", "")
	second := do(t, e, http.MethodGet, "/api/route/get2?queryParam1=x", "", "")

	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}
