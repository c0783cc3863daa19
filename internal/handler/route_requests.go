package handler

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/core-routing/internal/errs"
	"github.com/deppfellow/core-routing/internal/model"
	"github.com/deppfellow/core-routing/internal/validation"
)

// multipartMemory matches echo's in-memory limit for multipart forms.
const multipartMemory = 32 << 20

// EmptyRequest is bound by routes that take no input. Any request body is
// ignored.
type EmptyRequest struct{}

func (r *EmptyRequest) Bind(c echo.Context) error { return nil }

func (r *EmptyRequest) Validate() error { return nil }

// QueryOneRequest binds GET /api/route/get2.
type QueryOneRequest struct {
	QueryParam1 string `query:"queryParam1" validate:"required"`
}

func (r *QueryOneRequest) Bind(c echo.Context) error { return bindQuery(c, r) }

func (r *QueryOneRequest) Validate() error { return validation.Struct(r) }

// QueryTwoRequest binds GET /api/route/get3. Absent integers stay 0.
type QueryTwoRequest struct {
	QueryParam1 int32 `query:"queryParam1"`
	QueryParam2 int32 `query:"queryParam2"`
}

func (r *QueryTwoRequest) Bind(c echo.Context) error { return bindQuery(c, r) }

func (r *QueryTwoRequest) Validate() error { return nil }

// QueryThreeRequest binds GET /api/route/get4.
type QueryThreeRequest struct {
	QueryParam1 string `query:"queryParam1" validate:"required"`
	QueryParam2 int32  `query:"queryParam2"`
	QueryParam3 string `query:"queryParam3" validate:"required"`
}

func (r *QueryThreeRequest) Bind(c echo.Context) error { return bindQuery(c, r) }

func (r *QueryThreeRequest) Validate() error { return validation.Struct(r) }

// TextRouteRequest binds a text path segment.
type TextRouteRequest struct {
	RouteParam1 string `param:"routeParam1" validate:"required"`
}

func (r *TextRouteRequest) Bind(c echo.Context) error { return bindPath(c, r) }

func (r *TextRouteRequest) Validate() error { return validation.Struct(r) }

// IntRouteRequest binds an integer path segment.
type IntRouteRequest struct {
	RouteParam1 int32 `param:"routeParam1"`
}

func (r *IntRouteRequest) Bind(c echo.Context) error { return bindPath(c, r) }

func (r *IntRouteRequest) Validate() error { return nil }

// BodyRequest binds a request body that is a single JSON string, such as
// "request body" (quotes included).
type BodyRequest struct {
	Body string `json:"body" validate:"required"`
}

// Bind decodes the body with echo's JSON serializer. echo's default binder
// only decodes into structs and maps, so it cannot be used here.
func (r *BodyRequest) Bind(c echo.Context) error {
	if c.Request().ContentLength == 0 {
		return emptyBodyError()
	}

	var body *string
	if err := c.Echo().JSONSerializer.Deserialize(c, &body); err != nil {
		if errors.Is(err, io.EOF) {
			return emptyBodyError()
		}
		return err
	}

	if body != nil {
		r.Body = *body
	}
	return nil
}

func (r *BodyRequest) Validate() error { return validation.Struct(r) }

// RouteBodyRequest binds POST /api/route/post3/{routeParam1}.
type RouteBodyRequest struct {
	RouteParam1 int32 `param:"routeParam1"`
	BodyRequest
}

func (r *RouteBodyRequest) Bind(c echo.Context) error {
	if err := bindPath(c, r); err != nil {
		return err
	}
	return r.BodyRequest.Bind(c)
}

func (r *RouteBodyRequest) Validate() error { return validation.Struct(r) }

// FormRequest binds the two text fields of a form-urlencoded or
// multipart/form-data body.
type FormRequest struct {
	BodyParam1 string `form:"bodyParam1" validate:"required"`
	BodyParam2 string `form:"bodyParam2" validate:"required"`
}

// Bind reads the request body only. echo's form binding merges the URL
// query into the form values, so it is not used here.
func (r *FormRequest) Bind(c echo.Context) error {
	values, err := bodyForm(c.Request())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}

	r.BodyParam1 = formValue(values, "bodyParam1")
	r.BodyParam2 = formValue(values, "bodyParam2")
	return nil
}

func (r *FormRequest) Validate() error { return validation.Struct(r) }

// PayloadRequest binds the JSON Payload body. Pointers tell an absent
// field apart from an empty string: both fields must be present.
type PayloadRequest struct {
	BodyParam1 *string `json:"bodyParam1" validate:"required"`
	BodyParam2 *string `json:"bodyParam2" validate:"required"`
}

func (r *PayloadRequest) Validate() error { return validation.Struct(r) }

// Payload converts a validated request into the model.
func (r *PayloadRequest) Payload() model.Payload {
	return model.Payload{
		BodyParam1: deref(r.BodyParam1),
		BodyParam2: deref(r.BodyParam2),
	}
}

// RoutePayloadRequest binds PUT and PATCH /api/route/{routeParam1}.
// The json "-" tag keeps a body property from overwriting the path value.
type RoutePayloadRequest struct {
	RouteParam1 int32 `param:"routeParam1" json:"-"`
	PayloadRequest
}

func (r *RoutePayloadRequest) Validate() error { return validation.Struct(r) }

func bindQuery(c echo.Context, r any) error {
	return (&echo.DefaultBinder{}).BindQueryParams(c, r)
}

func bindPath(c echo.Context, r any) error {
	return (&echo.DefaultBinder{}).BindPathParams(c, r)
}

// bodyForm parses the body of a form request without the URL query.
// ParseMultipartForm also fills PostForm with the multipart values.
func bodyForm(req *http.Request) (url.Values, error) {
	contentType := req.Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(strings.ToLower(contentType), echo.MIMEMultipartForm) {
		if err := req.ParseMultipartForm(multipartMemory); err != nil {
			return nil, err
		}
	} else if err := req.ParseForm(); err != nil {
		return nil, err
	}
	return req.PostForm, nil
}

// formValue looks name up exactly, then case-insensitively.
func formValue(values url.Values, name string) string {
	if v, ok := values[name]; ok && len(v) > 0 {
		return v[0]
	}
	for k, v := range values {
		if strings.EqualFold(k, name) && len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func emptyBodyError() error {
	return errs.NewBadRequestError("A non-empty request body is required", true, nil,
		[]errs.FieldError{{Field: "body", Error: "is required"}}, nil)
}
