package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", MakeUpperCaseWithUnderscores("Unsupported Media Type"))
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{"bad request", NewBadRequestError("bad", false, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", NewNotFoundError("missing", false, nil), http.StatusNotFound, "NOT_FOUND"},
		{"unsupported", NewUnsupportedMediaTypeError("text/plain", []string{"application/json"}), http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE"},
		{"rate limited", NewTooManyRequestsError("1"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestNewBadRequestError_CustomCode(t *testing.T) {
	code := "INVALID_BODY"
	err := NewBadRequestError("bad", true, &code, []FieldError{{Field: "bodyParam1", Error: "is required"}}, nil)

	assert.Equal(t, "INVALID_BODY", err.Code)
	assert.Len(t, err.Errors, 1)
}

func TestHTTPError_IsAndWrap(t *testing.T) {
	wrapped := fmt.Errorf("binding: %w", NewNotFoundError("Route not found", false, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	assert.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, "Route not found", httpErr.Error())
}
