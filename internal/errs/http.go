package errs

import (
	"net/http"
)

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code overrides the default "BAD_REQUEST" when non-nil; errors carries
// field-level details; action is an optional client instruction.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusNotFound)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewUnsupportedMediaTypeError creates a 415 Unsupported Media Type HTTPError
// for a request whose Content-Type is not consumed by the route.
func NewUnsupportedMediaTypeError(contentType string, accepted []string) *HTTPError {
	message := "Unsupported content type"
	if contentType != "" {
		message += " " + contentType
	}

	fieldErrors := make([]FieldError, 0, len(accepted))
	for _, mime := range accepted {
		fieldErrors = append(fieldErrors, FieldError{Field: "Content-Type", Error: "accepts " + mime})
	}

	return &HTTPError{
		Code:     statusCode(http.StatusUnsupportedMediaType),
		Message:  message,
		Status:   http.StatusUnsupportedMediaType,
		Override: true,
		Errors:   fieldErrors,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError with
// a retry hint.
func NewTooManyRequestsError(retryAfterSeconds string) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusTooManyRequests),
		Message:  "Rate limit exceeded",
		Status:   http.StatusTooManyRequests,
		Override: true,
		Action: &Action{
			Type:    ActionTypeRetry,
			Message: "Retry the request later",
			Value:   retryAfterSeconds,
		},
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the underlying error.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusInternalServerError),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}
