package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/core-routing/internal/errs"
)

// Validatable is implemented by request payload types that know how to
// validate themselves, usually by calling Struct.
type Validatable interface {
	Validate() error
}

// Binder is implemented by request types whose body cannot be bound by
// echo's default binder, e.g. a bare JSON string. When a payload
// implements Binder, BindAndValidate calls it instead of c.Bind.
type Binder interface {
	Bind(c echo.Context) error
}

// CustomValidationError represents a validation issue that cannot be
// expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// bindingTags are consulted in order to name a field in error messages
// the way the client spelled it.
var bindingTags = []string{"json", "query", "param", "form"}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range bindingTags {
			name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
			if name == "-" {
				continue
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})
	return v
}

// Struct runs the shared validator against a tagged struct.
func Struct(v any) error {
	return validate.Struct(v)
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. payload.Bind(c) when payload is a Binder, c.Bind(payload) otherwise.
//  2. payload.Validate() applies validation rules.
//  3. Failures become *errs.HTTPError: 415 for an unsupported body
//     content type, 400 with field-level errors for everything else.
//
// payload must be a pointer so binding can populate it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	var err error
	if binder, ok := payload.(Binder); ok {
		err = binder.Bind(c)
	} else {
		err = c.Bind(payload)
	}
	if err != nil {
		return bindError(c, err)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

func bindError(c echo.Context, err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) && echoErr.Code == http.StatusUnsupportedMediaType {
		return errs.NewUnsupportedMediaTypeError(c.Request().Header.Get(echo.HeaderContentType), nil)
	}

	return errs.NewBadRequestError(bindMessage(err), true, nil, bindFieldErrors(err), nil)
}

func bindMessage(err error) string {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return msg
		}
		return http.StatusText(echoErr.Code)
	}
	return err.Error()
}

func bindFieldErrors(err error) []errs.FieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []errs.FieldError{{
			Field: typeErr.Field,
			Error: fmt.Sprintf("must be a %s, got %s", typeErr.Type, typeErr.Value),
		}}
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return []errs.FieldError{{
			Error: fmt.Sprintf("%q is not a valid integer", numErr.Num),
		}}
	}

	return nil
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", []errs.FieldError{{Error: err.Error()}}
	}

	for _, err := range validationErrors {
		field := err.Field()
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
