package middleware

import (
	"mime"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/core-routing/internal/errs"
)

// Consumes rejects requests whose Content-Type media type is not one of
// mimes with 415 Unsupported Media Type. Parameters such as charset or
// boundary are ignored for the comparison.
func Consumes(mimes ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contentType := c.Request().Header.Get(echo.HeaderContentType)

			if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
				for _, accepted := range mimes {
					if strings.EqualFold(mediaType, accepted) {
						return next(c)
					}
				}
			}

			return errs.NewUnsupportedMediaTypeError(contentType, mimes)
		}
	}
}
