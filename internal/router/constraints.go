package router

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// intConstraint makes a route non-matching (404) when any of the named
// path parameters is not a 32-bit integer.
func intConstraint(names ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for _, name := range names {
				if _, err := strconv.ParseInt(c.Param(name), 10, 32); err != nil {
					return echo.ErrNotFound
				}
			}
			return next(c)
		}
	}
}
