package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-api/internal/core/domain"
)

// OwnerParam only lets a request through when the named path parameter equals
// the authenticated caller. A mismatch is reported as a missing user so other
// accounts cannot be probed. Must run after Auth.
func OwnerParam(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, _ := c.Get(ContextUserID).(string)
			if caller == "" || c.Param(param) != caller {
				return domain.ErrUserNotFound
			}
			return next(c)
		}
	}
}
