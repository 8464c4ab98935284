package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"ripple/internal/domain/entity"
	"ripple/pkg/errors"
	"ripple/pkg/response"
)

type RoleChecker interface {
	RequireRole(ctx context.Context, uid, role string) (*entity.User, error)
}

type RoleMiddleware struct {
	checker RoleChecker
}

func NewRoleMiddleware(checker RoleChecker) *RoleMiddleware {
	return &RoleMiddleware{
		checker: checker,
	}
}

// Require lets the request through only when the authenticated account has
// role. The account record is stored as "user". Must run after Authenticate.
func (m *RoleMiddleware) Require(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := c.Get("uid").(string)
			if !ok || uid == "" {
				return response.Error(c, errors.Unauthorized("Authentication required", nil))
			}

			user, err := m.checker.RequireRole(c.Request().Context(), uid, role)
			if err != nil {
				return response.Error(c, err)
			}

			c.Set("user", user)

			return next(c)
		}
	}
}
