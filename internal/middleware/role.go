package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aidesk/saas-backend/internal/model"
)

// RequireRole returns a middleware that permits the request only when the
// identity attached by JWTAuth carries one of the allowed roles. Missing
// identity and disallowed role are both rejected with 403. The check is a
// pure set-membership predicate with no side effects beyond the halt.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := GetIdentity(c)
			if !ok || !allowed[id.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "Forbidden"})
			}
			return next(c)
		}
	}
}
