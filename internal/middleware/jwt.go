package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aidesk/saas-backend/internal/model"
	"github.com/aidesk/saas-backend/internal/utils"
)

// identityKey is the context key under which JWTAuth stores the caller's
// identity.
const identityKey = "identity"

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID string
	Role   model.Role
}

// GetIdentity returns the identity attached by JWTAuth, if any.
func GetIdentity(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the caller's identity into the request context. A missing
// token is an authentication failure (401); a token that fails verification
// for any reason — bad signature, wrong algorithm, expired — is rejected
// with 403 without telling the caller which check failed.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Unauthorized"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.VerifyAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "Invalid token"})
			}
			c.Set(identityKey, Identity{UserID: claims.UserID, Role: model.Role(claims.Role)})
			return next(c)
		}
	}
}
