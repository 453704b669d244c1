package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aidesk/saas-backend/internal/handler"
	"github.com/aidesk/saas-backend/internal/middleware"
	"github.com/aidesk/saas-backend/internal/model"
)

// Register wires every route of the API onto the provided Echo instance.
// register/login/logout/refresh are public; everything else passes through
// JWTAuth and a role gate. User listing and deletion, and business
// deletion, are admin-only; the remaining protected routes accept both
// roles.
func Register(e *echo.Echo, users *handler.UserHandler, business *handler.BusinessHandler, jwtSecret string) {
	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	auth := middleware.JWTAuth(jwtSecret)
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleBusiness)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	u := e.Group("/api/v1/users")
	u.POST("/register", users.Register)
	u.POST("/login", users.Login)
	u.POST("/logout", users.Logout)
	u.POST("/refresh", users.Refresh)
	u.GET("", users.List, auth, adminOnly)
	u.GET("/:id", users.GetByID, auth, anyRole)
	u.PUT("/:id", users.Update, auth, anyRole)
	u.DELETE("/:id", users.Delete, auth, adminOnly)

	b := e.Group("/api/v1/business", auth)
	b.POST("", business.Create, anyRole)
	b.GET("", business.List, anyRole)
	b.GET("/:id", business.GetByID, anyRole)
	b.PUT("/:id", business.Update, anyRole)
	b.DELETE("/:id", business.Delete, adminOnly)
}
