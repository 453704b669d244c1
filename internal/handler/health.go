package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Root answers the bare path so load balancers and humans get a quick
// liveness signal.
func Root(c echo.Context) error {
	return c.String(http.StatusOK, "SaaS Backend Running")
}

// Health reports service liveness as JSON.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
