package handler

import "github.com/labstack/echo/v4"

// Envelope is the uniform response wrapper. Every endpoint, success or
// failure, returns this shape.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

func respondSuccess(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

func respondError(c echo.Context, status int, message string, details ...any) error {
	env := Envelope{Success: false, Message: message}
	if len(details) > 0 {
		env.Error = details[0]
	}
	return c.JSON(status, env)
}
