// Package router registers the HTTP routes of the booking API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-booking/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers sign-up and sign-in.  Both are public; sign-in
// issues the bearer token the booking routes require.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	e.POST("/users", a.SignUp)
	e.POST("/auth/sign-in", a.SignIn)
}
