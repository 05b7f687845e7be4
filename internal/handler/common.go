package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-booking/internal/middleware"
)

var errNoUser = errors.New("invalid user_id in context")

// getUserID returns the authenticated user ID set by middleware.JWTAuth.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := middleware.UserID(c); ok {
		return id, nil
	}
	return 0, errNoUser
}
