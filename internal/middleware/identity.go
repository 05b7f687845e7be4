package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// userIDKey is the echo.Context key under which JWTAuth stores the
// authenticated user's ID as a uint64.
const userIDKey = "user_id"

// UserID returns the authenticated user's ID stored by JWTAuth.  ok is
// false when the request did not pass through JWTAuth.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(userIDKey).(uint64)
	return id, ok && id != 0
}

// userKey renders the user ID for use inside Redis keys.  Unauthenticated
// requests share the "anon" bucket.
func userKey(c echo.Context) string {
	if id, ok := UserID(c); ok {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}
