package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/event-hotel-booking/internal/config"
	"github.com/iliyamo/event-hotel-booking/internal/handler"
	"github.com/iliyamo/event-hotel-booking/internal/middleware"
)

// RegisterBooking registers the /booking endpoints.  Every route requires
// a valid JWT.  PUT without a booking id still reaches the handler, which
// passes it on as 0.  The rate limiter and the response cache run after JWTAuth
// so both are keyed by the authenticated user; with rdb nil they are
// no-ops.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, jwtSecret string, rl config.RateLimitConfig, cc config.CacheConfig, rdb *redis.Client) {
	g := e.Group(
		"/booking",
		middleware.JWTAuth(jwtSecret),
		middleware.NewTokenBucket(rl, rdb),
		middleware.NewRedisCache(cc, rdb),
	)
	g.GET("", h.GetBooking)
	g.POST("", h.CreateBooking)
	g.PUT("", h.UpdateBooking)
	g.PUT("/", h.UpdateBooking)
	g.PUT("/:bookingId", h.UpdateBooking)
}
