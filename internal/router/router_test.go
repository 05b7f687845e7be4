package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-hotel-booking/internal/config"
	"github.com/iliyamo/event-hotel-booking/internal/handler"
	"github.com/iliyamo/event-hotel-booking/internal/model"
	"github.com/iliyamo/event-hotel-booking/internal/service"
	"github.com/iliyamo/event-hotel-booking/internal/utils"
)

const secret = "secret"

// stubBookings rejects a zero booking id the way the booking service does
// and records what reached it.
type stubBookings struct {
	updates []uint64
}

func (s *stubBookings) GetBooking(context.Context, uint64) (*model.BookingWithRoom, error) {
	return nil, service.NotFound(service.ReasonBookingNotFound)
}

func (s *stubBookings) CreateBooking(context.Context, uint64, uint64) (uint64, error) {
	return 1, nil
}

func (s *stubBookings) UpdateBooking(_ context.Context, bookingID, _, _ uint64) (uint64, error) {
	s.updates = append(s.updates, bookingID)
	if bookingID == 0 {
		return 0, service.Forbidden(service.ReasonBookingIDRequired)
	}
	return bookingID, nil
}

func newServer(t *testing.T) (*echo.Echo, *stubBookings, string) {
	t.Helper()
	svc := &stubBookings{}
	e := echo.New()
	RegisterRoutes(e)
	RegisterBooking(e, handler.NewBookingHandler(svc), secret,
		config.RateLimitConfig{}, config.CacheConfig{}, nil)
	tok, err := utils.NewAccessToken(secret, 7, 5)
	require.NoError(t, err)
	return e, svc, "Bearer " + tok.Token
}

func serve(e *echo.Echo, method, path, body, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestUpdateBooking_WithoutIDIsForbidden(t *testing.T) {
	e, svc, auth := newServer(t)

	for _, path := range []string{"/booking", "/booking/"} {
		rec := serve(e, http.MethodPut, path, `{"roomId":2}`, auth)

		assert.Equal(t, http.StatusForbidden, rec.Code, path)
		assert.JSONEq(t, `{"error":"Booking id is required"}`, rec.Body.String(), path)
	}
	assert.Equal(t, []uint64{0, 0}, svc.updates)
}

func TestUpdateBooking_WithoutIDOrRoomIsNotFound(t *testing.T) {
	e, svc, auth := newServer(t)

	rec := serve(e, http.MethodPut, "/booking/", `{}`, auth)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"roomId is required"}`, rec.Body.String())
	assert.Empty(t, svc.updates)
}

func TestUpdateBooking_WithID(t *testing.T) {
	e, svc, auth := newServer(t)

	rec := serve(e, http.MethodPut, "/booking/3", `{"roomId":2}`, auth)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"bookingId":3}`, rec.Body.String())
	assert.Equal(t, []uint64{3}, svc.updates)
}

func TestBookingRoutes_RequireToken(t *testing.T) {
	e, _, _ := newServer(t)

	assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodGet, "/booking", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodPut, "/booking/", `{"roomId":2}`, "").Code)
}

func TestGetBooking_Routed(t *testing.T) {
	e, _, auth := newServer(t)

	rec := serve(e, http.MethodGet, "/booking", "", auth)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Booking not found"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	e, _, _ := newServer(t)

	rec := serve(e, http.MethodGet, "/healthz", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
