package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-hotel-booking/internal/model"
	"github.com/iliyamo/event-hotel-booking/internal/service"
)

// BookingService is the part of *service.BookingService the HTTP layer
// calls.
type BookingService interface {
	GetBooking(ctx context.Context, userID uint64) (*model.BookingWithRoom, error)
	CreateBooking(ctx context.Context, userID, roomID uint64) (uint64, error)
	UpdateBooking(ctx context.Context, bookingID, userID, roomID uint64) (uint64, error)
}

// BookingHandler serves /booking.  JWTAuth must run first so the caller's
// user ID is in the context.
type BookingHandler struct {
	svc BookingService
}

func NewBookingHandler(svc BookingService) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{svc: svc}
}

type roomReq struct {
	RoomID uint64 `json:"roomId"`
}

type bookingIDResp struct {
	BookingID uint64 `json:"bookingId"`
}

type roomView struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	HotelID   uint64 `json:"hotelId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type bookingView struct {
	ID   uint64   `json:"id"`
	Room roomView `json:"Room"`
}

func newBookingView(b *model.BookingWithRoom) bookingView {
	return bookingView{
		ID: b.ID,
		Room: roomView{
			ID:        b.Room.ID,
			Name:      b.Room.Name,
			Capacity:  b.Room.Capacity,
			HotelID:   b.Room.HotelID,
			CreatedAt: b.Room.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt: b.Room.UpdatedAt.UTC().Format(time.RFC3339),
		},
	}
}

// GetBooking handles GET /booking.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	b, err := h.svc.GetBooking(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, newBookingView(b))
}

// CreateBooking handles POST /booking with body {"roomId": n}.  A missing
// or zero roomId answers 404 without reaching the service.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID, ok, err := bindRoomID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "roomId is required"})
	}
	id, err := h.svc.CreateBooking(c.Request().Context(), userID, roomID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, bookingIDResp{BookingID: id})
}

// UpdateBooking handles PUT /booking/:bookingId.  A bookingId that does
// not parse is passed on as 0 and rejected by the service.
func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, _ := strconv.ParseUint(c.Param("bookingId"), 10, 64)
	roomID, ok, err := bindRoomID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "roomId is required"})
	}
	id, err := h.svc.UpdateBooking(c.Request().Context(), bookingID, userID, roomID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, bookingIDResp{BookingID: id})
}

func bindRoomID(c echo.Context) (uint64, bool, error) {
	var req roomReq
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return 0, false, err
	}
	return req.RoomID, req.RoomID != 0, nil
}

// writeServiceError maps a service error kind to a status.  Internal
// details never reach the client.
func writeServiceError(c echo.Context, err error) error {
	switch service.KindOf(err) {
	case service.KindNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": service.ReasonOf(err)})
	case service.KindForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": service.ReasonOf(err)})
	case service.KindInternal:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}
