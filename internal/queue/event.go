// Package queue defines message payloads exchanged over the message broker
// together with the publisher used by the API and the consumer run by the
// worker.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// Booking event types.
const (
	EventBookingCreated = "booking.created"
	EventBookingUpdated = "booking.updated"
)

// BookingEvent is published after a booking is created or moved to another
// room.  It carries enough for downstream consumers to journal or notify
// without querying the primary database.
type BookingEvent struct {
	MessageID  string `json:"message_id"`
	Type       string `json:"type"`
	BookingID  uint64 `json:"booking_id"`
	UserID     uint64 `json:"user_id"`
	RoomID     uint64 `json:"room_id"`
	OccurredAt string `json:"occurred_at"`
}

// NewBookingEvent stamps a fresh message ID and the current UTC time.
func NewBookingEvent(typ string, bookingID, userID, roomID uint64) BookingEvent {
	return BookingEvent{
		MessageID:  uuid.NewString(),
		Type:       typ,
		BookingID:  bookingID,
		UserID:     userID,
		RoomID:     roomID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
