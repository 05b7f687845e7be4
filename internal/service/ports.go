package service

import (
	"context"

	"github.com/iliyamo/event-hotel-booking/internal/model"
	"github.com/iliyamo/event-hotel-booking/internal/queue"
)

// BookingStore is the data access the booking service depends on.  Lookups
// report absence with repository.ErrNotFound.
type BookingStore interface {
	FindEnrollmentByUser(ctx context.Context, userID uint64) (*model.Enrollment, error)
	FindTicketByEnrollment(ctx context.Context, enrollmentID uint64) (*model.Ticket, error)
	CountBookingsForRoom(ctx context.Context, roomID uint64) (int, error)
	GetRoom(ctx context.Context, roomID uint64) (*model.Room, error)
	GetBookingForUser(ctx context.Context, userID uint64) (*model.BookingWithRoom, error)
	GetUserBooking(ctx context.Context, bookingID, userID uint64) (*model.Booking, error)
	InsertBooking(ctx context.Context, userID, roomID uint64) (*model.Booking, error)
	ReassignBooking(ctx context.Context, bookingID, userID, roomID uint64) (*model.Booking, error)
}

// Transactor runs fn against a store bound to a single transaction in
// which room reads hold a row lock.  fn's error aborts the transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context, store BookingStore) error) error
}

// EventPublisher ships booking events to downstream consumers.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, ev queue.BookingEvent) error
}
