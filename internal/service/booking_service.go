// Package service holds the booking eligibility rules.  Every operation is
// a short sequence of lookups, each of which can reject the request with a
// classified *Error; anything else that goes wrong is an internal failure.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/event-hotel-booking/internal/model"
	"github.com/iliyamo/event-hotel-booking/internal/queue"
	"github.com/iliyamo/event-hotel-booking/internal/repository"
)

// BookingService lets an attendee reserve, view and move a hotel room tied
// to their ticket.
type BookingService struct {
	store  BookingStore
	tx     Transactor // nil runs capacity check and write without a transaction
	events EventPublisher
	rules  TicketRules
	log    logrus.FieldLogger

	pending sync.WaitGroup // in-flight event publishes
}

// NewBookingService wires the service.  tx and events may be nil: without a
// Transactor the capacity check and the write are two separate calls and
// concurrent requests can overbook a room; without a publisher no booking
// events are emitted.
func NewBookingService(store BookingStore, tx Transactor, events EventPublisher, log logrus.FieldLogger) *BookingService {
	if store == nil {
		panic("nil store passed to NewBookingService")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BookingService{
		store:  store,
		tx:     tx,
		events: events,
		rules:  DefaultTicketRules(),
		log:    log,
	}
}

// GetBooking returns the caller's booking joined with its room.
func (s *BookingService) GetBooking(ctx context.Context, userID uint64) (*model.BookingWithRoom, error) {
	b, err := s.store.GetBookingForUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NotFound(ReasonBookingNotFound)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CreateBooking books roomID for userID and returns the new booking ID.
// Ticket eligibility is checked before room existence and capacity.
func (s *BookingService) CreateBooking(ctx context.Context, userID, roomID uint64) (uint64, error) {
	logger := s.log.WithFields(logrus.Fields{"user_id": userID, "room_id": roomID})

	if err := s.checkTicket(ctx, userID); err != nil {
		return 0, s.rejected(logger, "create", err)
	}

	var booking *model.Booking
	err := s.atomically(ctx, func(ctx context.Context, store BookingStore) error {
		if err := checkCapacity(ctx, store, roomID); err != nil {
			return err
		}
		b, err := store.InsertBooking(ctx, userID, roomID)
		if err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return 0, s.rejected(logger, "create", err)
	}

	logger.WithField("booking_id", booking.ID).Info("booking created")
	s.publish(ctx, queue.EventBookingCreated, booking)
	return booking.ID, nil
}

// UpdateBooking moves one of the caller's bookings to roomID.  A zero or
// unknown bookingID, a caller without a booking and a bookingID that is not
// the caller's are all Forbidden rather than NotFound; only an unknown room
// is NotFound.
func (s *BookingService) UpdateBooking(ctx context.Context, bookingID, userID, roomID uint64) (uint64, error) {
	logger := s.log.WithFields(logrus.Fields{"booking_id": bookingID, "user_id": userID, "room_id": roomID})

	if bookingID == 0 {
		return 0, s.rejected(logger, "update", Forbidden(ReasonBookingIDRequired))
	}
	if _, err := s.store.GetBookingForUser(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = Forbidden(ReasonUserHasNoBooking)
		}
		return 0, s.rejected(logger, "update", err)
	}
	current, err := s.store.GetUserBooking(ctx, bookingID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, s.rejected(logger, "update", Forbidden(ReasonBookingNotOwned))
	}
	if err != nil {
		return 0, s.rejected(logger, "update", err)
	}

	var booking *model.Booking
	err = s.atomically(ctx, func(ctx context.Context, store BookingStore) error {
		if err := checkCapacity(ctx, store, roomID); err != nil {
			return err
		}
		b, err := store.ReassignBooking(ctx, bookingID, userID, roomID)
		if errors.Is(err, repository.ErrNotFound) {
			return Forbidden(ReasonUserHasNoBooking)
		}
		if err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return 0, s.rejected(logger, "update", err)
	}

	logger.WithField("from_room_id", current.RoomID).Info("booking updated")
	s.publish(ctx, queue.EventBookingUpdated, booking)
	return booking.ID, nil
}

// checkTicket resolves the user's enrollment and ticket and runs the rule
// chain against the ticket.
func (s *BookingService) checkTicket(ctx context.Context, userID uint64) error {
	enrollment, err := s.store.FindEnrollmentByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return NotFound(ReasonEnrollmentNotFound)
	}
	if err != nil {
		return err
	}
	ticket, err := s.store.FindTicketByEnrollment(ctx, enrollment.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return Forbidden(ReasonTicketNotFound)
	}
	if err != nil {
		return err
	}
	return s.rules.Check(ticket)
}

// checkCapacity fails unless the room exists and fewer bookings than its
// capacity reference it.
func checkCapacity(ctx context.Context, store BookingStore, roomID uint64) error {
	room, err := store.GetRoom(ctx, roomID)
	if errors.Is(err, repository.ErrNotFound) {
		return NotFound(ReasonRoomNotFound)
	}
	if err != nil {
		return err
	}
	occupied, err := store.CountBookingsForRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if occupied >= room.Capacity {
		return Forbidden(ReasonRoomFull)
	}
	return nil
}

func (s *BookingService) atomically(ctx context.Context, fn func(ctx context.Context, store BookingStore) error) error {
	if s.tx == nil {
		return fn(ctx, s.store)
	}
	return s.tx.InTx(ctx, fn)
}

// rejected logs a failed operation and passes err through.  Classified
// rejections are routine and logged at info; anything else is an error.
func (s *BookingService) rejected(logger logrus.FieldLogger, op string, err error) error {
	if KindOf(err) == KindInternal {
		logger.WithError(err).Errorf("booking %s failed", op)
		return fmt.Errorf("booking %s: %w", op, err)
	}
	logger.WithField("reason", ReasonOf(err)).Infof("booking %s rejected", op)
	return err
}

// publish emits a booking event in the background.  Delivery is best
// effort and never affects the outcome of the request.
func (s *BookingService) publish(ctx context.Context, typ string, b *model.Booking) {
	if s.events == nil {
		return
	}
	ev := queue.NewBookingEvent(typ, b.ID, b.UserID, b.RoomID)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.events.PublishBookingEvent(context.WithoutCancel(ctx), ev); err != nil {
			s.log.WithError(err).WithField("booking_id", b.ID).Warn("publish booking event failed")
		}
	}()
}

// Drain waits for in-flight event publishes to finish.  It returns
// ctx.Err() if ctx ends first; those events may be lost.
func (s *BookingService) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
