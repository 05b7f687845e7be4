package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

// dbtx is the subset of *sql.DB and *sql.Tx the repositories need.  Every
// repository runs its statements through a dbtx so the same code serves
// both plain calls and calls inside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store bundles the repositories the booking service reads and writes.
// A Store obtained from InTx is bound to one transaction and reads rooms
// with a row lock, so a capacity check followed by a booking write cannot
// interleave with another writer on the same room.
type Store struct {
	db          *sql.DB
	Enrollments *EnrollmentRepo
	Tickets     *TicketRepo
	Rooms       *RoomRepo
	Bookings    *BookingRepo
}

// NewStore returns a Store running statements directly against db.
func NewStore(db *sql.DB) *Store { return newStore(db, db, false) }

func newStore(db *sql.DB, q dbtx, lockRooms bool) *Store {
	return &Store{
		db:          db,
		Enrollments: &EnrollmentRepo{q: q},
		Tickets:     &TicketRepo{q: q},
		Rooms:       &RoomRepo{q: q, lock: lockRooms},
		Bookings:    &BookingRepo{q: q},
	}
}

// InTx runs fn inside a READ COMMITTED transaction.  The transaction is
// committed when fn returns nil and rolled back otherwise.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx *Store) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(ctx, newStore(s.db, tx, true)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}

func (s *Store) FindEnrollmentByUser(ctx context.Context, userID uint64) (*model.Enrollment, error) {
	return s.Enrollments.FindByUser(ctx, userID)
}

func (s *Store) FindTicketByEnrollment(ctx context.Context, enrollmentID uint64) (*model.Ticket, error) {
	return s.Tickets.FindByEnrollment(ctx, enrollmentID)
}

func (s *Store) GetRoom(ctx context.Context, roomID uint64) (*model.Room, error) {
	return s.Rooms.GetByID(ctx, roomID)
}

func (s *Store) CountBookingsForRoom(ctx context.Context, roomID uint64) (int, error) {
	return s.Bookings.CountByRoom(ctx, roomID)
}

func (s *Store) GetBookingForUser(ctx context.Context, userID uint64) (*model.BookingWithRoom, error) {
	return s.Bookings.GetByUser(ctx, userID)
}

func (s *Store) GetUserBooking(ctx context.Context, bookingID, userID uint64) (*model.Booking, error) {
	return s.Bookings.GetForUser(ctx, bookingID, userID)
}

func (s *Store) InsertBooking(ctx context.Context, userID, roomID uint64) (*model.Booking, error) {
	return s.Bookings.Create(ctx, userID, roomID)
}

func (s *Store) ReassignBooking(ctx context.Context, bookingID, userID, roomID uint64) (*model.Booking, error) {
	return s.Bookings.Reassign(ctx, bookingID, userID, roomID)
}
