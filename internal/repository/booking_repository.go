package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

// BookingRepo provides the reads and writes on the bookings table the
// booking service needs.  Bookings are never deleted here.
type BookingRepo struct{ q dbtx }

// CountByRoom returns how many bookings currently reference the room.
func (r *BookingRepo) CountByRoom(ctx context.Context, roomID uint64) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings WHERE room_id = ?`
	var n int
	if err := r.q.QueryRowContext(ctx, q, roomID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}

// GetByUser returns the user's booking joined with its room.  When a user
// somehow holds several bookings the oldest one wins.
func (r *BookingRepo) GetByUser(ctx context.Context, userID uint64) (*model.BookingWithRoom, error) {
	const q = `SELECT b.id, b.user_id, b.room_id,
                      r.id, r.name, r.capacity, r.hotel_id, r.created_at, r.updated_at
               FROM bookings b
               JOIN rooms r ON r.id = b.room_id
               WHERE b.user_id = ?
               ORDER BY b.id
               LIMIT 1`
	var b model.BookingWithRoom
	err := r.q.QueryRowContext(ctx, q, userID).Scan(
		&b.ID, &b.UserID, &b.RoomID,
		&b.Room.ID, &b.Room.Name, &b.Room.Capacity, &b.Room.HotelID, &b.Room.CreatedAt, &b.Room.UpdatedAt,
	)
	if err != nil {
		if err = notFound(err); err == ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

// GetForUser returns booking bookingID when it belongs to userID, and
// ErrNotFound otherwise.
func (r *BookingRepo) GetForUser(ctx context.Context, bookingID, userID uint64) (*model.Booking, error) {
	const q = `SELECT id, user_id, room_id FROM bookings WHERE id = ? AND user_id = ?`
	var b model.Booking
	if err := r.q.QueryRowContext(ctx, q, bookingID, userID).Scan(&b.ID, &b.UserID, &b.RoomID); err != nil {
		if err = notFound(err); err == ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("get user booking: %w", err)
	}
	return &b, nil
}

// Create inserts a booking and returns it with the generated ID.
func (r *BookingRepo) Create(ctx context.Context, userID, roomID uint64) (*model.Booking, error) {
	const q = `INSERT INTO bookings (user_id, room_id) VALUES (?, ?)`
	res, err := r.q.ExecContext(ctx, q, userID, roomID)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert booking id: %w", err)
	}
	return &model.Booking{ID: uint64(id), UserID: userID, RoomID: roomID}, nil
}

// Reassign points an existing booking at another room (and owner) and
// returns the stored row.  MySQL reports zero affected rows for a no-op
// update, so existence is checked by reading the row back.
func (r *BookingRepo) Reassign(ctx context.Context, bookingID, userID, roomID uint64) (*model.Booking, error) {
	const upd = `UPDATE bookings SET user_id = ?, room_id = ? WHERE id = ?`
	if _, err := r.q.ExecContext(ctx, upd, userID, roomID, bookingID); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	const sel = `SELECT id, user_id, room_id FROM bookings WHERE id = ?`
	var b model.Booking
	if err := r.q.QueryRowContext(ctx, sel, bookingID).Scan(&b.ID, &b.UserID, &b.RoomID); err != nil {
		if err = notFound(err); err == ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("reload booking: %w", err)
	}
	return &b, nil
}
