package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

// RoomRepo reads the rooms table.  When lock is set (transaction-bound
// stores) rows are read with FOR UPDATE and stay locked until the
// transaction ends.
type RoomRepo struct {
	q    dbtx
	lock bool
}

// GetByID returns the room or ErrNotFound.
func (r *RoomRepo) GetByID(ctx context.Context, roomID uint64) (*model.Room, error) {
	q := `SELECT id, name, capacity, hotel_id, created_at, updated_at FROM rooms WHERE id = ?`
	if r.lock {
		q += ` FOR UPDATE`
	}
	var room model.Room
	err := r.q.QueryRowContext(ctx, q, roomID).Scan(
		&room.ID, &room.Name, &room.Capacity, &room.HotelID, &room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		if err = notFound(err); err == ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &room, nil
}
