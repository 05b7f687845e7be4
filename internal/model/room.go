package model

import "time"

// Room is a bookable unit of a hotel.  Capacity is the maximum number of
// bookings that may reference the room at the same time.
type Room struct {
	ID        uint64    // rooms.id
	Name      string    // rooms.name
	Capacity  int       // rooms.capacity
	HotelID   uint64    // rooms.hotel_id
	CreatedAt time.Time // rooms.created_at
	UpdatedAt time.Time // rooms.updated_at
}
