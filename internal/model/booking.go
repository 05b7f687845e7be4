package model

// Booking assigns a user to a room.  The business rules allow one booking
// per user; the schema does not enforce it.
type Booking struct {
	ID     uint64 // bookings.id
	UserID uint64 // bookings.user_id
	RoomID uint64 // bookings.room_id
}

// BookingWithRoom is a booking joined with the room it occupies.
type BookingWithRoom struct {
	Booking
	Room Room
}
