package service

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/event-hotel-booking/internal/model"
	"github.com/iliyamo/event-hotel-booking/internal/queue"
	"github.com/iliyamo/event-hotel-booking/internal/repository"
)

// fakeStore is an in-memory BookingStore.
type fakeStore struct {
	mu          sync.Mutex
	enrollments map[uint64]*model.Enrollment // keyed by user ID
	tickets     map[uint64]*model.Ticket     // keyed by enrollment ID
	rooms       map[uint64]*model.Room
	bookings    []*model.Booking
	nextID      uint64
	err         error // returned by every call when set
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		enrollments: map[uint64]*model.Enrollment{},
		tickets:     map[uint64]*model.Ticket{},
		rooms:       map[uint64]*model.Room{},
		nextID:      1,
	}
}

// withTicket registers an enrollment and ticket for userID.
func (f *fakeStore) withTicket(userID uint64, status model.TicketStatus, remote, hotel bool) *fakeStore {
	enrollmentID := userID + 100
	f.enrollments[userID] = &model.Enrollment{ID: enrollmentID, UserID: userID}
	f.tickets[enrollmentID] = &model.Ticket{
		ID:           userID + 200,
		EnrollmentID: enrollmentID,
		TicketTypeID: 1,
		Status:       status,
		Type:         model.TicketType{ID: 1, IsRemote: remote, IncludesHotel: hotel},
	}
	return f
}

func (f *fakeStore) withEligibleUser(userID uint64) *fakeStore {
	return f.withTicket(userID, model.TicketStatusPaid, false, true)
}

func (f *fakeStore) withRoom(id uint64, capacity int) *fakeStore {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f.rooms[id] = &model.Room{ID: id, Name: "Room", Capacity: capacity, HotelID: 1, CreatedAt: now, UpdatedAt: now}
	return f
}

func (f *fakeStore) withBooking(userID, roomID uint64) *model.Booking {
	b := &model.Booking{ID: f.nextID, UserID: userID, RoomID: roomID}
	f.nextID++
	f.bookings = append(f.bookings, b)
	return b
}

func (f *fakeStore) FindEnrollmentByUser(_ context.Context, userID uint64) (*model.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.enrollments[userID]; ok {
		return e, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) FindTicketByEnrollment(_ context.Context, enrollmentID uint64) (*model.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if t, ok := f.tickets[enrollmentID]; ok {
		return t, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) CountBookingsForRoom(_ context.Context, roomID uint64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	n := 0
	for _, b := range f.bookings {
		if b.RoomID == roomID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) GetRoom(_ context.Context, roomID uint64) (*model.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.rooms[roomID]; ok {
		return r, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) GetBookingForUser(_ context.Context, userID uint64) (*model.BookingWithRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, b := range f.bookings {
		if b.UserID == userID {
			return &model.BookingWithRoom{Booking: *b, Room: *f.rooms[b.RoomID]}, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) GetUserBooking(_ context.Context, bookingID, userID uint64) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, b := range f.bookings {
		if b.ID == bookingID && b.UserID == userID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) InsertBooking(_ context.Context, userID, roomID uint64) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	b := &model.Booking{ID: f.nextID, UserID: userID, RoomID: roomID}
	f.nextID++
	f.bookings = append(f.bookings, b)
	return b, nil
}

func (f *fakeStore) ReassignBooking(_ context.Context, bookingID, userID, roomID uint64) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, b := range f.bookings {
		if b.ID == bookingID {
			b.UserID = userID
			b.RoomID = roomID
			cp := *b
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) roomOf(bookingID uint64) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == bookingID {
			return b.RoomID
		}
	}
	return 0
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

// lockingTransactor serializes every transaction with a single mutex,
// which is what a row lock on one room amounts to.
type lockingTransactor struct {
	mu    sync.Mutex
	store BookingStore
	calls int
}

func (t *lockingTransactor) InTx(ctx context.Context, fn func(ctx context.Context, store BookingStore) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls++
	return fn(ctx, t.store)
}

// chanPublisher records published events on a buffered channel.  When
// release is set each publish blocks until it is closed.
type chanPublisher struct {
	events  chan queue.BookingEvent
	err     error
	release chan struct{}
}

func newChanPublisher() *chanPublisher {
	return &chanPublisher{events: make(chan queue.BookingEvent, 16)}
}

func (p *chanPublisher) PublishBookingEvent(_ context.Context, ev queue.BookingEvent) error {
	p.events <- ev
	if p.release != nil {
		<-p.release
	}
	return p.err
}
