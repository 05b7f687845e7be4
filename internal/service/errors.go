package service

import "errors"

// Kind classifies a failure surfaced by the booking service.  The set is
// closed: handlers switch over it exhaustively.
type Kind int

const (
	// KindInternal covers every error that is not a *Error, such as a
	// lost database connection.  Its detail must not reach clients.
	KindInternal Kind = iota
	KindNotFound
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error is a classified booking failure carrying a human readable reason.
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Reason
}

// Is reports whether target is the bare sentinel of the same kind, so that
// errors.Is(err, ErrForbidden) matches any Forbidden regardless of reason.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Reason == "" && t.Kind == e.Kind
}

var (
	ErrNotFound  = &Error{Kind: KindNotFound}
	ErrForbidden = &Error{Kind: KindForbidden}
)

func NotFound(reason string) error  { return &Error{Kind: KindNotFound, Reason: reason} }
func Forbidden(reason string) error { return &Error{Kind: KindForbidden, Reason: reason} }

// KindOf returns the kind of err, KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// ReasonOf returns the reason attached to a classified error, or "".
func ReasonOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}

// Rejection reasons.  Some of them are observable by clients and match
// the messages the booking API has always returned.
const (
	ReasonEnrollmentNotFound = "Enrollment not found"
	ReasonBookingNotFound    = "Booking not found"
	ReasonRoomNotFound       = "Room not found"
	ReasonTicketNotFound     = "Ticket not found"
	ReasonTicketRemote       = "Ticket is remote"
	ReasonTicketNoHotel      = "Ticket does not include hotel"
	ReasonTicketUnpaid       = "Ticket unpaid"
	ReasonRoomFull           = "room do not have capacity"
	ReasonBookingIDRequired  = "Booking id is required"
	ReasonUserHasNoBooking   = "User has no booking"
	ReasonBookingNotOwned    = "Booking does not belong to user"
)
