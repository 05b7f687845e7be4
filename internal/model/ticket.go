package model

// TicketStatus is the payment state of a ticket.
type TicketStatus string

const (
	TicketStatusReserved TicketStatus = "RESERVED"
	TicketStatusPaid     TicketStatus = "PAID"
)

// TicketType is the category of a ticket.  It decides whether the holder
// attends remotely and whether hotel accommodation is part of the deal.
type TicketType struct {
	ID            uint64 // ticket_types.id
	Name          string // ticket_types.name
	IsRemote      bool   // ticket_types.is_remote
	IncludesHotel bool   // ticket_types.includes_hotel
}

// Ticket is the admission purchased under an enrollment, loaded together
// with its type since every eligibility rule needs both.
type Ticket struct {
	ID           uint64       // tickets.id
	EnrollmentID uint64       // tickets.enrollment_id
	TicketTypeID uint64       // tickets.ticket_type_id
	Status       TicketStatus // tickets.status
	Type         TicketType
}
