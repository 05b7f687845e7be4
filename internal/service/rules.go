package service

import "github.com/iliyamo/event-hotel-booking/internal/model"

// TicketRule is one named eligibility predicate.  A ticket that does not
// satisfy Allows is rejected with Reason.
type TicketRule struct {
	Name   string
	Allows func(t *model.Ticket) bool
	Reason string
}

// TicketRules is an ordered rule chain evaluated short-circuit.
type TicketRules []TicketRule

// DefaultTicketRules is the chain applied before a room is assigned.  The
// order is observable: a remote ticket is reported as remote even when it
// is also unpaid.
func DefaultTicketRules() TicketRules {
	return TicketRules{
		{
			Name:   "ticket-not-remote",
			Allows: func(t *model.Ticket) bool { return !t.Type.IsRemote },
			Reason: ReasonTicketRemote,
		},
		{
			Name:   "ticket-includes-hotel",
			Allows: func(t *model.Ticket) bool { return t.Type.IncludesHotel },
			Reason: ReasonTicketNoHotel,
		},
		{
			Name:   "ticket-paid",
			Allows: func(t *model.Ticket) bool { return t.Status == model.TicketStatusPaid },
			Reason: ReasonTicketUnpaid,
		},
	}
}

// Check returns a Forbidden error carrying the reason of the first rule
// the ticket fails, or nil when every rule passes.
func (rs TicketRules) Check(t *model.Ticket) error {
	if t == nil {
		return Forbidden(ReasonTicketNotFound)
	}
	for _, r := range rs {
		if !r.Allows(t) {
			return Forbidden(r.Reason)
		}
	}
	return nil
}
