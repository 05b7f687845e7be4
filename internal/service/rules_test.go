package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

func ticket(status model.TicketStatus, remote, hotel bool) *model.Ticket {
	return &model.Ticket{
		ID:     1,
		Status: status,
		Type:   model.TicketType{ID: 1, IsRemote: remote, IncludesHotel: hotel},
	}
}

func TestDefaultTicketRules_Check(t *testing.T) {
	cases := []struct {
		name   string
		ticket *model.Ticket
		reason string // empty means allowed
	}{
		{"paid in person with hotel", ticket(model.TicketStatusPaid, false, true), ""},
		{"missing ticket", nil, ReasonTicketNotFound},
		{"remote wins over everything", ticket(model.TicketStatusReserved, true, false), ReasonTicketRemote},
		{"remote with hotel", ticket(model.TicketStatusPaid, true, true), ReasonTicketRemote},
		{"no hotel before unpaid", ticket(model.TicketStatusReserved, false, false), ReasonTicketNoHotel},
		{"no hotel", ticket(model.TicketStatusPaid, false, false), ReasonTicketNoHotel},
		{"unpaid", ticket(model.TicketStatusReserved, false, true), ReasonTicketUnpaid},
	}
	rules := DefaultTicketRules()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := rules.Check(tc.ticket)
			if tc.reason == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrForbidden)
			assert.Equal(t, tc.reason, ReasonOf(err))
		})
	}
}

func TestDefaultTicketRules_Order(t *testing.T) {
	var names []string
	for _, r := range DefaultTicketRules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"ticket-not-remote", "ticket-includes-hotel", "ticket-paid"}, names)
}

func TestTicketRules_CustomChain(t *testing.T) {
	rules := TicketRules{{
		Name:   "always-deny",
		Allows: func(*model.Ticket) bool { return false },
		Reason: "nope",
	}}

	err := rules.Check(ticket(model.TicketStatusPaid, false, true))

	assert.Equal(t, KindForbidden, KindOf(err))
	assert.Equal(t, "nope", ReasonOf(err))
}

func TestError_Classification(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), NotFound(ReasonRoomNotFound))

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, ReasonRoomNotFound, ReasonOf(wrapped))
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.NotErrorIs(t, wrapped, ErrForbidden)

	plain := errors.New("boom")
	assert.Equal(t, KindInternal, KindOf(plain))
	assert.Empty(t, ReasonOf(plain))
	assert.Equal(t, "forbidden: Ticket unpaid", Forbidden(ReasonTicketUnpaid).Error())
}
