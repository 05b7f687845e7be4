package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

// TicketRepo reads tickets together with their ticket type.
type TicketRepo struct{ q dbtx }

// FindByEnrollment returns the most recent ticket issued under the
// enrollment, joined with its type.  ErrNotFound when there is none.
func (r *TicketRepo) FindByEnrollment(ctx context.Context, enrollmentID uint64) (*model.Ticket, error) {
	const q = `SELECT t.id, t.enrollment_id, t.ticket_type_id, t.status,
                      tt.id, tt.name, tt.is_remote, tt.includes_hotel
               FROM tickets t
               JOIN ticket_types tt ON tt.id = t.ticket_type_id
               WHERE t.enrollment_id = ?
               ORDER BY t.id DESC
               LIMIT 1`
	var t model.Ticket
	var status string
	err := r.q.QueryRowContext(ctx, q, enrollmentID).Scan(
		&t.ID, &t.EnrollmentID, &t.TicketTypeID, &status,
		&t.Type.ID, &t.Type.Name, &t.Type.IsRemote, &t.Type.IncludesHotel,
	)
	if err != nil {
		if err = notFound(err); err == ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	t.Status = model.TicketStatus(status)
	return &t, nil
}
