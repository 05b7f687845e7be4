package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/event-hotel-booking/internal/model"
)

// EnrollmentRepo reads the enrollments table.
type EnrollmentRepo struct{ q dbtx }

// FindByUser returns the enrollment of the given user or ErrNotFound.
func (r *EnrollmentRepo) FindByUser(ctx context.Context, userID uint64) (*model.Enrollment, error) {
	const q = `SELECT id, user_id FROM enrollments WHERE user_id = ? LIMIT 1`
	var e model.Enrollment
	if err := r.q.QueryRowContext(ctx, q, userID).Scan(&e.ID, &e.UserID); err != nil {
		if err = notFound(err); err == ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return &e, nil
}
