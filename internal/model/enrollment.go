package model

// Enrollment links a user to their event registration.  A user has at
// most one enrollment; tickets hang off the enrollment.
type Enrollment struct {
	ID     uint64 // enrollments.id
	UserID uint64 // enrollments.user_id
}
