// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// booking service and the handlers to distinguish between different
// failure scenarios without depending on database/sql directly.
package repository

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a lookup matches no row.  Repositories
// translate sql.ErrNoRows into this value so callers never see driver
// specific errors for the common "absent" case.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when creating a user whose email is already
// registered. Handlers should translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// notFound maps sql.ErrNoRows to ErrNotFound and leaves other errors alone.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
