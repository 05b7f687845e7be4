package service

import (
	"context"

	"github.com/iliyamo/event-hotel-booking/internal/repository"
)

type sqlTransactor struct{ store *repository.Store }

// NewSQLTransactor adapts a repository.Store to the Transactor port.
func NewSQLTransactor(store *repository.Store) Transactor {
	return sqlTransactor{store: store}
}

func (t sqlTransactor) InTx(ctx context.Context, fn func(ctx context.Context, store BookingStore) error) error {
	return t.store.InTx(ctx, func(ctx context.Context, tx *repository.Store) error {
		return fn(ctx, tx)
	})
}
