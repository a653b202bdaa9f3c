package repository

import "context"

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// SafeRollback rolls back a transaction, ignoring already-closed errors.
// Implementations log anything else themselves.
func SafeRollback(ctx context.Context, tx Tx) {
	_ = tx.Rollback(ctx)
}
