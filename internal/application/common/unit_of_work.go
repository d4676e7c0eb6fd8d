package common

import "context"

// UnitOfWork runs a function in one atomic scope.
//
// Do reuses the unit of work already carried by ctx instead of nesting a new
// transaction, so composed operations share one commit. Otherwise it begins a
// transaction, commits when fn returns nil and rolls back on error or panic.
// Repositories pick the active scope up from the ctx passed to fn.
//
// DoReadOnly gives fn a consistent session without a transaction.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
