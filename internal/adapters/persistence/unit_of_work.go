package persistence

import (
	"context"

	"gorm.io/gorm"
)

type scopeKey struct{}

// scope is the database handle a unit of work carries in its context
type scope struct {
	db *gorm.DB
	tx bool
}

// GormUnitOfWork implements common.UnitOfWork on GORM native transactions
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a unit of work over db
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Do runs fn in a transaction, or in the transaction ctx already carries.
// gorm rolls back when fn returns an error or panics.
func (u *GormUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if s, ok := ctx.Value(scopeKey{}).(*scope); ok && s.tx {
		return fn(ctx)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, scopeKey{}, &scope{db: tx, tx: true}))
	})
}

// DoReadOnly runs fn on a plain session, or on the scope ctx already carries
func (u *GormUnitOfWork) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(scopeKey{}).(*scope); ok {
		return fn(ctx)
	}
	session := u.db.WithContext(ctx).Session(&gorm.Session{})
	return fn(context.WithValue(ctx, scopeKey{}, &scope{db: session}))
}

// conn returns the handle of the unit of work in ctx, falling back to db
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if s, ok := ctx.Value(scopeKey{}).(*scope); ok {
		return s.db.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
