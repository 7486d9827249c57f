// Package db provides transaction management and query scopes shared by repositories.
package db

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type txKey struct{}

// TransactionManager runs units of work inside a single database transaction.
type TransactionManager struct {
	db   *gorm.DB
	opts *sql.TxOptions
}

// NewTransactionManager creates a manager using the driver's default isolation.
func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// NewTransactionManagerWithIsolation creates a manager that opens every
// transaction at the given isolation level.
func NewTransactionManagerWithIsolation(db *gorm.DB, level sql.IsolationLevel) *TransactionManager {
	return &TransactionManager{db: db, opts: &sql.TxOptions{Isolation: level}}
}

// RunInTransaction executes fn within a transaction carried on the context.
// A returned error or panic rolls everything back. Nested calls join the
// outer transaction.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	}, tm.opts)
}

// GetTxFromContext returns the transaction on ctx, or defaultDB bound to ctx.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}

// InTransaction reports whether ctx carries an open transaction.
func InTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*gorm.DB)
	return ok
}
