package db

import (
	"context"

	"gorm.io/gorm"
)

// Session executes raw statements on a single connection.
type Session struct {
	tx *gorm.DB
}

// Exec runs one statement.
func (s *Session) Exec(ctx context.Context, sql string) error {
	return s.tx.WithContext(ctx).Exec(sql).Error
}

// WithSession runs fn on one dedicated connection, so session variables
// set by one statement apply to the following ones.
func WithSession(gdb *gorm.DB, fn func(*Session) error) error {
	return gdb.Connection(func(tx *gorm.DB) error {
		return fn(&Session{tx: tx})
	})
}
