package adapters

import (
	"context"
)

// DBAdapter defines the database operations the snapshot store needs. One
// namespace maps to at most one row, so queries return a row iterator and
// executions return the affected-row count directly; the count is how the
// store detects lost optimistic-concurrency races.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (rowsAffected int64, err error)
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}
