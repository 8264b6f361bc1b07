package attendance

import (
	"context"
	"time"
)

// EventRepository is the ledger store. Time ranges are half open: [from, to).
type EventRepository interface {
	// Insert stores the event unless one already exists for the same
	// employee and timestamp. inserted is false when the row already existed.
	Insert(ctx context.Context, event Event) (inserted bool, err error)

	// DeleteAll removes every ledger row (full resync)
	DeleteAll(ctx context.Context) (int64, error)

	// DeleteByEmployeeInRange removes one employee's events in [from, to)
	DeleteByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) (int64, error)

	// ListByEmployeeInRange returns one employee's events ordered by timestamp
	ListByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) ([]Event, error)

	// ListByEmployeesInRange batch-fetches events for many employees at once
	ListByEmployeesInRange(ctx context.Context, employeeIDs []string, from, to time.Time) ([]Event, error)

	// List returns a page of one employee's events, newest first
	List(ctx context.Context, employeeID string, filter EventFilter) ([]Event, int64, error)

	// LockLedger takes the ledger-wide lock for the current transaction.
	// Merges take it shared, resync takes it exclusive.
	LockLedger(ctx context.Context, exclusive bool) error
}
