package attendance

import "context"

// AttendanceService owns the ledger: device sync, resync and manual corrections.
type AttendanceService interface {
	// Sync fetches the full punch batch from the terminal, classifies it and merges it
	Sync(ctx context.Context) (SyncResponse, error)

	// Resync deletes the whole ledger and rebuilds it from a fresh terminal batch
	Resync(ctx context.Context) (SyncResponse, error)

	// Merge inserts classified punches idempotently
	Merge(ctx context.Context, punches []ClassifiedPunch) (MergeResult, error)

	// ManualOverride replaces one employee's events on one date
	ManualOverride(ctx context.Context, req ManualOverrideRequest) (ManualOverrideResponse, error)

	// ListEvents returns a page of an employee's ledger
	ListEvents(ctx context.Context, employeeID string, filter EventFilter) (ListEventsResponse, error)
}
