package violation

import "context"

// RecordRepository - append-only log of violation events.
// Append must be idempotent on (employee_id, date_key, type): the second
// attempt reports created=false instead of duplicating the record.
type RecordRepository interface {
	Append(ctx context.Context, rec Record) (created bool, err error)
	ListByEmployeeMonth(ctx context.Context, employeeID, monthKey string) ([]Record, error)
}

// CountRepository - incrementally maintained monthly counters.
// Increment adds exactly one and returns the new value; counts are never
// recomputed by rescanning history.
type CountRepository interface {
	Increment(ctx context.Context, employeeID, companyID string, t Type, monthKey string) (int, error)
	Get(ctx context.Context, employeeID string, t Type, monthKey string) (int, error)
	ListByEmployeeMonth(ctx context.Context, employeeID, monthKey string) ([]MonthlyCount, error)
}

// PenaltyRepository - penalty records keyed by
// (employee_id, type, month_key, trigger_count) for first-crossing semantics.
type PenaltyRepository interface {
	CreateIfAbsent(ctx context.Context, p PenaltyRecord) (created bool, err error)
	GetByID(ctx context.Context, id string) (PenaltyRecord, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]PenaltyRecord, error)
	UpdateStatus(ctx context.Context, id string, from, to PenaltyStatus) error
}
