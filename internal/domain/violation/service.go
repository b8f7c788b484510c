package violation

import "context"

// AccrualService converts finalized day statuses into violation records,
// maintains the monthly counters, and emits penalties on threshold
// crossings.
type AccrualService interface {
	// RecordDailyViolation appends one violation for (employee, dateKey,
	// type), increments the monthly counter, and creates a penalty when the
	// counter crosses the configured threshold. Idempotent per
	// (employee, dateKey, type).
	RecordDailyViolation(ctx context.Context, employeeID, companyID string, t Type, dateKey string) error

	GetMonthlyCounts(ctx context.Context, employeeID, monthKey string) (MonthlySummaryResponse, error)
	ListPenalties(ctx context.Context, employeeID string) ([]PenaltyResponse, error)
	DecidePenalty(ctx context.Context, req DecidePenaltyRequest) (PenaltyResponse, error)
}
