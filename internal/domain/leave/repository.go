package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceRepository - interface for leave_balances, keyed by
// (employee_id, leave_type).
type BalanceRepository interface {
	Get(ctx context.Context, employeeID string, t Type) (Balance, error)
	Put(ctx context.Context, b Balance) error
	ListByEmployee(ctx context.Context, employeeID string) ([]Balance, error)
}

// RequestRepository - interface for leave_requests.
//
// UpdateStatus is a compare-and-set: the write only happens when the stored
// status still equals from, otherwise ErrAlreadyProcessed is returned. This
// is what serializes concurrent decisions on one request.
type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	ListBlockingInRange(ctx context.Context, employeeID string, startDate, endDate time.Time) ([]Request, error)
	HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id string, from, to RequestStatus, actorID string, notes *string, at time.Time) error
}

// DeductionResult reports a balance mutation for integrity logging.
type DeductionResult struct {
	Remaining decimal.Decimal
	Clamped   bool
}
