package leave

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/attendly-app/attendance-backend-go/internal/domain/leave"
	"github.com/attendly-app/attendance-backend-go/internal/domain/settings"
	"github.com/attendly-app/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LeaveServiceImpl struct {
	tx       database.TxRunner
	settings settings.SettingsService
	logger   *slog.Logger
	now      func() time.Time
	leave.BalanceRepository
	leave.RequestRepository
}

func NewLeaveService(
	tx database.TxRunner,
	settingsService settings.SettingsService,
	balanceRepo leave.BalanceRepository,
	requestRepo leave.RequestRepository,
	logger *slog.Logger,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                tx,
		settings:          settingsService,
		logger:            logger,
		now:               time.Now,
		BalanceRepository: balanceRepo,
		RequestRepository: requestRepo,
	}
}

// Submit implements leave.LeaveService. Validation happens before any
// mutation: date ordering, organization-local today, reason length, balance
// sufficiency, and overlap against every blocking request.
func (l *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	leaveType, _ := leave.ParseType(req.LeaveType)
	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)
	duration := req.DurationType()

	if startDate.After(endDate) {
		return leave.RequestResponse{}, leave.ErrStartAfterEnd
	}
	if duration.IsHalfDay() && !startDate.Equal(endDate) {
		return leave.RequestResponse{}, leave.ErrHalfDayRange
	}

	// "Today" is the organization-local calendar date, not the server's.
	loc := l.settings.Location(ctx, req.CompanyID)
	today, _ := time.Parse("2006-01-02", l.now().In(loc).Format("2006-01-02"))
	if startDate.Before(today) {
		return leave.RequestResponse{}, leave.ErrStartInPast
	}

	totalDays := leave.TotalDaysFor(startDate, endDate, duration)
	now := l.now().UTC()

	request := leave.Request{
		ID:          uuid.NewString(),
		EmployeeID:  req.EmployeeID,
		CompanyID:   req.CompanyID,
		Type:        leaveType,
		StartDate:   startDate,
		EndDate:     endDate,
		Duration:    duration,
		TotalDays:   totalDays,
		Reason:      strings.TrimSpace(req.Reason),
		Status:      leave.RequestStatusPending,
		SubmittedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := l.tx.WithinTx(ctx, func(ctx context.Context) error {
		balance, err := l.BalanceRepository.Get(ctx, req.EmployeeID, leaveType)
		if err != nil {
			return err
		}
		if totalDays.GreaterThan(balance.RemainingDays) {
			return leave.ErrInsufficientBalance
		}

		blocking, err := l.ListBlockingInRange(ctx, req.EmployeeID, startDate, endDate)
		if err != nil {
			return err
		}
		if len(blocking) > 0 {
			return leave.ErrOverlappingLeave
		}

		request, err = l.RequestRepository.Create(ctx, request)
		return err
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return toRequestResponse(request), nil
}

// Decide implements leave.LeaveService. Only pending requests can be
// decided; the status flip and the balance deduction commit together.
// Concurrent decisions on one request are serialized by the repository's
// compare-and-set, so exactly one caller wins and the rest get
// ErrAlreadyProcessed.
func (l *LeaveServiceImpl) Decide(ctx context.Context, req leave.DecideRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	var request leave.Request
	err := l.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		request, err = l.RequestRepository.GetByID(ctx, req.RequestID)
		if err != nil {
			return err
		}
		if request.Status != leave.RequestStatusPending {
			return leave.ErrAlreadyProcessed
		}

		now := l.now().UTC()
		to := leave.RequestStatusRejected
		if strings.EqualFold(req.Action, "approve") {
			to = leave.RequestStatusApproved
		}

		if err := l.RequestRepository.UpdateStatus(ctx, request.ID, leave.RequestStatusPending, to, req.DecidedBy, req.Notes, now); err != nil {
			return err
		}

		if to == leave.RequestStatusApproved {
			if err := l.deduct(ctx, request, now); err != nil {
				return err
			}
		}

		request.Status = to
		request.ReviewerNotes = req.Notes
		request.DecidedBy = &req.DecidedBy
		request.DecidedAt = &now
		request.UpdatedAt = now
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return toRequestResponse(request), nil
}

// Cancel implements leave.LeaveService. Only approved requests can be
// cancelled; the status flip and the balance restoration commit together.
func (l *LeaveServiceImpl) Cancel(ctx context.Context, requestID, cancelledBy string) (leave.RequestResponse, error) {
	var request leave.Request
	err := l.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		request, err = l.RequestRepository.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if request.Status != leave.RequestStatusApproved {
			return leave.ErrNotApproved
		}

		now := l.now().UTC()
		if err := l.RequestRepository.UpdateStatus(ctx, request.ID, leave.RequestStatusApproved, leave.RequestStatusCancelled, cancelledBy, nil, now); err != nil {
			return err
		}

		if err := l.restore(ctx, request, now); err != nil {
			return err
		}

		request.Status = leave.RequestStatusCancelled
		request.CancelledBy = &cancelledBy
		request.CancelledAt = &now
		request.UpdatedAt = now
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	return toRequestResponse(request), nil
}

// ListRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListRequests(ctx context.Context, employeeID string) ([]leave.RequestResponse, error) {
	requests, err := l.RequestRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, toRequestResponse(r))
	}
	return responses, nil
}

// ListBalances implements leave.LeaveService.
func (l *LeaveServiceImpl) ListBalances(ctx context.Context, employeeID string) ([]leave.BalanceResponse, error) {
	balances, err := l.BalanceRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, leave.BalanceResponse{
			EmployeeID:    b.EmployeeID,
			LeaveType:     b.Type,
			RemainingDays: b.RemainingDays,
		})
	}
	return responses, nil
}

// SetBalance implements leave.LeaveService. Admin seeding/correction.
func (l *LeaveServiceImpl) SetBalance(ctx context.Context, req leave.SetBalanceRequest) (leave.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.BalanceResponse{}, err
	}

	leaveType, _ := leave.ParseType(req.LeaveType)
	days, _ := decimal.NewFromString(req.Days)

	balance := leave.Balance{
		EmployeeID:    req.EmployeeID,
		CompanyID:     req.CompanyID,
		Type:          leaveType,
		RemainingDays: days,
		UpdatedAt:     l.now().UTC(),
	}
	if err := l.BalanceRepository.Put(ctx, balance); err != nil {
		return leave.BalanceResponse{}, err
	}

	return leave.BalanceResponse{
		EmployeeID:    balance.EmployeeID,
		LeaveType:     balance.Type,
		RemainingDays: balance.RemainingDays,
	}, nil
}

// deduct subtracts the request's total days from the balance. The balance
// is clamped at zero: an over-draw can only happen through a race or bad
// data, and is logged as an integrity warning rather than crashing the
// approval.
func (l *LeaveServiceImpl) deduct(ctx context.Context, request leave.Request, now time.Time) error {
	balance, err := l.BalanceRepository.Get(ctx, request.EmployeeID, request.Type)
	if err != nil {
		return err
	}

	remaining := balance.RemainingDays.Sub(request.TotalDays)
	if remaining.IsNegative() {
		l.logger.Warn("leave balance would go negative, clamping to zero",
			slog.String("employee_id", request.EmployeeID),
			slog.String("leave_type", string(request.Type)),
			slog.String("balance", balance.RemainingDays.String()),
			slog.String("requested", request.TotalDays.String()),
		)
		remaining = decimal.Zero
	}

	balance.RemainingDays = remaining
	balance.UpdatedAt = now
	return l.BalanceRepository.Put(ctx, balance)
}

// restore adds the request's total days back to the balance.
func (l *LeaveServiceImpl) restore(ctx context.Context, request leave.Request, now time.Time) error {
	balance, err := l.BalanceRepository.Get(ctx, request.EmployeeID, request.Type)
	if err != nil {
		return err
	}

	balance.RemainingDays = balance.RemainingDays.Add(request.TotalDays)
	balance.UpdatedAt = now
	return l.BalanceRepository.Put(ctx, balance)
}

func toRequestResponse(r leave.Request) leave.RequestResponse {
	return leave.RequestResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		LeaveType:     r.Type,
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		Duration:      r.Duration,
		TotalDays:     r.TotalDays,
		Reason:        r.Reason,
		Status:        r.Status,
		ReviewerNotes: r.ReviewerNotes,
		SubmittedAt:   r.SubmittedAt.Format(time.RFC3339),
	}
}
