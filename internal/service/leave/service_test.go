package leave

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/attendly-app/attendance-backend-go/internal/domain/leave"
	"github.com/attendly-app/attendance-backend-go/internal/repository/memory"
	settingsService "github.com/attendly-app/attendance-backend-go/internal/service/settings"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLeaveService(t *testing.T) *LeaveServiceImpl {
	t.Helper()

	store := memory.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := &LeaveServiceImpl{
		tx:                store,
		settings:          settingsService.NewProvider(memory.NewSettingsRepository(store), logger),
		logger:            logger,
		now:               func() time.Time { return time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC) },
		BalanceRepository: memory.NewLeaveBalanceRepository(store),
		RequestRepository: memory.NewLeaveRequestRepository(store),
	}

	_, err := svc.SetBalance(context.Background(), leave.SetBalanceRequest{
		EmployeeID: "emp-1",
		CompanyID:  "company-1",
		LeaveType:  "full",
		Days:       "12",
	})
	require.NoError(t, err)

	return svc
}

func submitReq(start, end string) leave.SubmitRequest {
	return leave.SubmitRequest{
		EmployeeID: "emp-1",
		CompanyID:  "company-1",
		LeaveType:  "full",
		StartDate:  start,
		EndDate:    end,
		Reason:     "family event out of town",
	}
}

func remainingDays(t *testing.T, svc *LeaveServiceImpl) decimal.Decimal {
	t.Helper()
	balance, err := svc.BalanceRepository.Get(context.Background(), "emp-1", leave.TypeFull)
	require.NoError(t, err)
	return balance.RemainingDays
}

func TestSubmitTotalDays(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		duration string
		want     string
	}{
		{name: "single day", start: "2025-01-10", end: "2025-01-10", want: "1"},
		{name: "six day span", start: "2025-01-10", end: "2025-01-15", want: "6"},
		{name: "across month boundary", start: "2025-01-30", end: "2025-02-02", want: "4"},
		{name: "half day", start: "2025-01-10", end: "2025-01-10", duration: "half_day_morning", want: "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newLeaveService(t)
			req := submitReq(tt.start, tt.end)
			req.Duration = tt.duration

			resp, err := svc.Submit(context.Background(), req)
			require.NoError(t, err)

			assert.Equal(t, tt.want, resp.TotalDays.String())
			assert.Equal(t, leave.RequestStatusPending, resp.Status)
		})
	}
}

func TestSubmitRejectsBadRanges(t *testing.T) {
	ctx := context.Background()
	svc := newLeaveService(t)

	_, err := svc.Submit(ctx, submitReq("2025-01-15", "2025-01-10"))
	assert.True(t, errors.Is(err, leave.ErrStartAfterEnd))

	req := submitReq("2025-01-10", "2025-01-12")
	req.Duration = "half_day_morning"
	_, err = svc.Submit(ctx, req)
	assert.True(t, errors.Is(err, leave.ErrHalfDayRange))

	_, err = svc.Submit(ctx, submitReq("2024-12-20", "2024-12-22"))
	assert.True(t, errors.Is(err, leave.ErrStartInPast))
}

func TestSubmitInsufficientBalance(t *testing.T) {
	ctx := context.Background()
	svc := newLeaveService(t)

	_, err := svc.SetBalance(ctx, leave.SetBalanceRequest{
		EmployeeID: "emp-1",
		CompanyID:  "company-1",
		LeaveType:  "full",
		Days:       "2",
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, submitReq("2025-01-10", "2025-01-15"))
	assert.True(t, errors.Is(err, leave.ErrInsufficientBalance))
}

func TestSubmitOverlap(t *testing.T) {
	ctx := context.Background()
	svc := newLeaveService(t)

	_, err := svc.Submit(ctx, submitReq("2025-01-10", "2025-01-15"))
	require.NoError(t, err)

	// A pending request blocks its dates.
	_, err = svc.Submit(ctx, submitReq("2025-01-12", "2025-01-20"))
	assert.True(t, errors.Is(err, leave.ErrOverlappingLeave))

	// Touching boundaries overlap too: ranges are inclusive.
	_, err = svc.Submit(ctx, submitReq("2025-01-15", "2025-01-16"))
	assert.True(t, errors.Is(err, leave.ErrOverlappingLeave))

	// The day right after the range is free.
	_, err = svc.Submit(ctx, submitReq("2025-01-16", "2025-01-17"))
	assert.NoError(t, err)
}

func TestApproveDeductsAndCancelRestores(t *testing.T) {
	ctx := context.Background()
	svc := newLeaveService(t)

	resp, err := svc.Submit(ctx, submitReq("2025-01-10", "2025-01-15"))
	require.NoError(t, err)

	decided, err := svc.Decide(ctx, leave.DecideRequest{
		RequestID: resp.ID,
		Action:    "approve",
		DecidedBy: "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, leave.RequestStatusApproved, decided.Status)
	assert.Equal(t, "6", remainingDays(t, svc).String())

	// A decided request cannot be decided again.
	_, err = svc.Decide(ctx, leave.DecideRequest{
		RequestID: resp.ID,
		Action:    "reject",
		DecidedBy: "admin-2",
	})
	assert.True(t, errors.Is(err, leave.ErrAlreadyProcessed))

	cancelled, err := svc.Cancel(ctx, resp.ID, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, leave.RequestStatusCancelled, cancelled.Status)
	assert.Equal(t, "12", remainingDays(t, svc).String())
}

func TestRejectKeepsBalance(t *testing.T) {
	ctx := context.Background()
	svc := newLeaveService(t)

	resp, err := svc.Submit(ctx, submitReq("2025-01-10", "2025-01-15"))
	require.NoError(t, err)

	decided, err := svc.Decide(ctx, leave.DecideRequest{
		RequestID: resp.ID,
		Action:    "reject",
		DecidedBy: "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, leave.RequestStatusRejected, decided.Status)
	assert.Equal(t, "12", remainingDays(t, svc).String())

	// Rejected requests free their dates.
	_, err = svc.Submit(ctx, submitReq("2025-01-12", "2025-01-13"))
	assert.NoError(t, err)
}

func TestCancelRequiresApproved(t *testing.T) {
	ctx := context.Background()
	svc := newLeaveService(t)

	resp, err := svc.Submit(ctx, submitReq("2025-01-10", "2025-01-12"))
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, resp.ID, "emp-1")
	assert.True(t, errors.Is(err, leave.ErrNotApproved))
}

func TestApproveClampsBalanceAtZero(t *testing.T) {
	ctx := context.Background()
	svc := newLeaveService(t)

	resp, err := svc.Submit(ctx, submitReq("2025-01-10", "2025-01-12"))
	require.NoError(t, err)

	// Balance shrank between submission and approval.
	_, err = svc.SetBalance(ctx, leave.SetBalanceRequest{
		EmployeeID: "emp-1",
		CompanyID:  "company-1",
		LeaveType:  "full",
		Days:       "1",
	})
	require.NoError(t, err)

	_, err = svc.Decide(ctx, leave.DecideRequest{
		RequestID: resp.ID,
		Action:    "approve",
		DecidedBy: "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "0", remainingDays(t, svc).String())
}
