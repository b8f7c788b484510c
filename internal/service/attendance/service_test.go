package attendance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/attendly-app/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-app/attendance-backend-go/internal/domain/employee"
	violationDomain "github.com/attendly-app/attendance-backend-go/internal/domain/violation"
	"github.com/attendly-app/attendance-backend-go/internal/repository/memory"
	settingsService "github.com/attendly-app/attendance-backend-go/internal/service/settings"
	violationService "github.com/attendly-app/attendance-backend-go/internal/service/violation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	svc       *AttendanceServiceImpl
	store     *memory.Store
	countRepo violationDomain.CountRepository
	now       time.Time
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	store := memory.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provider := settingsService.NewProvider(memory.NewSettingsRepository(store), logger)
	countRepo := memory.NewViolationCountRepository(store)

	accrual := violationService.NewAccrualService(
		store,
		provider,
		memory.NewViolationRecordRepository(store),
		countRepo,
		memory.NewPenaltyRepository(store),
		logger,
	)

	f := &serviceFixture{
		store:     store,
		countRepo: countRepo,
	}

	f.svc = &AttendanceServiceImpl{
		tx:                      store,
		settings:                provider,
		accrual:                 accrual,
		logger:                  logger,
		now:                     func() time.Time { return f.now },
		AttendanceDayRepository: memory.NewAttendanceDayRepository(store),
		RequestRepository:       memory.NewLeaveRequestRepository(store),
		EmployeeRepository:      memory.NewEmployeeRepository(store),
	}

	err := memory.NewEmployeeRepository(store).Upsert(context.Background(), employee.Employee{
		ID:        "emp-1",
		CompanyID: "company-1",
		FullName:  "Asha Verma",
		Active:    true,
	})
	require.NoError(t, err)

	return f
}

// kolkataTime builds a UTC instant from an Asia/Kolkata wall-clock time.
func kolkataTime(t *testing.T, day, hour, min int) time.Time {
	t.Helper()
	loc := mustLocation(t, "Asia/Kolkata")
	return time.Date(2024, 1, day, hour, min, 0, 0, loc).UTC()
}

func TestRecordCheck(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	f.now = kolkataTime(t, 15, 9, 0)

	resp, err := f.svc.RecordCheck(ctx, attendance.RecordCheckRequest{
		EmployeeID: "emp-1",
		CompanyID:  "company-1",
		Timestamp:  kolkataTime(t, 15, 8, 40).Format(time.RFC3339),
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-15", resp.DateKey)
	assert.Equal(t, "morning", resp.Slot)
	assert.Equal(t, attendance.OutcomeOnTime, resp.Outcome)
	assert.Equal(t, attendance.DayStatusPending, resp.DayStatus)
}

func TestRecordCheckDuplicateSlot(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	f.now = kolkataTime(t, 15, 9, 0)

	_, err := f.svc.RecordCheck(ctx, attendance.RecordCheckRequest{
		EmployeeID: "emp-1",
		CompanyID:  "company-1",
		Timestamp:  kolkataTime(t, 15, 8, 40).Format(time.RFC3339),
	})
	require.NoError(t, err)

	// Second morning check the same day is rejected, not merged.
	_, err = f.svc.RecordCheck(ctx, attendance.RecordCheckRequest{
		EmployeeID: "emp-1",
		CompanyID:  "company-1",
		Timestamp:  kolkataTime(t, 15, 9, 30).Format(time.RFC3339),
	})
	assert.True(t, errors.Is(err, attendance.ErrDuplicateCheck))
}

func TestRecordCheckOutsideWindows(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	f.now = kolkataTime(t, 15, 11, 0)

	_, err := f.svc.RecordCheck(ctx, attendance.RecordCheckRequest{
		EmployeeID: "emp-1",
		CompanyID:  "company-1",
		Timestamp:  kolkataTime(t, 15, 11, 0).Format(time.RFC3339),
	})
	assert.True(t, errors.Is(err, attendance.ErrNoActiveWindow))
}

func TestFinalizeDayAbsent(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	f.now = kolkataTime(t, 16, 0, 30)

	day, err := f.svc.FinalizeDay(ctx, "emp-1", "2024-01-15")
	require.NoError(t, err)

	assert.Equal(t, attendance.DayStatusAbsent, day.Status)
	assert.True(t, day.Finalized)

	count, err := f.countRepo.Get(ctx, "emp-1", violationDomain.TypeAbsent, "2024-01")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFinalizeDayIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	f.now = kolkataTime(t, 16, 0, 30)

	_, err := f.svc.FinalizeDay(ctx, "emp-1", "2024-01-15")
	require.NoError(t, err)

	// Re-running finalization must not re-emit the violation.
	day, err := f.svc.FinalizeDay(ctx, "emp-1", "2024-01-15")
	require.NoError(t, err)
	assert.True(t, day.Finalized)

	count, err := f.countRepo.Get(ctx, "emp-1", violationDomain.TypeAbsent, "2024-01")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFinalizeDayStillOpen(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	f.now = kolkataTime(t, 15, 12, 0)

	_, err := f.svc.FinalizeDay(ctx, "emp-1", "2024-01-15")
	assert.True(t, errors.Is(err, attendance.ErrDayNotClosed))
}

func TestRecordCheckAfterFinalization(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	f.now = kolkataTime(t, 16, 0, 30)

	_, err := f.svc.FinalizeDay(ctx, "emp-1", "2024-01-15")
	require.NoError(t, err)

	_, err = f.svc.RecordCheck(ctx, attendance.RecordCheckRequest{
		EmployeeID: "emp-1",
		CompanyID:  "company-1",
		Timestamp:  kolkataTime(t, 15, 9, 0).Format(time.RFC3339),
	})
	assert.True(t, errors.Is(err, attendance.ErrDayFinalized))
}

func TestOverrideDay(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	f.now = kolkataTime(t, 16, 0, 30)

	_, err := f.svc.FinalizeDay(ctx, "emp-1", "2024-01-15")
	require.NoError(t, err)

	day, err := f.svc.OverrideDay(ctx, attendance.OverrideDayRequest{
		EmployeeID:   "emp-1",
		DateKey:      "2024-01-15",
		Status:       "present",
		OverriddenBy: "admin-1",
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.DayStatusPresent, day.Status)
	assert.True(t, day.Overridden)

	// The override corrects the status but never retracts or re-emits the
	// violation that already accrued.
	count, err := f.countRepo.Get(ctx, "emp-1", violationDomain.TypeAbsent, "2024-01")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMonthlySummary(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	f.now = kolkataTime(t, 16, 0, 30)

	_, err := f.svc.FinalizeDay(ctx, "emp-1", "2024-01-15")
	require.NoError(t, err)

	f.now = kolkataTime(t, 17, 0, 30)
	_, err = f.svc.FinalizeDay(ctx, "emp-1", "2024-01-16")
	require.NoError(t, err)

	summary, err := f.svc.MonthlySummary(ctx, "emp-1", "2024-01")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Totals[attendance.DayStatusAbsent])
	assert.Equal(t, 2, summary.DaysClosed)
}
