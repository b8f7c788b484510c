package violation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/attendly-app/attendance-backend-go/internal/domain/violation"
	"github.com/attendly-app/attendance-backend-go/internal/fixtures"
	"github.com/attendly-app/attendance-backend-go/internal/repository/memory"
	settingsService "github.com/attendly-app/attendance-backend-go/internal/service/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accrualFixture struct {
	svc   *AccrualServiceImpl
	store *memory.Store
}

func newAccrualFixture(t *testing.T) *accrualFixture {
	t.Helper()

	store := memory.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := &AccrualServiceImpl{
		tx:                store,
		settings:          settingsService.NewProvider(memory.NewSettingsRepository(store), logger),
		logger:            logger,
		now:               func() time.Time { return time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC) },
		RecordRepository:  memory.NewViolationRecordRepository(store),
		CountRepository:   memory.NewViolationCountRepository(store),
		PenaltyRepository: memory.NewPenaltyRepository(store),
	}

	return &accrualFixture{svc: svc, store: store}
}

// recordN accrues one absent violation per day for n consecutive days.
func recordN(t *testing.T, svc *AccrualServiceImpl, violationType violation.Type, n int) {
	t.Helper()
	for day := 1; day <= n; day++ {
		dateKey := fmt.Sprintf("2024-01-%02d", day)
		err := svc.RecordDailyViolation(context.Background(), "emp-1", "company-1", violationType, dateKey)
		require.NoError(t, err)
	}
}

func TestPenaltyAtThreshold(t *testing.T) {
	ctx := context.Background()
	f := newAccrualFixture(t)

	// Default absent threshold is 4: no penalty before the 4th violation.
	recordN(t, f.svc, violation.TypeAbsent, 3)

	penalties, err := f.svc.ListPenalties(ctx, "emp-1")
	require.NoError(t, err)
	assert.Empty(t, penalties)

	err = f.svc.RecordDailyViolation(ctx, "emp-1", "company-1", violation.TypeAbsent, "2024-01-04")
	require.NoError(t, err)

	penalties, err = f.svc.ListPenalties(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, penalties, 1)
	assert.Equal(t, violation.TypeAbsent, penalties[0].Type)
	assert.Equal(t, "2024-01", penalties[0].MonthKey)
	assert.Equal(t, "1000", penalties[0].Amount.String())
	assert.Equal(t, violation.PenaltyStatusActive, penalties[0].Status)

	// The 5th violation does not fire again in first-crossing mode.
	err = f.svc.RecordDailyViolation(ctx, "emp-1", "company-1", violation.TypeAbsent, "2024-01-05")
	require.NoError(t, err)

	penalties, err = f.svc.ListPenalties(ctx, "emp-1")
	require.NoError(t, err)
	assert.Len(t, penalties, 1)
}

func TestPenaltyRepeatPerThreshold(t *testing.T) {
	ctx := context.Background()
	f := newAccrualFixture(t)

	s := fixtures.DefaultSettings("company-1")
	s.Penalty.Thresholds[violation.TypeLate] = 2
	s.Penalty.RepeatPerThreshold = true
	require.NoError(t, memory.NewSettingsRepository(f.store).Upsert(ctx, s))

	recordN(t, f.svc, violation.TypeLate, 5)

	// Threshold 2 with repeat fires at counts 2 and 4.
	penalties, err := f.svc.PenaltyRepository.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, penalties, 2)

	triggers := []int{penalties[0].TriggerCount, penalties[1].TriggerCount}
	assert.ElementsMatch(t, []int{2, 4}, triggers)
}

func TestRecordDailyViolationIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newAccrualFixture(t)

	err := f.svc.RecordDailyViolation(ctx, "emp-1", "company-1", violation.TypeAbsent, "2024-01-03")
	require.NoError(t, err)

	// The same day again, as a re-run finalization would produce.
	err = f.svc.RecordDailyViolation(ctx, "emp-1", "company-1", violation.TypeAbsent, "2024-01-03")
	require.NoError(t, err)

	count, err := f.svc.CountRepository.Get(ctx, "emp-1", violation.TypeAbsent, "2024-01")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGetMonthlyCounts(t *testing.T) {
	ctx := context.Background()
	f := newAccrualFixture(t)

	recordN(t, f.svc, violation.TypeLate, 2)

	summary, err := f.svc.GetMonthlyCounts(ctx, "emp-1", "2024-01")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Counts[violation.TypeLate])
	assert.Equal(t, 0, summary.Counts[violation.TypeAbsent])
	assert.Equal(t, 0, summary.Counts[violation.TypeHalfDay])
	assert.Equal(t, 0, summary.Counts[violation.TypeEarlyLeave])

	_, err = f.svc.GetMonthlyCounts(ctx, "emp-1", "2024-1")
	assert.True(t, errors.Is(err, violation.ErrInvalidMonthKey))
}

func TestDecidePenalty(t *testing.T) {
	ctx := context.Background()
	f := newAccrualFixture(t)

	recordN(t, f.svc, violation.TypeAbsent, 4)

	penalties, err := f.svc.ListPenalties(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, penalties, 1)

	decided, err := f.svc.DecidePenalty(ctx, violation.DecidePenaltyRequest{
		PenaltyID: penalties[0].ID,
		Status:    "waived",
	})
	require.NoError(t, err)
	assert.Equal(t, violation.PenaltyStatusWaived, decided.Status)

	// Settled penalties stay settled.
	_, err = f.svc.DecidePenalty(ctx, violation.DecidePenaltyRequest{
		PenaltyID: penalties[0].ID,
		Status:    "paid",
	})
	assert.True(t, errors.Is(err, violation.ErrPenaltyAlreadyDecided))
}
