package violation

import (
	"context"
	"log/slog"
	"time"

	"github.com/attendly-app/attendance-backend-go/internal/domain/settings"
	"github.com/attendly-app/attendance-backend-go/internal/domain/violation"
	"github.com/attendly-app/attendance-backend-go/internal/pkg/database"
	"github.com/attendly-app/attendance-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type AccrualServiceImpl struct {
	tx       database.TxRunner
	settings settings.SettingsService
	logger   *slog.Logger
	now      func() time.Time
	violation.RecordRepository
	violation.CountRepository
	violation.PenaltyRepository
}

func NewAccrualService(
	tx database.TxRunner,
	settingsService settings.SettingsService,
	recordRepo violation.RecordRepository,
	countRepo violation.CountRepository,
	penaltyRepo violation.PenaltyRepository,
	logger *slog.Logger,
) violation.AccrualService {
	return &AccrualServiceImpl{
		tx:                tx,
		settings:          settingsService,
		logger:            logger,
		now:               time.Now,
		RecordRepository:  recordRepo,
		CountRepository:   countRepo,
		PenaltyRepository: penaltyRepo,
	}
}

// RecordDailyViolation implements violation.AccrualService. The record
// append, the counter increment, and any penalty emission commit together.
// Counters are maintained incrementally, never recomputed by rescanning the
// record log.
func (v *AccrualServiceImpl) RecordDailyViolation(ctx context.Context, employeeID, companyID string, t violation.Type, dateKey string) error {
	now := v.now().UTC()
	monthKey := dateKey
	if len(monthKey) >= 7 {
		monthKey = monthKey[:7]
	}

	return v.tx.WithinTx(ctx, func(ctx context.Context) error {
		created, err := v.RecordRepository.Append(ctx, violation.Record{
			ID:         uuid.NewString(),
			EmployeeID: employeeID,
			CompanyID:  companyID,
			Type:       t,
			DateKey:    dateKey,
			MonthKey:   monthKey,
			CreatedAt:  now,
		})
		if err != nil {
			return err
		}
		if !created {
			// Already accrued for this day; re-running finalization must
			// not double-count.
			return nil
		}

		count, err := v.CountRepository.Increment(ctx, employeeID, companyID, t, monthKey)
		if err != nil {
			return err
		}

		return v.maybeEmitPenalty(ctx, employeeID, companyID, t, monthKey, count, now)
	})
}

// maybeEmitPenalty creates a penalty when the counter has just crossed the
// configured threshold. By default only the first crossing in a month fires;
// with RepeatPerThreshold set, every multiple of the threshold fires. The
// (employee, type, month, trigger_count) key makes either mode idempotent.
func (v *AccrualServiceImpl) maybeEmitPenalty(ctx context.Context, employeeID, companyID string, t violation.Type, monthKey string, count int, now time.Time) error {
	policy := v.settings.Get(ctx, companyID).Penalty
	threshold := policy.Threshold(t)
	if threshold <= 0 {
		return nil
	}

	crossed := count == threshold
	if policy.RepeatPerThreshold {
		crossed = count%threshold == 0
	}
	if !crossed {
		return nil
	}

	created, err := v.PenaltyRepository.CreateIfAbsent(ctx, violation.PenaltyRecord{
		ID:           uuid.NewString(),
		EmployeeID:   employeeID,
		CompanyID:    companyID,
		Type:         t,
		MonthKey:     monthKey,
		TriggerCount: count,
		Amount:       policy.Amount(t),
		Status:       violation.PenaltyStatusActive,
		DateIncurred: now,
	})
	if err != nil {
		return err
	}
	if created {
		v.logger.Info("penalty emitted",
			slog.String("employee_id", employeeID),
			slog.String("violation_type", string(t)),
			slog.String("month", monthKey),
			slog.Int("count", count),
		)
	}
	return nil
}

// GetMonthlyCounts implements violation.AccrualService. Types with no
// violations report zero.
func (v *AccrualServiceImpl) GetMonthlyCounts(ctx context.Context, employeeID, monthKey string) (violation.MonthlySummaryResponse, error) {
	if !validator.IsValidMonthKey(monthKey) {
		return violation.MonthlySummaryResponse{}, violation.ErrInvalidMonthKey
	}

	counts, err := v.CountRepository.ListByEmployeeMonth(ctx, employeeID, monthKey)
	if err != nil {
		return violation.MonthlySummaryResponse{}, err
	}

	byType := make(map[violation.Type]int, len(violation.AllTypes()))
	for _, t := range violation.AllTypes() {
		byType[t] = 0
	}
	for _, c := range counts {
		byType[c.Type] = c.Count
	}

	return violation.MonthlySummaryResponse{
		EmployeeID: employeeID,
		MonthKey:   monthKey,
		Counts:     byType,
	}, nil
}

// ListPenalties implements violation.AccrualService.
func (v *AccrualServiceImpl) ListPenalties(ctx context.Context, employeeID string) ([]violation.PenaltyResponse, error) {
	penalties, err := v.PenaltyRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]violation.PenaltyResponse, 0, len(penalties))
	for _, p := range penalties {
		responses = append(responses, toPenaltyResponse(p))
	}
	return responses, nil
}

// DecidePenalty implements violation.AccrualService. Only active penalties
// can be settled.
func (v *AccrualServiceImpl) DecidePenalty(ctx context.Context, req violation.DecidePenaltyRequest) (violation.PenaltyResponse, error) {
	if err := req.Validate(); err != nil {
		return violation.PenaltyResponse{}, err
	}
	to := violation.PenaltyStatus(req.Status)

	var penalty violation.PenaltyRecord
	err := v.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		penalty, err = v.PenaltyRepository.GetByID(ctx, req.PenaltyID)
		if err != nil {
			return err
		}
		if penalty.Status != violation.PenaltyStatusActive {
			return violation.ErrPenaltyAlreadyDecided
		}

		if err := v.PenaltyRepository.UpdateStatus(ctx, penalty.ID, violation.PenaltyStatusActive, to); err != nil {
			return err
		}
		penalty.Status = to
		return nil
	})
	if err != nil {
		return violation.PenaltyResponse{}, err
	}

	return toPenaltyResponse(penalty), nil
}

func toPenaltyResponse(p violation.PenaltyRecord) violation.PenaltyResponse {
	return violation.PenaltyResponse{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		Type:         p.Type,
		MonthKey:     p.MonthKey,
		Amount:       p.Amount,
		Status:       p.Status,
		DateIncurred: p.DateIncurred.Format("2006-01-02"),
	}
}
