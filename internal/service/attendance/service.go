package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendly-app/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-app/attendance-backend-go/internal/domain/employee"
	"github.com/attendly-app/attendance-backend-go/internal/domain/leave"
	"github.com/attendly-app/attendance-backend-go/internal/domain/settings"
	"github.com/attendly-app/attendance-backend-go/internal/domain/violation"
	"github.com/attendly-app/attendance-backend-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	tx       database.TxRunner
	settings settings.SettingsService
	accrual  violation.AccrualService
	logger   *slog.Logger
	now      func() time.Time
	attendance.AttendanceDayRepository
	leave.RequestRepository
	employee.EmployeeRepository
}

func NewAttendanceService(
	tx database.TxRunner,
	settingsService settings.SettingsService,
	accrualService violation.AccrualService,
	dayRepo attendance.AttendanceDayRepository,
	leaveRequestRepo leave.RequestRepository,
	employeeRepo employee.EmployeeRepository,
	logger *slog.Logger,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:                      tx,
		settings:                settingsService,
		accrual:                 accrualService,
		logger:                  logger,
		now:                     time.Now,
		AttendanceDayRepository: dayRepo,
		RequestRepository:       leaveRequestRepo,
		EmployeeRepository:      employeeRepo,
	}
}

// RecordCheck implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordCheck(ctx context.Context, req attendance.RecordCheckRequest) (attendance.CheckResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckResponse{}, err
	}

	s := a.settings.Get(ctx, req.CompanyID)
	loc := a.settings.Location(ctx, req.CompanyID)
	now := a.now().UTC()
	eventTime := req.EventTime(now)
	dateKey := LocalDateKey(eventTime, loc)

	window, err := SlotForInstant(s, eventTime, loc, req.SlotHint)
	if err != nil {
		return attendance.CheckResponse{}, err
	}

	classification := attendance.CheckClassification{
		Slot:      window.Key,
		Timestamp: eventTime,
		LocalTime: eventTime.In(loc).Format("15:04"),
		Outcome:   ClassifyEvent(window, eventTime, loc),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	var day attendance.AttendanceDay
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		day, err = a.loadOrCreateDay(ctx, req.EmployeeID, req.CompanyID, dateKey, now)
		if err != nil {
			return err
		}
		if day.Finalized {
			return attendance.ErrDayFinalized
		}
		if _, ok := day.CheckForSlot(window.Key); ok {
			return fmt.Errorf("%w: %s", attendance.ErrDuplicateCheck, window.Key)
		}

		day.Checks = append(day.Checks, classification)

		onLeave, err := a.HasApprovedLeaveOn(ctx, req.EmployeeID, dateAtMidnight(dateKey))
		if err != nil {
			return err
		}
		day.Status = ResolveDay(s, day, dateKey, onLeave, now, loc).Status
		day.UpdatedAt = now

		return a.AttendanceDayRepository.Upsert(ctx, day)
	})
	if err != nil {
		return attendance.CheckResponse{}, err
	}

	return attendance.CheckResponse{
		EmployeeID: req.EmployeeID,
		DateKey:    dateKey,
		Slot:       window.Key,
		SlotLabel:  window.Label,
		LocalTime:  classification.LocalTime,
		Outcome:    classification.Outcome,
		DayStatus:  day.Status,
	}, nil
}

// GetDay implements attendance.AttendanceService. The returned status is the
// live resolution, which may still be provisional for an open day.
func (a *AttendanceServiceImpl) GetDay(ctx context.Context, employeeID, dateKey string) (attendance.DayResponse, error) {
	if _, err := time.Parse("2006-01-02", dateKey); err != nil {
		return attendance.DayResponse{}, attendance.ErrInvalidDateKey
	}

	day, err := a.AttendanceDayRepository.Get(ctx, employeeID, dateKey)
	if err != nil {
		return attendance.DayResponse{}, err
	}

	if !day.Finalized {
		s := a.settings.Get(ctx, day.CompanyID)
		loc := a.settings.Location(ctx, day.CompanyID)
		onLeave, err := a.HasApprovedLeaveOn(ctx, employeeID, dateAtMidnight(dateKey))
		if err != nil {
			return attendance.DayResponse{}, err
		}
		day.Status = ResolveDay(s, day, dateKey, onLeave, a.now().UTC(), loc).Status
	}

	return toDayResponse(day), nil
}

// FinalizeDay implements attendance.AttendanceService. Idempotent: a day
// that is already finalized is returned unchanged, and violations are
// emitted at most once per day regardless of how often finalization runs.
func (a *AttendanceServiceImpl) FinalizeDay(ctx context.Context, employeeID, dateKey string) (attendance.DayResponse, error) {
	if _, err := time.Parse("2006-01-02", dateKey); err != nil {
		return attendance.DayResponse{}, attendance.ErrInvalidDateKey
	}

	var day attendance.AttendanceDay
	err := a.tx.WithinTx(ctx, func(ctx context.Context) error {
		now := a.now().UTC()

		var err error
		day, err = a.loadOrCreateDay(ctx, employeeID, "", dateKey, now)
		if err != nil {
			return err
		}
		if day.Finalized {
			return nil
		}

		s := a.settings.Get(ctx, day.CompanyID)
		loc := a.settings.Location(ctx, day.CompanyID)

		onLeave, err := a.HasApprovedLeaveOn(ctx, employeeID, dateAtMidnight(dateKey))
		if err != nil {
			return err
		}

		resolution := ResolveDay(s, day, dateKey, onLeave, now, loc)
		if !resolution.Closed {
			return attendance.ErrDayNotClosed
		}

		day.Status = resolution.Status
		day.Finalized = true
		day.UpdatedAt = now

		if t, ok := ViolationTypeFor(day.Status); ok && !day.ViolationEmitted {
			if err := a.accrual.RecordDailyViolation(ctx, day.EmployeeID, day.CompanyID, t, dateKey); err != nil {
				return err
			}
			day.ViolationEmitted = true
		}

		return a.AttendanceDayRepository.Upsert(ctx, day)
	})
	if err != nil {
		return attendance.DayResponse{}, err
	}

	return toDayResponse(day), nil
}

// OverrideDay implements attendance.AttendanceService. Admin-only repair of
// a day's status; never re-emits violations.
func (a *AttendanceServiceImpl) OverrideDay(ctx context.Context, req attendance.OverrideDayRequest) (attendance.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayResponse{}, err
	}
	status, _ := attendance.NormalizeDayStatus(req.Status)

	var day attendance.AttendanceDay
	err := a.tx.WithinTx(ctx, func(ctx context.Context) error {
		now := a.now().UTC()

		var err error
		day, err = a.AttendanceDayRepository.Get(ctx, req.EmployeeID, req.DateKey)
		if err != nil {
			return err
		}

		day.Status = status
		day.Finalized = true
		day.OverriddenBy = &req.OverriddenBy
		day.OverriddenAt = &now
		day.UpdatedAt = now

		a.logger.Info("attendance day overridden",
			slog.String("employee_id", req.EmployeeID),
			slog.String("date", req.DateKey),
			slog.String("status", string(status)),
			slog.String("overridden_by", req.OverriddenBy),
		)

		return a.AttendanceDayRepository.Upsert(ctx, day)
	})
	if err != nil {
		return attendance.DayResponse{}, err
	}

	return toDayResponse(day), nil
}

// MonthlySummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MonthlySummary(ctx context.Context, employeeID, monthKey string) (attendance.MonthlySummaryResponse, error) {
	if _, err := time.Parse("2006-01", monthKey); err != nil {
		return attendance.MonthlySummaryResponse{}, violation.ErrInvalidMonthKey
	}

	days, err := a.AttendanceDayRepository.ListByEmployeeMonth(ctx, employeeID, monthKey)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	totals := make(map[attendance.DayStatus]int)
	closed := 0
	for _, d := range days {
		totals[d.Status]++
		if d.Finalized {
			closed++
		}
	}

	return attendance.MonthlySummaryResponse{
		EmployeeID: employeeID,
		MonthKey:   monthKey,
		Totals:     totals,
		DaysClosed: closed,
	}, nil
}

// loadOrCreateDay fetches the day record, creating it lazily on first touch.
// A fully absent day has no record until finalization creates one; in that
// case the company is resolved from the employee directory.
func (a *AttendanceServiceImpl) loadOrCreateDay(ctx context.Context, employeeID, companyID, dateKey string, now time.Time) (attendance.AttendanceDay, error) {
	day, err := a.AttendanceDayRepository.Get(ctx, employeeID, dateKey)
	if err == nil {
		return day, nil
	}
	if !errors.Is(err, attendance.ErrDayNotFound) {
		return attendance.AttendanceDay{}, err
	}

	if companyID == "" {
		emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
		if err != nil {
			return attendance.AttendanceDay{}, err
		}
		companyID = emp.CompanyID
	}

	return attendance.AttendanceDay{
		EmployeeID: employeeID,
		CompanyID:  companyID,
		DateKey:    dateKey,
		Status:     attendance.DayStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func dateAtMidnight(dateKey string) time.Time {
	t, _ := time.Parse("2006-01-02", dateKey)
	return t
}

func toDayResponse(day attendance.AttendanceDay) attendance.DayResponse {
	checks := day.Checks
	if checks == nil {
		checks = []attendance.CheckClassification{}
	}
	return attendance.DayResponse{
		EmployeeID: day.EmployeeID,
		DateKey:    day.DateKey,
		Status:     day.Status,
		Finalized:  day.Finalized,
		Checks:     checks,
		Overridden: day.OverriddenBy != nil,
	}
}
