package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendly-app/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-app/attendance-backend-go/internal/domain/employee"
	"github.com/attendly-app/attendance-backend-go/internal/domain/settings"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	settingsService   settings.SettingsService
	settingsRepo      settings.Repository
	employeeRepo      employee.EmployeeRepository
}

func NewAttendanceJobs(
	attendanceService attendance.AttendanceService,
	settingsService settings.SettingsService,
	settingsRepo settings.Repository,
	employeeRepo employee.EmployeeRepository,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		settingsService:   settingsService,
		settingsRepo:      settingsRepo,
		employeeRepo:      employeeRepo,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("finalize_previous_day", 1*time.Hour, j.FinalizePreviousDay)
}

// FinalizePreviousDay closes out the previous local calendar day for every
// active employee of every configured company. The job ticks hourly but only
// acts during each company's local midnight hour, so each company is swept
// once per day shortly after its day closes. Finalization is idempotent, so
// an extra sweep is harmless.
func (j *AttendanceJobs) FinalizePreviousDay(ctx context.Context) error {
	companyIDs, err := j.settingsRepo.ListCompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	for _, companyID := range companyIDs {
		loc := j.settingsService.Location(ctx, companyID)
		localNow := time.Now().In(loc)
		if localNow.Hour() != 0 {
			continue
		}

		dateKey := localNow.AddDate(0, 0, -1).Format("2006-01-02")
		slog.Info("Cron: Finalizing previous day", "company_id", companyID, "date", dateKey)

		employees, err := j.employeeRepo.ListActiveByCompanyID(ctx, companyID)
		if err != nil {
			slog.Error("Cron: Failed to list employees", "company_id", companyID, "error", err)
			continue
		}

		finalized := 0
		for _, emp := range employees {
			if _, err := j.attendanceService.FinalizeDay(ctx, emp.ID, dateKey); err != nil {
				// Still-open days can happen with windows spanning midnight
				// boundaries; skip them until the next sweep.
				if errors.Is(err, attendance.ErrDayNotClosed) {
					continue
				}
				slog.Error("Cron: Failed to finalize day",
					"employee_id", emp.ID,
					"date", dateKey,
					"error", err)
				continue
			}
			finalized++
		}

		slog.Info("Cron: Finalization sweep complete",
			"company_id", companyID,
			"date", dateKey,
			"finalized", finalized,
			"employees", len(employees))
	}
	return nil
}
