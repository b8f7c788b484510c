package postgresql

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/attendly-app/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-app/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceDayRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceDayRepository(db *database.DB) attendance.AttendanceDayRepository {
	return &attendanceDayRepositoryImpl{db: db}
}

// Get implements attendance.AttendanceDayRepository.
func (a *attendanceDayRepositoryImpl) Get(ctx context.Context, employeeID, dateKey string) (attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)
	query := `
		SELECT employee_id, company_id, date_key, checks, status,
			   finalized, violation_emitted, overridden_by, overridden_at,
			   created_at, updated_at
		FROM attendance_days
		WHERE employee_id = $1 AND date_key = $2
	`

	var day attendance.AttendanceDay
	var checksJSON []byte
	var status string

	err := q.QueryRow(ctx, query, employeeID, dateKey).Scan(
		&day.EmployeeID, &day.CompanyID, &day.DateKey, &checksJSON, &status,
		&day.Finalized, &day.ViolationEmitted, &day.OverriddenBy, &day.OverriddenAt,
		&day.CreatedAt, &day.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceDay{}, attendance.ErrDayNotFound
		}
		return attendance.AttendanceDay{}, err
	}

	if checksJSON != nil {
		if err := json.Unmarshal(checksJSON, &day.Checks); err != nil {
			return attendance.AttendanceDay{}, err
		}
	}

	// Status strings in storage may predate the canonical enum.
	if normalized, ok := attendance.NormalizeDayStatus(status); ok {
		day.Status = normalized
	} else {
		return attendance.AttendanceDay{}, attendance.ErrInvalidStatus
	}

	return day, nil
}

// Upsert implements attendance.AttendanceDayRepository.
func (a *attendanceDayRepositoryImpl) Upsert(ctx context.Context, day attendance.AttendanceDay) error {
	q := GetQuerier(ctx, a.db)

	checksJSON, err := json.Marshal(day.Checks)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO attendance_days (
			employee_id, company_id, date_key, checks, status,
			finalized, violation_emitted, overridden_by, overridden_at,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (employee_id, date_key) DO UPDATE SET
			checks = EXCLUDED.checks,
			status = EXCLUDED.status,
			finalized = EXCLUDED.finalized,
			violation_emitted = EXCLUDED.violation_emitted,
			overridden_by = EXCLUDED.overridden_by,
			overridden_at = EXCLUDED.overridden_at,
			updated_at = EXCLUDED.updated_at
	`
	_, err = q.Exec(ctx, query,
		day.EmployeeID, day.CompanyID, day.DateKey, checksJSON, string(day.Status),
		day.Finalized, day.ViolationEmitted, day.OverriddenBy, day.OverriddenAt,
		day.CreatedAt, day.UpdatedAt,
	)
	return err
}

// ListByEmployeeMonth implements attendance.AttendanceDayRepository.
func (a *attendanceDayRepositoryImpl) ListByEmployeeMonth(ctx context.Context, employeeID, monthKey string) ([]attendance.AttendanceDay, error) {
	q := GetQuerier(ctx, a.db)
	query := `
		SELECT employee_id, company_id, date_key, checks, status,
			   finalized, violation_emitted, overridden_by, overridden_at,
			   created_at, updated_at
		FROM attendance_days
		WHERE employee_id = $1 AND date_key LIKE $2 || '-%'
		ORDER BY date_key
	`
	rows, err := q.Query(ctx, query, employeeID, monthKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []attendance.AttendanceDay
	for rows.Next() {
		var day attendance.AttendanceDay
		var checksJSON []byte
		var status string

		err := rows.Scan(
			&day.EmployeeID, &day.CompanyID, &day.DateKey, &checksJSON, &status,
			&day.Finalized, &day.ViolationEmitted, &day.OverriddenBy, &day.OverriddenAt,
			&day.CreatedAt, &day.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if checksJSON != nil {
			if err := json.Unmarshal(checksJSON, &day.Checks); err != nil {
				return nil, err
			}
		}
		if normalized, ok := attendance.NormalizeDayStatus(status); ok {
			day.Status = normalized
		} else {
			return nil, attendance.ErrInvalidStatus
		}

		days = append(days, day)
	}
	return days, rows.Err()
}
