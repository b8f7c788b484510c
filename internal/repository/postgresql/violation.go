package postgresql

import (
	"context"

	"github.com/attendly-app/attendance-backend-go/internal/domain/violation"
	"github.com/attendly-app/attendance-backend-go/internal/pkg/database"
)

type violationRecordRepositoryImpl struct {
	db *database.DB
}

func NewViolationRecordRepository(db *database.DB) violation.RecordRepository {
	return &violationRecordRepositoryImpl{db: db}
}

// Append implements violation.RecordRepository. The unique index on
// (employee_id, date_key, violation_type) makes the append idempotent.
func (v *violationRecordRepositoryImpl) Append(ctx context.Context, rec violation.Record) (bool, error) {
	q := GetQuerier(ctx, v.db)
	query := `
		INSERT INTO violation_records (id, employee_id, company_id, violation_type, date_key, month_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, date_key, violation_type) DO NOTHING
	`
	tag, err := q.Exec(ctx, query,
		rec.ID, rec.EmployeeID, rec.CompanyID, string(rec.Type), rec.DateKey, rec.MonthKey, rec.CreatedAt,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ListByEmployeeMonth implements violation.RecordRepository.
func (v *violationRecordRepositoryImpl) ListByEmployeeMonth(ctx context.Context, employeeID, monthKey string) ([]violation.Record, error) {
	q := GetQuerier(ctx, v.db)
	query := `
		SELECT id, employee_id, company_id, violation_type, date_key, month_key, created_at
		FROM violation_records
		WHERE employee_id = $1 AND month_key = $2
		ORDER BY date_key
	`
	rows, err := q.Query(ctx, query, employeeID, monthKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []violation.Record
	for rows.Next() {
		var rec violation.Record
		var violationType string

		err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.CompanyID, &violationType, &rec.DateKey, &rec.MonthKey, &rec.CreatedAt)
		if err != nil {
			return nil, err
		}
		if t, ok := violation.ParseType(violationType); ok {
			rec.Type = t
		} else {
			return nil, violation.ErrUnknownViolationType
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type violationCountRepositoryImpl struct {
	db *database.DB
}

func NewViolationCountRepository(db *database.DB) violation.CountRepository {
	return &violationCountRepositoryImpl{db: db}
}

// Increment implements violation.CountRepository. Incremental counter only;
// history is never rescanned.
func (v *violationCountRepositoryImpl) Increment(ctx context.Context, employeeID, companyID string, t violation.Type, monthKey string) (int, error) {
	q := GetQuerier(ctx, v.db)
	query := `
		INSERT INTO monthly_violation_counts (employee_id, company_id, violation_type, month_key, count)
		VALUES ($1, $2, $3, $4, 1)
		ON CONFLICT (employee_id, violation_type, month_key) DO UPDATE SET
			count = monthly_violation_counts.count + 1
		RETURNING count
	`
	var count int
	err := q.QueryRow(ctx, query, employeeID, companyID, string(t), monthKey).Scan(&count)
	return count, err
}

// Get implements violation.CountRepository. Missing counters read as zero.
func (v *violationCountRepositoryImpl) Get(ctx context.Context, employeeID string, t violation.Type, monthKey string) (int, error) {
	q := GetQuerier(ctx, v.db)
	query := `
		SELECT COALESCE(
			(SELECT count FROM monthly_violation_counts
			 WHERE employee_id = $1 AND violation_type = $2 AND month_key = $3),
			0
		)
	`
	var count int
	err := q.QueryRow(ctx, query, employeeID, string(t), monthKey).Scan(&count)
	return count, err
}

// ListByEmployeeMonth implements violation.CountRepository.
func (v *violationCountRepositoryImpl) ListByEmployeeMonth(ctx context.Context, employeeID, monthKey string) ([]violation.MonthlyCount, error) {
	q := GetQuerier(ctx, v.db)
	query := `
		SELECT employee_id, company_id, violation_type, month_key, count
		FROM monthly_violation_counts
		WHERE employee_id = $1 AND month_key = $2
	`
	rows, err := q.Query(ctx, query, employeeID, monthKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []violation.MonthlyCount
	for rows.Next() {
		var c violation.MonthlyCount
		var violationType string

		if err := rows.Scan(&c.EmployeeID, &c.CompanyID, &violationType, &c.MonthKey, &c.Count); err != nil {
			return nil, err
		}
		if t, ok := violation.ParseType(violationType); ok {
			c.Type = t
		} else {
			return nil, violation.ErrUnknownViolationType
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
