package postgresql

import (
	"context"
	"errors"

	"github.com/attendly-app/attendance-backend-go/internal/domain/violation"
	"github.com/attendly-app/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type penaltyRepositoryImpl struct {
	db *database.DB
}

func NewPenaltyRepository(db *database.DB) violation.PenaltyRepository {
	return &penaltyRepositoryImpl{db: db}
}

// CreateIfAbsent implements violation.PenaltyRepository. The unique index on
// (employee_id, violation_type, month_key, trigger_count) gives
// first-crossing semantics: re-running accrual never duplicates a penalty.
func (p *penaltyRepositoryImpl) CreateIfAbsent(ctx context.Context, rec violation.PenaltyRecord) (bool, error) {
	q := GetQuerier(ctx, p.db)
	query := `
		INSERT INTO penalty_records (
			id, employee_id, company_id, violation_type, month_key,
			trigger_count, amount, status, date_incurred
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (employee_id, violation_type, month_key, trigger_count) DO NOTHING
	`
	tag, err := q.Exec(ctx, query,
		rec.ID, rec.EmployeeID, rec.CompanyID, string(rec.Type), rec.MonthKey,
		rec.TriggerCount, rec.Amount.String(), string(rec.Status), rec.DateIncurred,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

const penaltyColumns = `
	id, employee_id, company_id, violation_type, month_key,
	trigger_count, amount::text, status, date_incurred
`

func scanPenalty(row pgx.Row) (violation.PenaltyRecord, error) {
	var rec violation.PenaltyRecord
	var violationType, amount, status string

	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &violationType, &rec.MonthKey,
		&rec.TriggerCount, &amount, &status, &rec.DateIncurred,
	)
	if err != nil {
		return violation.PenaltyRecord{}, err
	}

	if t, ok := violation.ParseType(violationType); ok {
		rec.Type = t
	} else {
		return violation.PenaltyRecord{}, violation.ErrUnknownViolationType
	}
	rec.Status = violation.PenaltyStatus(status)
	if rec.Amount, err = decimal.NewFromString(amount); err != nil {
		return violation.PenaltyRecord{}, err
	}
	return rec, nil
}

// GetByID implements violation.PenaltyRepository.
func (p *penaltyRepositoryImpl) GetByID(ctx context.Context, id string) (violation.PenaltyRecord, error) {
	q := GetQuerier(ctx, p.db)
	query := `SELECT ` + penaltyColumns + ` FROM penalty_records WHERE id = $1`

	rec, err := scanPenalty(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return violation.PenaltyRecord{}, violation.ErrPenaltyNotFound
		}
		return violation.PenaltyRecord{}, err
	}
	return rec, nil
}

// ListByEmployee implements violation.PenaltyRepository.
func (p *penaltyRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]violation.PenaltyRecord, error) {
	q := GetQuerier(ctx, p.db)
	query := `
		SELECT ` + penaltyColumns + `
		FROM penalty_records
		WHERE employee_id = $1
		ORDER BY date_incurred DESC
	`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []violation.PenaltyRecord
	for rows.Next() {
		rec, err := scanPenalty(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// UpdateStatus implements violation.PenaltyRepository. Compare-and-set so a
// penalty is settled exactly once.
func (p *penaltyRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to violation.PenaltyStatus) error {
	q := GetQuerier(ctx, p.db)
	query := `
		UPDATE penalty_records
		SET status = $3
		WHERE id = $1 AND status = $2
	`
	tag, err := q.Exec(ctx, query, id, string(from), string(to))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return violation.ErrPenaltyAlreadyDecided
	}
	return nil
}
