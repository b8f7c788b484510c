package postgresql

import (
	"context"
	"errors"

	"github.com/attendly-app/attendance-backend-go/internal/domain/leave"
	"github.com/attendly-app/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// Get implements leave.BalanceRepository.
func (l *leaveBalanceRepositoryImpl) Get(ctx context.Context, employeeID string, t leave.Type) (leave.Balance, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		SELECT employee_id, company_id, leave_type, remaining_days::text, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type = $2
	`

	var b leave.Balance
	var leaveType, remaining string

	err := q.QueryRow(ctx, query, employeeID, string(t)).Scan(
		&b.EmployeeID, &b.CompanyID, &leaveType, &remaining, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, err
	}

	b.Type = leave.Type(leaveType)
	b.RemainingDays, err = decimal.NewFromString(remaining)
	if err != nil {
		return leave.Balance{}, err
	}
	return b, nil
}

// Put implements leave.BalanceRepository.
func (l *leaveBalanceRepositoryImpl) Put(ctx context.Context, b leave.Balance) error {
	q := GetQuerier(ctx, l.db)
	query := `
		INSERT INTO leave_balances (employee_id, company_id, leave_type, remaining_days, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, leave_type) DO UPDATE SET
			remaining_days = EXCLUDED.remaining_days,
			updated_at = EXCLUDED.updated_at
	`
	_, err := q.Exec(ctx, query,
		b.EmployeeID, b.CompanyID, string(b.Type), b.RemainingDays.String(), b.UpdatedAt,
	)
	return err
}

// ListByEmployee implements leave.BalanceRepository.
func (l *leaveBalanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Balance, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		SELECT employee_id, company_id, leave_type, remaining_days::text, updated_at
		FROM leave_balances
		WHERE employee_id = $1
		ORDER BY leave_type
	`
	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		var b leave.Balance
		var leaveType, remaining string

		if err := rows.Scan(&b.EmployeeID, &b.CompanyID, &leaveType, &remaining, &b.UpdatedAt); err != nil {
			return nil, err
		}
		b.Type = leave.Type(leaveType)
		if b.RemainingDays, err = decimal.NewFromString(remaining); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}
