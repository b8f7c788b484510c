package postgresql

import (
	"context"
	"errors"

	"github.com/attendly-app/attendance-backend-go/internal/domain/employee"
	"github.com/attendly-app/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)
	query := `
		SELECT id, company_id, full_name, active, created_at, updated_at
		FROM employees
		WHERE id = $1
	`
	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.CompanyID, &emp.FullName, &emp.Active, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

// ListActiveByCompanyID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)
	query := `
		SELECT id, company_id, full_name, active, created_at, updated_at
		FROM employees
		WHERE company_id = $1 AND active
		ORDER BY full_name
	`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(&emp.ID, &emp.CompanyID, &emp.FullName, &emp.Active, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// Upsert implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Upsert(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, e.db)
	query := `
		INSERT INTO employees (id, company_id, full_name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			company_id = EXCLUDED.company_id,
			full_name = EXCLUDED.full_name,
			active = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at
	`
	_, err := q.Exec(ctx, query,
		emp.ID, emp.CompanyID, emp.FullName, emp.Active, emp.CreatedAt, emp.UpdatedAt,
	)
	return err
}
