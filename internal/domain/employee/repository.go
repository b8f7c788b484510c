package employee

import "context"

// EmployeeRepository - interface for the employee directory.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	Upsert(ctx context.Context, e Employee) error
}
