package memory

import (
	"context"
	"sort"

	"github.com/attendly-app/attendance-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepository{store: store}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	emp, ok := r.store.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *employeeRepository) ListActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var employees []employee.Employee
	for _, emp := range r.store.employees {
		if emp.CompanyID == companyID && emp.Active {
			employees = append(employees, emp)
		}
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].FullName < employees[j].FullName })
	return employees, nil
}

func (r *employeeRepository) Upsert(ctx context.Context, emp employee.Employee) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.employees[emp.ID] = emp
	return nil
}
