package employee

import "time"

// Employee is the minimal directory record the engine needs: who exists,
// which company they belong to, and whether they are still active.
type Employee struct {
	ID        string
	CompanyID string
	FullName  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
