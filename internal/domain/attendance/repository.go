package attendance

import "context"

// AttendanceDayRepository - one document per (employee_id, date_key).
type AttendanceDayRepository interface {
	Get(ctx context.Context, employeeID, dateKey string) (AttendanceDay, error)
	Upsert(ctx context.Context, day AttendanceDay) error
	ListByEmployeeMonth(ctx context.Context, employeeID, monthKey string) ([]AttendanceDay, error)
}
