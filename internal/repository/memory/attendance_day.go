package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/attendly-app/attendance-backend-go/internal/domain/attendance"
)

type attendanceDayRepository struct {
	store *Store
}

func NewAttendanceDayRepository(store *Store) attendance.AttendanceDayRepository {
	return &attendanceDayRepository{store: store}
}

func (r *attendanceDayRepository) Get(ctx context.Context, employeeID, dateKey string) (attendance.AttendanceDay, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	day, ok := r.store.days[key2(employeeID, dateKey)]
	if !ok {
		return attendance.AttendanceDay{}, attendance.ErrDayNotFound
	}
	return day, nil
}

func (r *attendanceDayRepository) Upsert(ctx context.Context, day attendance.AttendanceDay) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.days[key2(day.EmployeeID, day.DateKey)] = day
	return nil
}

func (r *attendanceDayRepository) ListByEmployeeMonth(ctx context.Context, employeeID, monthKey string) ([]attendance.AttendanceDay, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var days []attendance.AttendanceDay
	for _, day := range r.store.days {
		if day.EmployeeID == employeeID && strings.HasPrefix(day.DateKey, monthKey+"-") {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].DateKey < days[j].DateKey })
	return days, nil
}
