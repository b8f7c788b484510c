package attendance

import (
	"time"

	"github.com/attendly-app/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type RecordCheckRequest struct {
	EmployeeID string   `json:"employee_id"`
	CompanyID  string   `json:"-"`
	Timestamp  string   `json:"timestamp"` // RFC3339; empty means "now"
	SlotHint   *string  `json:"slot,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

func (r *RecordCheckRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Timestamp != "" {
		if _, valid := validator.IsValidDateTime(r.Timestamp); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be an ISO8601 datetime",
			})
		}
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EventTime returns the UTC instant of the check, defaulting to now.
func (r *RecordCheckRequest) EventTime(now time.Time) time.Time {
	if r.Timestamp == "" {
		return now.UTC()
	}
	t, _ := validator.IsValidDateTime(r.Timestamp)
	return t.UTC()
}

type CheckResponse struct {
	EmployeeID string       `json:"employee_id"`
	DateKey    string       `json:"date"`
	Slot       string       `json:"slot"`
	SlotLabel  string       `json:"slot_label"`
	LocalTime  string       `json:"local_time"`
	Outcome    CheckOutcome `json:"outcome"`
	DayStatus  DayStatus    `json:"day_status"`
}

type DayResponse struct {
	EmployeeID string                `json:"employee_id"`
	DateKey    string                `json:"date"`
	Status     DayStatus             `json:"status"`
	Finalized  bool                  `json:"finalized"`
	Checks     []CheckClassification `json:"checks"`
	Overridden bool                  `json:"overridden"`
}

// OverrideDayRequest lets managers fix a finalized day (wrong status,
// forgotten check, etc). Overrides never re-emit violations.
type OverrideDayRequest struct {
	EmployeeID   string `json:"-"`
	DateKey      string `json:"-"`
	Status       string `json:"status"`
	OverriddenBy string `json:"-"`
}

func (r *OverrideDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidDate(r.DateKey); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if _, ok := NormalizeDayStatus(r.Status); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent, half_day, late, early_leave, on_leave, weekend",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MonthlySummaryResponse aggregates one employee-month for the dashboard.
type MonthlySummaryResponse struct {
	EmployeeID string            `json:"employee_id"`
	MonthKey   string            `json:"month"`
	Totals     map[DayStatus]int `json:"totals"`
	DaysClosed int               `json:"days_closed"`
}
