package leave

import (
	"strings"

	"github.com/attendly-app/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// LEAVE DTOs
// ========================================

const (
	minReasonLength = 5
	maxReasonLength = 500
)

type SubmitRequest struct {
	EmployeeID string `json:"-"`
	CompanyID  string `json:"-"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // YYYY-MM-DD
	Duration   string `json:"duration,omitempty"`
	Reason     string `json:"reason"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := ParseType(r.LeaveType); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: full, medical, maternity",
		})
	}

	if _, valid := validator.IsValidDate(r.StartDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if _, valid := validator.IsValidDate(r.EndDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if r.Duration != "" {
		valid := []string{string(DurationFullDay), string(DurationHalfDayMorning), string(DurationHalfDayAfternoon)}
		if !validator.IsInSlice(r.Duration, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "duration",
				Message: "duration must be one of: full_day, half_day_morning, half_day_afternoon",
			})
		}
	}

	reason := strings.TrimSpace(r.Reason)
	if len(reason) < minReasonLength || len(reason) > maxReasonLength {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must be between 5 and 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DurationType returns the canonical duration, defaulting to full_day.
func (r *SubmitRequest) DurationType() DurationType {
	if r.Duration == "" {
		return DurationFullDay
	}
	return DurationType(r.Duration)
}

type DecideRequest struct {
	RequestID string  `json:"-"`
	Action    string  `json:"action"` // approve | reject
	Notes     *string `json:"notes,omitempty"`
	DecidedBy string  `json:"-"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(strings.ToLower(r.Action), []string{"approve", "reject"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be one of: approve, reject",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RequestResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	LeaveType     Type            `json:"leave_type"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	Duration      DurationType    `json:"duration"`
	TotalDays     decimal.Decimal `json:"total_days"`
	Reason        string          `json:"reason"`
	Status        RequestStatus   `json:"status"`
	ReviewerNotes *string         `json:"reviewer_notes,omitempty"`
	SubmittedAt   string          `json:"submitted_at"`
}

type BalanceResponse struct {
	EmployeeID    string          `json:"employee_id"`
	LeaveType     Type            `json:"leave_type"`
	RemainingDays decimal.Decimal `json:"remaining_days"`
}

// SetBalanceRequest is the admin operation that seeds or corrects a balance.
type SetBalanceRequest struct {
	EmployeeID string `json:"employee_id"`
	CompanyID  string `json:"-"`
	LeaveType  string `json:"leave_type"`
	Days       string `json:"days"` // decimal string, e.g. "12" or "11.5"
}

func (r *SetBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := ParseType(r.LeaveType); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: full, medical, maternity",
		})
	}

	if d, err := decimal.NewFromString(r.Days); err != nil || d.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "days must be a non-negative number",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
