package violation

import (
	"strings"

	"github.com/attendly-app/attendance-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// VIOLATION DTOs
// ========================================

type MonthlySummaryResponse struct {
	EmployeeID string       `json:"employee_id"`
	MonthKey   string       `json:"month"`
	Counts     map[Type]int `json:"counts"`
}

type PenaltyResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	Type         Type            `json:"violation_type"`
	MonthKey     string          `json:"month"`
	Amount       decimal.Decimal `json:"amount"`
	Status       PenaltyStatus   `json:"status"`
	DateIncurred string          `json:"date_incurred"`
}

// DecidePenaltyRequest settles an active penalty as waived or paid.
type DecidePenaltyRequest struct {
	PenaltyID string `json:"-"`
	Status    string `json:"status"` // waived | paid
}

func (r *DecidePenaltyRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(strings.ToLower(r.Status), []string{string(PenaltyStatusWaived), string(PenaltyStatusPaid)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: waived, paid",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
