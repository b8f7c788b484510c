package violation

import "errors"

var (
	ErrPenaltyNotFound        = errors.New("Penalty record not found")
	ErrPenaltyAlreadyDecided  = errors.New("Penalty record already waived or paid")
	ErrUnknownViolationType   = errors.New("Unknown violation type")
	ErrInvalidMonthKey        = errors.New("Month must be in YYYY-MM format")
	ErrViolationAlreadyExists = errors.New("Violation already recorded for this day")
)
