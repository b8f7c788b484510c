package response

import (
	"errors"
	"net/http"

	"github.com/attendly-app/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-app/attendance-backend-go/internal/domain/employee"
	"github.com/attendly-app/attendance-backend-go/internal/domain/leave"
	"github.com/attendly-app/attendance-backend-go/internal/domain/settings"
	"github.com/attendly-app/attendance-backend-go/internal/domain/violation"
	"github.com/attendly-app/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrDayNotFound):
		NotFound(w, "Attendance day not found")
	case errors.Is(err, attendance.ErrDuplicateCheck):
		Conflict(w, "A check was already recorded for this window today")
	case errors.Is(err, attendance.ErrNoActiveWindow):
		BadRequest(w, "No check window is configured for this time", nil)
	case errors.Is(err, attendance.ErrUnknownSlot):
		BadRequest(w, "Unknown check window", nil)
	case errors.Is(err, attendance.ErrDayNotClosed):
		Conflict(w, "Attendance day is still open")
	case errors.Is(err, attendance.ErrDayFinalized):
		Conflict(w, "Attendance day is already finalized")
	case errors.Is(err, attendance.ErrInvalidDateKey):
		BadRequest(w, "Date must be in YYYY-MM-DD format", nil)
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, "Unknown attendance status", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrStartInPast):
		BadRequest(w, "Leave cannot start in the past", nil)
	case errors.Is(err, leave.ErrStartAfterEnd):
		BadRequest(w, "Start date must not be after end date", nil)
	case errors.Is(err, leave.ErrHalfDayRange):
		BadRequest(w, "Half-day leave must cover exactly one day", nil)
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Leave request overlaps an existing request")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNotApproved):
		Conflict(w, "Only approved leave requests can be cancelled")

	// Violation domain errors
	case errors.Is(err, violation.ErrPenaltyNotFound):
		NotFound(w, "Penalty not found")
	case errors.Is(err, violation.ErrPenaltyAlreadyDecided):
		Conflict(w, "Penalty already decided")
	case errors.Is(err, violation.ErrInvalidMonthKey):
		BadRequest(w, "Month must be in YYYY-MM format", nil)

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Company settings not found")
	case errors.Is(err, settings.ErrWindowKeyRequired),
		errors.Is(err, settings.ErrDuplicateWindowKey),
		errors.Is(err, settings.ErrInvalidWindowKind),
		errors.Is(err, settings.ErrWindowStartAfterEnd),
		errors.Is(err, settings.ErrInvalidGracePeriod),
		errors.Is(err, settings.ErrOverlappingWindows):
		BadRequest(w, err.Error(), nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
