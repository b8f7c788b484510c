package leave

import "errors"

var (
	ErrRequestNotFound     = errors.New("Leave request not found")
	ErrBalanceNotFound     = errors.New("Leave balance not found")
	ErrUnknownLeaveType    = errors.New("Unknown leave type")
	ErrStartInPast         = errors.New("Leave cannot start before today")
	ErrStartAfterEnd       = errors.New("Leave start date must not be after its end date")
	ErrReasonLength        = errors.New("Reason must be between 5 and 500 characters")
	ErrInsufficientBalance = errors.New("Insufficient leave balance")
	ErrOverlappingLeave    = errors.New("Leave dates overlap an existing request")
	ErrAlreadyProcessed    = errors.New("Leave request already processed")
	ErrNotApproved         = errors.New("Only approved leave requests can be cancelled")
	ErrHalfDayRange        = errors.New("Half-day leave must cover a single day")
)
