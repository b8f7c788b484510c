package attendance

import "errors"

var (
	ErrDayNotFound    = errors.New("Attendance day not found")
	ErrDuplicateCheck = errors.New("A check was already recorded for this window today")
	ErrNoActiveWindow = errors.New("No check window is configured for this time")
	ErrUnknownSlot    = errors.New("Unknown check window")
	ErrDayNotClosed   = errors.New("Attendance day is still open")
	ErrDayFinalized   = errors.New("Attendance day is already finalized")
	ErrInvalidDateKey = errors.New("Date must be in YYYY-MM-DD format")
	ErrInvalidStatus  = errors.New("Unknown attendance status")
)
