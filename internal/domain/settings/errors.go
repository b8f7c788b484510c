package settings

import "errors"

var (
	ErrSettingsNotFound    = errors.New("Company settings not found")
	ErrWindowKeyRequired   = errors.New("Time window key is required")
	ErrDuplicateWindowKey  = errors.New("Duplicate time window key")
	ErrInvalidWindowKind   = errors.New("Time window kind must be opening or closing")
	ErrWindowStartAfterEnd = errors.New("Time window start must be before its end")
	ErrInvalidGracePeriod  = errors.New("Grace period must fit inside the window")
	ErrOverlappingWindows  = errors.New("Time windows must not overlap")
)
