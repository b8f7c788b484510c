package attendance

import (
	"strings"
	"time"
)

// CheckOutcome classifies one check event against its configured window.
type CheckOutcome string

const (
	OutcomeOnTime     CheckOutcome = "on_time"
	OutcomeLate       CheckOutcome = "late"
	OutcomeEarlyLeave CheckOutcome = "early_leave"
	OutcomeMissed     CheckOutcome = "missed"
	OutcomePending    CheckOutcome = "pending"
)

// DayStatus is the resolved status of one employee-day.
type DayStatus string

const (
	DayStatusPresent    DayStatus = "present"
	DayStatusAbsent     DayStatus = "absent"
	DayStatusHalfDay    DayStatus = "half_day"
	DayStatusLate       DayStatus = "late"
	DayStatusEarlyLeave DayStatus = "early_leave"
	DayStatusOnLeave    DayStatus = "on_leave"
	DayStatusWeekend    DayStatus = "weekend"
	DayStatusPending    DayStatus = "pending"
)

// NormalizeDayStatus folds the loosely-typed status strings that appear at
// the storage boundary ("half-absent", "halfAbsent", "holiday", ...) into
// the canonical enum. Core logic only ever sees the canonical values.
func NormalizeDayStatus(raw string) (DayStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "present":
		return DayStatusPresent, true
	case "absent", "absence":
		return DayStatusAbsent, true
	case "half_day", "half-day", "halfday", "half-absent", "half_absent", "halfabsent":
		return DayStatusHalfDay, true
	case "late":
		return DayStatusLate, true
	case "early_leave", "early-leave", "earlyleave":
		return DayStatusEarlyLeave, true
	case "on_leave", "on-leave", "onleave", "leave":
		return DayStatusOnLeave, true
	case "weekend", "holiday", "non_working", "non-working":
		return DayStatusWeekend, true
	case "pending", "provisional":
		return DayStatusPending, true
	}
	return "", false
}

// CheckEvent is a raw check-in/out as received from the collector.
// Immutable once recorded; timestamps are always UTC.
type CheckEvent struct {
	Slot      string
	Timestamp time.Time
	Latitude  *float64
	Longitude *float64
}

// CheckClassification is the evaluated view of a check. It keeps the raw
// UTC timestamp so the outcome can be recomputed from configuration.
type CheckClassification struct {
	Slot      string       `json:"slot"`
	Timestamp time.Time    `json:"timestamp"` // UTC
	LocalTime string       `json:"local_time"`
	Outcome   CheckOutcome `json:"outcome"`
	Latitude  *float64     `json:"latitude,omitempty"`
	Longitude *float64     `json:"longitude,omitempty"`
}

// AttendanceDay is one record per employee per local calendar day. Created
// lazily on the first check or leave application for that day; immutable
// once finalized, except through an explicit admin override.
type AttendanceDay struct {
	EmployeeID       string
	CompanyID        string
	DateKey          string // local calendar date, YYYY-MM-DD
	Checks           []CheckClassification
	Status           DayStatus
	Finalized        bool
	ViolationEmitted bool
	OverriddenBy     *string
	OverriddenAt     *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CheckForSlot returns the recorded classification for a slot, if any.
func (d AttendanceDay) CheckForSlot(slot string) (CheckClassification, bool) {
	for _, c := range d.Checks {
		if c.Slot == slot {
			return c, true
		}
	}
	return CheckClassification{}, false
}

// MonthKeyOf derives the YYYY-MM month key from a YYYY-MM-DD date key.
func MonthKeyOf(dateKey string) string {
	if len(dateKey) < 7 {
		return dateKey
	}
	return dateKey[:7]
}
