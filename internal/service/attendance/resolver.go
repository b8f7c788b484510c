package attendance

import (
	"time"

	"github.com/attendly-app/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-app/attendance-backend-go/internal/domain/settings"
	"github.com/attendly-app/attendance-backend-go/internal/domain/violation"
)

// Resolution is the resolver's verdict on one employee-day.
type Resolution struct {
	Status attendance.DayStatus
	// Closed is true once the last configured window's end has passed in
	// local time. Only closed days may be finalized and accrue violations.
	Closed bool
}

// ResolveDay combines a day's classified checks into an overall status.
//
// Non-working days resolve to weekend and approved leave to on_leave, both
// terminal regardless of any check data. Otherwise each configured window
// contributes one outcome (the recorded check's, or missed/pending when none
// was recorded) and the aggregate follows worse-outcome-wins precedence:
// missed > early_leave > late.
func ResolveDay(s settings.CompanySettings, day attendance.AttendanceDay, dateKey string, onLeave bool, now time.Time, loc *time.Location) Resolution {
	date, err := time.ParseInLocation("2006-01-02", dateKey, loc)
	if err != nil {
		return Resolution{Status: attendance.DayStatusPending}
	}

	if !s.IsWorkingDay(date) {
		return Resolution{Status: attendance.DayStatusWeekend, Closed: true}
	}
	if onLeave {
		return Resolution{Status: attendance.DayStatusOnLeave, Closed: true}
	}

	closed := dayClosed(s, dateKey, now, loc)

	var missed, late, earlyLeave, pending int
	for _, w := range s.TimeWindows {
		outcome := attendance.OutcomePending
		if c, ok := day.CheckForSlot(w.Key); ok {
			outcome = c.Outcome
		} else {
			outcome = ClassifyAbsence(w, dateKey, now, loc)
		}

		switch outcome {
		case attendance.OutcomeMissed:
			missed++
		case attendance.OutcomeLate:
			late++
		case attendance.OutcomeEarlyLeave:
			earlyLeave++
		case attendance.OutcomePending:
			pending++
		}
	}

	if !closed || pending > 0 {
		return Resolution{Status: attendance.DayStatusPending}
	}

	switch {
	case missed == len(s.TimeWindows):
		return Resolution{Status: attendance.DayStatusAbsent, Closed: true}
	case missed > 0:
		return Resolution{Status: attendance.DayStatusHalfDay, Closed: true}
	case earlyLeave > 0:
		return Resolution{Status: attendance.DayStatusEarlyLeave, Closed: true}
	case late > 0:
		return Resolution{Status: attendance.DayStatusLate, Closed: true}
	}
	return Resolution{Status: attendance.DayStatusPresent, Closed: true}
}

// dayClosed reports whether every configured window has ended on the given
// local date.
func dayClosed(s settings.CompanySettings, dateKey string, now time.Time, loc *time.Location) bool {
	for _, w := range s.TimeWindows {
		if !windowClosed(w, dateKey, now, loc) {
			return false
		}
	}
	return len(s.TimeWindows) > 0
}

// ViolationTypeFor maps a finalized day status to the violation it accrues,
// if any.
func ViolationTypeFor(status attendance.DayStatus) (violation.Type, bool) {
	switch status {
	case attendance.DayStatusAbsent:
		return violation.TypeAbsent, true
	case attendance.DayStatusHalfDay:
		return violation.TypeHalfDay, true
	case attendance.DayStatusLate:
		return violation.TypeLate, true
	case attendance.DayStatusEarlyLeave:
		return violation.TypeEarlyLeave, true
	}
	return "", false
}
