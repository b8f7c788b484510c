package attendance

import (
	"time"

	"github.com/attendly-app/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-app/attendance-backend-go/internal/domain/settings"
)

// ClassifyEvent evaluates a recorded check against its window. Pure function
// of the window and the event's local time-of-day, so outcomes can always be
// recomputed from configuration.
//
// Opening windows: within [start, start+grace] is on_time, anything later is
// late. Closing windows: leaving before end-grace is early_leave, except
// that [start, start+grace] still counts as on_time; at or after end-grace
// is on_time. An event before the window start (only reachable via a slot
// hint) is an early arrival for an opening window and an early departure for
// a closing one.
func ClassifyEvent(w settings.TimeWindow, utc time.Time, loc *time.Location) attendance.CheckOutcome {
	minutes := minutesOfDay(utc, loc)
	start, err := w.StartMinutes()
	if err != nil {
		return attendance.OutcomePending
	}
	end, err := w.EndMinutes()
	if err != nil {
		return attendance.OutcomePending
	}

	if w.Kind == settings.WindowKindClosing {
		if minutes < start {
			return attendance.OutcomeEarlyLeave
		}
		if minutes <= start+w.GraceMinutes {
			return attendance.OutcomeOnTime
		}
		if minutes < end-w.GraceMinutes {
			return attendance.OutcomeEarlyLeave
		}
		return attendance.OutcomeOnTime
	}

	if minutes <= start+w.GraceMinutes {
		return attendance.OutcomeOnTime
	}
	return attendance.OutcomeLate
}

// ClassifyAbsence evaluates a window with no recorded event: missed once the
// window's end has passed on that local date, pending until then.
func ClassifyAbsence(w settings.TimeWindow, dateKey string, now time.Time, loc *time.Location) attendance.CheckOutcome {
	if windowClosed(w, dateKey, now, loc) {
		return attendance.OutcomeMissed
	}
	return attendance.OutcomePending
}

// windowClosed reports whether the window's end time has passed on the given
// local date.
func windowClosed(w settings.TimeWindow, dateKey string, now time.Time, loc *time.Location) bool {
	localNow := now.In(loc)
	today := localNow.Format("2006-01-02")
	if dateKey < today {
		return true
	}
	if dateKey > today {
		return false
	}
	end, err := w.EndMinutes()
	if err != nil {
		return false
	}
	return localNow.Hour()*60+localNow.Minute() > end
}
