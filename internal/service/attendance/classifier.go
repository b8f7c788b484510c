package attendance

import (
	"fmt"
	"time"

	"github.com/attendly-app/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-app/attendance-backend-go/internal/domain/settings"
)

// The classifier maps UTC instants into a company's local calendar. Full
// zoned-time conversion is used throughout so window boundaries stay correct
// across daylight-saving transitions.

// LocalDateKey returns the local calendar date of a UTC instant.
func LocalDateKey(utc time.Time, loc *time.Location) string {
	return utc.In(loc).Format("2006-01-02")
}

// minutesOfDay returns the local time-of-day of a UTC instant as minutes
// after midnight.
func minutesOfDay(utc time.Time, loc *time.Location) int {
	local := utc.In(loc)
	return local.Hour()*60 + local.Minute()
}

// SlotForInstant finds the configured window whose local-time span contains
// the instant's time-of-day. Only the time-of-day portion matters; the date
// is irrelevant. A slot hint bypasses containment so a client can attach an
// out-of-window event (an early departure, say) to a specific window.
func SlotForInstant(s settings.CompanySettings, utc time.Time, loc *time.Location, slotHint *string) (settings.TimeWindow, error) {
	if slotHint != nil && *slotHint != "" {
		w, ok := s.Window(*slotHint)
		if !ok {
			return settings.TimeWindow{}, fmt.Errorf("%w: %s", attendance.ErrUnknownSlot, *slotHint)
		}
		return w, nil
	}

	minutes := minutesOfDay(utc, loc)
	for _, w := range s.TimeWindows {
		start, err := w.StartMinutes()
		if err != nil {
			return settings.TimeWindow{}, err
		}
		end, err := w.EndMinutes()
		if err != nil {
			return settings.TimeWindow{}, err
		}
		if minutes >= start && minutes <= end {
			return w, nil
		}
	}
	return settings.TimeWindow{}, attendance.ErrNoActiveWindow
}
