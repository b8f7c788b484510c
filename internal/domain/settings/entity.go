package settings

import (
	"fmt"
	"sort"
	"time"

	"github.com/attendly-app/attendance-backend-go/internal/domain/violation"
)

// DefaultTimezone is used whenever a company's configured timezone is
// missing, blank, or unloadable. Classification must never fail because of
// bad configuration.
const DefaultTimezone = "Asia/Kolkata"

// WindowKind tells the evaluator which non-on-time outcome a window can
// produce: opening windows yield "late", closing windows yield "early_leave".
type WindowKind string

const (
	WindowKindOpening WindowKind = "opening"
	WindowKindClosing WindowKind = "closing"
)

// TimeWindow is one named check slot (e.g. the morning check-in).
// StartLocal/EndLocal are local times of day in "15:04" form; only the
// time-of-day portion of an instant is matched against them.
type TimeWindow struct {
	Key          string     `json:"key"`
	Label        string     `json:"label"`
	Kind         WindowKind `json:"kind"`
	StartLocal   string     `json:"start_local"` // HH:MM
	EndLocal     string     `json:"end_local"`   // HH:MM
	GraceMinutes int        `json:"grace_minutes"`
}

// StartMinutes returns the window start as minutes after local midnight.
func (w TimeWindow) StartMinutes() (int, error) {
	return parseMinutes(w.StartLocal)
}

// EndMinutes returns the window end as minutes after local midnight.
func (w TimeWindow) EndMinutes() (int, error) {
	return parseMinutes(w.EndLocal)
}

func parseMinutes(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid local time %q: %w", hhmm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// CompanySettings is the per-company configuration read on every
// classification. Created once, mutated by admin action.
type CompanySettings struct {
	CompanyID   string                `json:"company_id"`
	Timezone    string                `json:"timezone"`
	TimeWindows []TimeWindow          `json:"time_windows"`
	WorkingDays map[time.Weekday]bool `json:"working_days"`
	Holidays    map[string]bool       `json:"holidays"` // YYYY-MM-DD -> true
	Penalty     violation.Policy      `json:"penalty_policy"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// Validate enforces the window invariants: start < end per window, and no
// two windows for one company overlap.
func (s CompanySettings) Validate() error {
	type span struct {
		key        string
		start, end int
	}
	spans := make([]span, 0, len(s.TimeWindows))
	seen := make(map[string]bool, len(s.TimeWindows))

	for _, w := range s.TimeWindows {
		if w.Key == "" {
			return ErrWindowKeyRequired
		}
		if seen[w.Key] {
			return fmt.Errorf("%w: %s", ErrDuplicateWindowKey, w.Key)
		}
		seen[w.Key] = true

		if w.Kind != WindowKindOpening && w.Kind != WindowKindClosing {
			return fmt.Errorf("%w: %s", ErrInvalidWindowKind, w.Kind)
		}

		start, err := w.StartMinutes()
		if err != nil {
			return err
		}
		end, err := w.EndMinutes()
		if err != nil {
			return err
		}
		if start >= end {
			return fmt.Errorf("%w: window %s", ErrWindowStartAfterEnd, w.Key)
		}
		if w.GraceMinutes < 0 || w.GraceMinutes > end-start {
			return fmt.Errorf("%w: window %s", ErrInvalidGracePeriod, w.Key)
		}
		spans = append(spans, span{key: w.Key, start: start, end: end})
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	for i := 1; i < len(spans); i++ {
		if spans[i].start <= spans[i-1].end {
			return fmt.Errorf("%w: %s and %s", ErrOverlappingWindows, spans[i-1].key, spans[i].key)
		}
	}
	return nil
}

// Window returns the configured window for a slot key.
func (s CompanySettings) Window(key string) (TimeWindow, bool) {
	for _, w := range s.TimeWindows {
		if w.Key == key {
			return w, true
		}
	}
	return TimeWindow{}, false
}

// IsWorkingDay reports whether the local date is a working day: the weekday
// must be enabled and the date must not be a holiday.
func (s CompanySettings) IsWorkingDay(date time.Time) bool {
	if !s.WorkingDays[date.Weekday()] {
		return false
	}
	return !s.Holidays[date.Format("2006-01-02")]
}
