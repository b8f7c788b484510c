package attendance

import (
	"testing"
	"time"

	"github.com/attendly-app/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-app/attendance-backend-go/internal/fixtures"
	"github.com/stretchr/testify/assert"
)

func dayWithOutcomes(outcomes map[string]attendance.CheckOutcome) attendance.AttendanceDay {
	day := attendance.AttendanceDay{
		EmployeeID: "emp-1",
		CompanyID:  "company-1",
		DateKey:    "2024-01-15", // a Monday
	}
	for slot, outcome := range outcomes {
		day.Checks = append(day.Checks, attendance.CheckClassification{
			Slot:    slot,
			Outcome: outcome,
		})
	}
	return day
}

func TestResolveDayAggregation(t *testing.T) {
	kolkata := mustLocation(t, "Asia/Kolkata")
	s := fixtures.DefaultSettings("company-1")

	// Day is fully closed from the next morning.
	now := time.Date(2024, 1, 16, 8, 0, 0, 0, kolkata).UTC()

	tests := []struct {
		name     string
		outcomes map[string]attendance.CheckOutcome
		want     attendance.DayStatus
	}{
		{
			name: "all on time",
			outcomes: map[string]attendance.CheckOutcome{
				"morning": attendance.OutcomeOnTime,
				"midday":  attendance.OutcomeOnTime,
				"evening": attendance.OutcomeOnTime,
			},
			want: attendance.DayStatusPresent,
		},
		{
			name:     "no checks at all",
			outcomes: nil,
			want:     attendance.DayStatusAbsent,
		},
		{
			name: "one window missed",
			outcomes: map[string]attendance.CheckOutcome{
				"morning": attendance.OutcomeOnTime,
				"evening": attendance.OutcomeOnTime,
			},
			want: attendance.DayStatusHalfDay,
		},
		{
			name: "late but nothing missed",
			outcomes: map[string]attendance.CheckOutcome{
				"morning": attendance.OutcomeLate,
				"midday":  attendance.OutcomeOnTime,
				"evening": attendance.OutcomeOnTime,
			},
			want: attendance.DayStatusLate,
		},
		{
			name: "early leave beats late",
			outcomes: map[string]attendance.CheckOutcome{
				"morning": attendance.OutcomeLate,
				"midday":  attendance.OutcomeOnTime,
				"evening": attendance.OutcomeEarlyLeave,
			},
			want: attendance.DayStatusEarlyLeave,
		},
		{
			name: "missed beats early leave and late",
			outcomes: map[string]attendance.CheckOutcome{
				"morning": attendance.OutcomeLate,
				"evening": attendance.OutcomeEarlyLeave,
			},
			want: attendance.DayStatusHalfDay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := dayWithOutcomes(tt.outcomes)
			res := ResolveDay(s, day, day.DateKey, false, now, kolkata)
			assert.Equal(t, tt.want, res.Status)
			assert.True(t, res.Closed)
		})
	}
}

func TestResolveDayTerminalStatuses(t *testing.T) {
	kolkata := mustLocation(t, "Asia/Kolkata")
	s := fixtures.DefaultSettings("company-1")
	now := time.Date(2024, 1, 16, 8, 0, 0, 0, kolkata).UTC()

	t.Run("weekend overrides checks", func(t *testing.T) {
		day := dayWithOutcomes(map[string]attendance.CheckOutcome{
			"morning": attendance.OutcomeOnTime,
		})
		day.DateKey = "2024-01-13" // a Saturday
		res := ResolveDay(s, day, day.DateKey, false, now, kolkata)
		assert.Equal(t, attendance.DayStatusWeekend, res.Status)
		assert.True(t, res.Closed)
	})

	t.Run("holiday resolves to weekend", func(t *testing.T) {
		s := fixtures.DefaultSettings("company-1")
		s.Holidays["2024-01-15"] = true
		day := dayWithOutcomes(nil)
		res := ResolveDay(s, day, day.DateKey, false, now, kolkata)
		assert.Equal(t, attendance.DayStatusWeekend, res.Status)
	})

	t.Run("approved leave overrides checks", func(t *testing.T) {
		day := dayWithOutcomes(map[string]attendance.CheckOutcome{
			"morning": attendance.OutcomeLate,
		})
		res := ResolveDay(s, day, day.DateKey, true, now, kolkata)
		assert.Equal(t, attendance.DayStatusOnLeave, res.Status)
		assert.True(t, res.Closed)
	})
}

func TestResolveDayProvisionalUntilLastWindowCloses(t *testing.T) {
	kolkata := mustLocation(t, "Asia/Kolkata")
	s := fixtures.DefaultSettings("company-1")

	day := dayWithOutcomes(map[string]attendance.CheckOutcome{
		"morning": attendance.OutcomeOnTime,
		"midday":  attendance.OutcomeOnTime,
	})

	// Mid afternoon: evening window has not opened yet.
	now := time.Date(2024, 1, 15, 15, 0, 0, 0, kolkata).UTC()
	res := ResolveDay(s, day, day.DateKey, false, now, kolkata)
	assert.Equal(t, attendance.DayStatusPending, res.Status)
	assert.False(t, res.Closed)

	// After the evening window ends the day closes and the missing
	// evening check counts as missed.
	now = time.Date(2024, 1, 15, 19, 1, 0, 0, kolkata).UTC()
	res = ResolveDay(s, day, day.DateKey, false, now, kolkata)
	assert.Equal(t, attendance.DayStatusHalfDay, res.Status)
	assert.True(t, res.Closed)
}
