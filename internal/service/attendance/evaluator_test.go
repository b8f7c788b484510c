package attendance

import (
	"testing"
	"time"

	"github.com/attendly-app/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-app/attendance-backend-go/internal/domain/settings"
	"github.com/attendly-app/attendance-backend-go/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func windowByKey(t *testing.T, key string) settings.TimeWindow {
	t.Helper()
	w, ok := fixtures.DefaultSettings("company-1").Window(key)
	require.True(t, ok)
	return w
}

func TestClassifyEventOpeningWindow(t *testing.T) {
	kolkata := mustLocation(t, "Asia/Kolkata")
	morning := windowByKey(t, "morning") // 08:30-10:00, grace 15

	at := func(hour, min int) time.Time {
		return time.Date(2024, 1, 15, hour, min, 0, 0, kolkata).UTC()
	}

	tests := []struct {
		name    string
		instant time.Time
		want    attendance.CheckOutcome
	}{
		{name: "at window start", instant: at(8, 30), want: attendance.OutcomeOnTime},
		{name: "within grace", instant: at(8, 44), want: attendance.OutcomeOnTime},
		{name: "grace boundary", instant: at(8, 45), want: attendance.OutcomeOnTime},
		{name: "just past grace", instant: at(8, 46), want: attendance.OutcomeLate},
		{name: "mid window", instant: at(9, 30), want: attendance.OutcomeLate},
		{name: "at window end", instant: at(10, 0), want: attendance.OutcomeLate},
		{name: "early arrival", instant: at(8, 0), want: attendance.OutcomeOnTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyEvent(morning, tt.instant, kolkata))
		})
	}
}

func TestClassifyEventClosingWindow(t *testing.T) {
	kolkata := mustLocation(t, "Asia/Kolkata")
	evening := windowByKey(t, "evening") // 17:30-19:00, grace 15

	at := func(hour, min int) time.Time {
		return time.Date(2024, 1, 15, hour, min, 0, 0, kolkata).UTC()
	}

	tests := []struct {
		name    string
		instant time.Time
		want    attendance.CheckOutcome
	}{
		{name: "at window start", instant: at(17, 30), want: attendance.OutcomeOnTime},
		{name: "within start grace", instant: at(17, 45), want: attendance.OutcomeOnTime},
		{name: "leaving mid window", instant: at(18, 0), want: attendance.OutcomeEarlyLeave},
		{name: "just before end grace", instant: at(18, 44), want: attendance.OutcomeEarlyLeave},
		{name: "within end grace", instant: at(18, 45), want: attendance.OutcomeOnTime},
		{name: "at window end", instant: at(19, 0), want: attendance.OutcomeOnTime},
		{name: "before window start", instant: at(17, 0), want: attendance.OutcomeEarlyLeave},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyEvent(evening, tt.instant, kolkata))
		})
	}
}

func TestClassifyAbsence(t *testing.T) {
	kolkata := mustLocation(t, "Asia/Kolkata")
	morning := windowByKey(t, "morning")

	at := func(day, hour, min int) time.Time {
		return time.Date(2024, 1, day, hour, min, 0, 0, kolkata).UTC()
	}

	tests := []struct {
		name string
		now  time.Time
		want attendance.CheckOutcome
	}{
		{name: "window still open", now: at(15, 9, 30), want: attendance.OutcomePending},
		{name: "before window opens", now: at(15, 7, 0), want: attendance.OutcomePending},
		{name: "window closed same day", now: at(15, 10, 1), want: attendance.OutcomeMissed},
		{name: "next day", now: at(16, 0, 30), want: attendance.OutcomeMissed},
		{name: "previous day", now: at(14, 12, 0), want: attendance.OutcomePending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyAbsence(morning, "2024-01-15", tt.now, kolkata))
		})
	}
}
