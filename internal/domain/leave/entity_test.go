package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTotalDaysFor(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		duration DurationType
		want     string
	}{
		{name: "single day", start: date(2025, 1, 10), end: date(2025, 1, 10), duration: DurationFullDay, want: "1"},
		{name: "inclusive span", start: date(2025, 1, 10), end: date(2025, 1, 15), duration: DurationFullDay, want: "6"},
		{name: "across months", start: date(2025, 1, 30), end: date(2025, 2, 2), duration: DurationFullDay, want: "4"},
		{name: "half day morning", start: date(2025, 1, 10), end: date(2025, 1, 10), duration: DurationHalfDayMorning, want: "0.5"},
		{name: "half day afternoon", start: date(2025, 1, 10), end: date(2025, 1, 10), duration: DurationHalfDayAfternoon, want: "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalDaysFor(tt.start, tt.end, tt.duration)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart time.Time
		aEnd   time.Time
		bStart time.Time
		bEnd   time.Time
		want   bool
	}{
		{name: "contained", aStart: date(2025, 1, 12), aEnd: date(2025, 1, 13), bStart: date(2025, 1, 10), bEnd: date(2025, 1, 15), want: true},
		{name: "partial overlap", aStart: date(2025, 1, 14), aEnd: date(2025, 1, 20), bStart: date(2025, 1, 10), bEnd: date(2025, 1, 15), want: true},
		{name: "shared boundary day", aStart: date(2025, 1, 15), aEnd: date(2025, 1, 16), bStart: date(2025, 1, 10), bEnd: date(2025, 1, 15), want: true},
		{name: "adjacent ranges", aStart: date(2025, 1, 16), aEnd: date(2025, 1, 17), bStart: date(2025, 1, 10), bEnd: date(2025, 1, 15), want: false},
		{name: "disjoint", aStart: date(2025, 2, 1), aEnd: date(2025, 2, 2), bStart: date(2025, 1, 10), bEnd: date(2025, 1, 15), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Intersection is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestParseType(t *testing.T) {
	valid := map[string]Type{
		"full":      TypeFull,
		"annual":    TypeFull,
		"Medical":   TypeMedical,
		"sick":      TypeMedical,
		"maternity": TypeMaternity,
	}
	for raw, want := range valid {
		got, ok := ParseType(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got)
	}

	_, ok := ParseType("sabbatical")
	assert.False(t, ok)
}

func TestRequestBlocks(t *testing.T) {
	assert.True(t, Request{Status: RequestStatusPending}.Blocks())
	assert.True(t, Request{Status: RequestStatusApproved}.Blocks())
	assert.False(t, Request{Status: RequestStatusRejected}.Blocks())
	assert.False(t, Request{Status: RequestStatusCancelled}.Blocks())
}
