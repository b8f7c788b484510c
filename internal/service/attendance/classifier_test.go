package attendance

import (
	"errors"
	"testing"
	"time"

	"github.com/attendly-app/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-app/attendance-backend-go/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestLocalDateKey(t *testing.T) {
	kolkata := mustLocation(t, "Asia/Kolkata")
	losAngeles := mustLocation(t, "America/Los_Angeles")

	// 23:30 UTC is already the next day in Kolkata (+05:30) but still the
	// same day in Los Angeles.
	instant := time.Date(2024, 1, 14, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-01-15", LocalDateKey(instant, kolkata))
	assert.Equal(t, "2024-01-14", LocalDateKey(instant, losAngeles))
	assert.Equal(t, "2024-01-14", LocalDateKey(instant, time.UTC))
}

func TestSlotForInstant(t *testing.T) {
	kolkata := mustLocation(t, "Asia/Kolkata")
	s := fixtures.DefaultSettings("company-1")

	at := func(hour, min int) time.Time {
		return time.Date(2024, 1, 15, hour, min, 0, 0, kolkata).UTC()
	}

	tests := []struct {
		name    string
		instant time.Time
		want    string
		wantErr error
	}{
		{name: "inside morning window", instant: at(9, 0), want: "morning"},
		{name: "morning window start boundary", instant: at(8, 30), want: "morning"},
		{name: "morning window end boundary", instant: at(10, 0), want: "morning"},
		{name: "inside midday window", instant: at(13, 30), want: "midday"},
		{name: "inside evening window", instant: at(18, 0), want: "evening"},
		{name: "between windows", instant: at(11, 0), wantErr: attendance.ErrNoActiveWindow},
		{name: "before all windows", instant: at(6, 0), wantErr: attendance.ErrNoActiveWindow},
		{name: "after all windows", instant: at(22, 0), wantErr: attendance.ErrNoActiveWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := SlotForInstant(s, tt.instant, kolkata, nil)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, w.Key)
		})
	}
}

func TestSlotForInstantWithHint(t *testing.T) {
	kolkata := mustLocation(t, "Asia/Kolkata")
	s := fixtures.DefaultSettings("company-1")

	// Out-of-window instant attaches to the hinted window.
	instant := time.Date(2024, 1, 15, 17, 0, 0, 0, kolkata).UTC()

	hint := "evening"
	w, err := SlotForInstant(s, instant, kolkata, &hint)
	require.NoError(t, err)
	assert.Equal(t, "evening", w.Key)

	unknown := "overnight"
	_, err = SlotForInstant(s, instant, kolkata, &unknown)
	assert.True(t, errors.Is(err, attendance.ErrUnknownSlot))
}
