package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2024-01-15", "2025-12-31", "2024-02-29"}
	invalid := []string{"2024-13-01", "2023-02-29", "15-01-2024", "2024/01/15", "", "2024-1-5"}
	for _, date := range valid {
		if _, ok := IsValidDate(date); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", date)
		}
	}
	for _, date := range invalid {
		if _, ok := IsValidDate(date); ok {
			t.Errorf("IsValidDate(%q) = true, want false", date)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{
		"2024-01-15T10:30:00Z",
		"2024-01-15T10:30:00+05:30",
		"2024-01-15T10:30:00.123Z",
	}
	invalid := []string{"2024-01-15 10:30:00", "2024-01-15", "", "not-a-time"}
	for _, ts := range valid {
		if _, ok := IsValidDateTime(ts); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", ts)
		}
	}
	for _, ts := range invalid {
		if _, ok := IsValidDateTime(ts); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", ts)
		}
	}
}

func TestIsValidMonthKey(t *testing.T) {
	valid := []string{"2024-01", "2025-12"}
	invalid := []string{"2024-13", "2024-1", "2024", "", "2024-01-15"}
	for _, month := range valid {
		if !IsValidMonthKey(month) {
			t.Errorf("IsValidMonthKey(%q) = false, want true", month)
		}
	}
	for _, month := range invalid {
		if IsValidMonthKey(month) {
			t.Errorf("IsValidMonthKey(%q) = true, want false", month)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"approve", "reject"}
	if !IsInSlice("approve", slice) {
		t.Error("IsInSlice should find existing value")
	}
	if IsInSlice("cancel", slice) {
		t.Error("IsInSlice should not find missing value")
	}
}
