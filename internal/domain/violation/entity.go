package violation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Type identifies which compliance rule a day violated.
type Type string

const (
	TypeAbsent     Type = "absent"
	TypeHalfDay    Type = "half_day"
	TypeLate       Type = "late"
	TypeEarlyLeave Type = "early_leave"
)

// ParseType normalizes the loosely-typed violation strings seen at the
// storage boundary into the canonical enum.
func ParseType(raw string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "absent", "absence":
		return TypeAbsent, true
	case "half_day", "half-day", "half-absent", "halfabsent":
		return TypeHalfDay, true
	case "late":
		return TypeLate, true
	case "early_leave", "early-leave", "earlyleave":
		return TypeEarlyLeave, true
	}
	return "", false
}

// AllTypes lists every violation type, in reporting order.
func AllTypes() []Type {
	return []Type{TypeAbsent, TypeHalfDay, TypeLate, TypeEarlyLeave}
}

// Record is one violation event for one employee on one local calendar day.
// Records are append-only; corrections happen through manual day overrides,
// never by editing a record.
type Record struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Type       Type
	DateKey    string // local calendar date, YYYY-MM-DD
	MonthKey   string // local month, YYYY-MM
	CreatedAt  time.Time
}

// MonthlyCount is the incrementally-maintained aggregate that drives
// penalty emission.
type MonthlyCount struct {
	EmployeeID string
	CompanyID  string
	Type       Type
	MonthKey   string
	Count      int
}

type PenaltyStatus string

const (
	PenaltyStatusActive PenaltyStatus = "active"
	PenaltyStatusWaived PenaltyStatus = "waived"
	PenaltyStatusPaid   PenaltyStatus = "paid"
)

// PenaltyRecord is created when a monthly count crosses the configured
// threshold. TriggerCount records which count value fired it, so that
// repeat-per-threshold policies stay idempotent per crossing.
type PenaltyRecord struct {
	ID           string
	EmployeeID   string
	CompanyID    string
	Type         Type
	MonthKey     string
	TriggerCount int
	Amount       decimal.Decimal
	Status       PenaltyStatus
	DateIncurred time.Time
}

// Policy configures thresholds and amounts per violation type.
// RepeatPerThreshold controls whether a penalty fires again at every
// multiple of the threshold within the same month, or only on the first
// crossing.
type Policy struct {
	Thresholds         map[Type]int             `json:"thresholds"`
	Amounts            map[Type]decimal.Decimal `json:"amounts"`
	RepeatPerThreshold bool                     `json:"repeat_per_threshold"`
}

// Threshold returns the trigger count for a type, 0 meaning "never".
func (p Policy) Threshold(t Type) int {
	if p.Thresholds == nil {
		return 0
	}
	return p.Thresholds[t]
}

// Amount returns the penalty amount for a type.
func (p Policy) Amount(t Type) decimal.Decimal {
	if p.Amounts == nil {
		return decimal.Zero
	}
	return p.Amounts[t]
}
