package fixtures

import (
	"time"

	"github.com/attendly-app/attendance-backend-go/internal/domain/leave"
	"github.com/attendly-app/attendance-backend-go/internal/domain/settings"
	"github.com/attendly-app/attendance-backend-go/internal/domain/violation"
	"github.com/shopspring/decimal"
)

// DefaultSettings returns the configuration a company starts with before an
// admin customizes anything. Classification must always have something to
// work from, so lookups that miss fall back to this.
func DefaultSettings(companyID string) settings.CompanySettings {
	return settings.CompanySettings{
		CompanyID: companyID,
		Timezone:  settings.DefaultTimezone,
		TimeWindows: []settings.TimeWindow{
			{
				Key:          "morning",
				Label:        "Morning Check-In",
				Kind:         settings.WindowKindOpening,
				StartLocal:   "08:30",
				EndLocal:     "10:00",
				GraceMinutes: 15,
			},
			{
				Key:          "midday",
				Label:        "Midday Check",
				Kind:         settings.WindowKindOpening,
				StartLocal:   "13:00",
				EndLocal:     "14:30",
				GraceMinutes: 10,
			},
			{
				Key:          "evening",
				Label:        "Evening Check-Out",
				Kind:         settings.WindowKindClosing,
				StartLocal:   "17:30",
				EndLocal:     "19:00",
				GraceMinutes: 15,
			},
		},
		WorkingDays: map[time.Weekday]bool{
			time.Monday:    true,
			time.Tuesday:   true,
			time.Wednesday: true,
			time.Thursday:  true,
			time.Friday:    true,
		},
		Holidays: map[string]bool{},
		Penalty: violation.Policy{
			Thresholds: map[violation.Type]int{
				violation.TypeAbsent:     4,
				violation.TypeHalfDay:    4,
				violation.TypeLate:       6,
				violation.TypeEarlyLeave: 6,
			},
			Amounts: map[violation.Type]decimal.Decimal{
				violation.TypeAbsent:     decimal.NewFromInt(1000),
				violation.TypeHalfDay:    decimal.NewFromInt(500),
				violation.TypeLate:       decimal.NewFromInt(250),
				violation.TypeEarlyLeave: decimal.NewFromInt(250),
			},
			RepeatPerThreshold: false,
		},
		UpdatedAt: time.Now().UTC(),
	}
}

// DefaultLeaveBalances seeds a new employee's leave ledger.
func DefaultLeaveBalances(employeeID, companyID string) []leave.Balance {
	now := time.Now().UTC()
	quota := map[leave.Type]int64{
		leave.TypeFull:      12,
		leave.TypeMedical:   10,
		leave.TypeMaternity: 90,
	}

	balances := make([]leave.Balance, 0, len(quota))
	for _, t := range leave.AllTypes() {
		balances = append(balances, leave.Balance{
			EmployeeID:    employeeID,
			CompanyID:     companyID,
			Type:          t,
			RemainingDays: decimal.NewFromInt(quota[t]),
			UpdatedAt:     now,
		})
	}
	return balances
}
