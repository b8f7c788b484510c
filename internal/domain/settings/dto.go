package settings

import (
	"sort"
	"strings"
	"time"

	"github.com/attendly-app/attendance-backend-go/internal/domain/violation"
	"github.com/attendly-app/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// SETTINGS DTOs
// ========================================

type UpdateSettingsRequest struct {
	CompanyID   string           `json:"-"`
	Timezone    string           `json:"timezone"`
	TimeWindows []TimeWindow     `json:"time_windows"`
	WorkingDays []string         `json:"working_days"` // weekday names, e.g. "monday"
	Holidays    []string         `json:"holidays"`     // YYYY-MM-DD
	Penalty     violation.Policy `json:"penalty_policy"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Timezone != "" {
		if _, err := time.LoadLocation(r.Timezone); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "timezone",
				Message: "timezone must be a valid IANA identifier",
			})
		}
	}

	if len(r.TimeWindows) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "time_windows",
			Message: "at least one time window is required",
		})
	}

	for _, day := range r.WorkingDays {
		if _, ok := weekdayNames[strings.ToLower(day)]; !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "working_days",
				Message: "unknown weekday: " + day,
			})
		}
	}

	for _, h := range r.Holidays {
		if _, valid := validator.IsValidDate(h); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "holidays",
				Message: "holiday dates must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEntity builds the CompanySettings this request describes. Window-level
// invariants are checked by CompanySettings.Validate, not here.
func (r *UpdateSettingsRequest) ToEntity() CompanySettings {
	tz := strings.TrimSpace(r.Timezone)
	if tz == "" {
		tz = DefaultTimezone
	}

	workingDays := make(map[time.Weekday]bool, len(r.WorkingDays))
	for _, day := range r.WorkingDays {
		if wd, ok := weekdayNames[strings.ToLower(day)]; ok {
			workingDays[wd] = true
		}
	}

	holidays := make(map[string]bool, len(r.Holidays))
	for _, h := range r.Holidays {
		holidays[h] = true
	}

	return CompanySettings{
		CompanyID:   r.CompanyID,
		Timezone:    tz,
		TimeWindows: r.TimeWindows,
		WorkingDays: workingDays,
		Holidays:    holidays,
		Penalty:     r.Penalty,
	}
}

type SettingsResponse struct {
	CompanyID   string           `json:"company_id"`
	Timezone    string           `json:"timezone"`
	TimeWindows []TimeWindow     `json:"time_windows"`
	WorkingDays []string         `json:"working_days"`
	Holidays    []string         `json:"holidays"`
	Penalty     violation.Policy `json:"penalty_policy"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ToResponse flattens the maps into stable slices for the API.
func ToResponse(s CompanySettings) SettingsResponse {
	days := make([]string, 0, len(s.WorkingDays))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if s.WorkingDays[wd] {
			days = append(days, strings.ToLower(wd.String()))
		}
	}

	holidays := make([]string, 0, len(s.Holidays))
	for h := range s.Holidays {
		holidays = append(holidays, h)
	}
	sort.Strings(holidays)

	return SettingsResponse{
		CompanyID:   s.CompanyID,
		Timezone:    s.Timezone,
		TimeWindows: s.TimeWindows,
		WorkingDays: days,
		Holidays:    holidays,
		Penalty:     s.Penalty,
		UpdatedAt:   s.UpdatedAt,
	}
}
