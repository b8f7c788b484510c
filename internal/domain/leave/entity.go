package leave

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Type is the leave category; each maps to one balance per employee.
type Type string

const (
	TypeFull      Type = "full"
	TypeMedical   Type = "medical"
	TypeMaternity Type = "maternity"
)

// ParseType normalizes raw leave-type strings into the canonical enum.
func ParseType(raw string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "full", "annual", "full_leave":
		return TypeFull, true
	case "medical", "sick", "medical_leave":
		return TypeMedical, true
	case "maternity", "maternity_leave":
		return TypeMaternity, true
	}
	return "", false
}

// AllTypes lists every leave type.
func AllTypes() []Type {
	return []Type{TypeFull, TypeMedical, TypeMaternity}
}

// Balance is the per-employee, per-type leave balance. RemainingDays is
// never negative: it is decremented only by approval and restored only by
// cancellation, both atomically paired with the request's status change.
type Balance struct {
	EmployeeID    string
	CompanyID     string
	Type          Type
	RemainingDays decimal.Decimal
	UpdatedAt     time.Time
}

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// NormalizeRequestStatus folds storage-boundary synonyms into the enum.
func NormalizeRequestStatus(raw string) (RequestStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending", "waiting_approval", "waiting-approval":
		return RequestStatusPending, true
	case "approved":
		return RequestStatusApproved, true
	case "rejected":
		return RequestStatusRejected, true
	case "cancelled", "canceled":
		return RequestStatusCancelled, true
	}
	return "", false
}

// DurationType allows single-day requests to consume half a day.
type DurationType string

const (
	DurationFullDay          DurationType = "full_day"
	DurationHalfDayMorning   DurationType = "half_day_morning"
	DurationHalfDayAfternoon DurationType = "half_day_afternoon"
)

func (d DurationType) IsHalfDay() bool {
	return d == DurationHalfDayMorning || d == DurationHalfDayAfternoon
}

// Request is one leave request. StartDate/EndDate are local calendar dates
// at UTC midnight; TotalDays is fixed at validation time and never
// recomputed afterwards.
type Request struct {
	ID            string
	EmployeeID    string
	CompanyID     string
	Type          Type
	StartDate     time.Time
	EndDate       time.Time
	Duration      DurationType
	TotalDays     decimal.Decimal
	Reason        string
	Status        RequestStatus
	ReviewerNotes *string
	DecidedBy     *string
	DecidedAt     *time.Time
	CancelledBy   *string
	CancelledAt   *time.Time
	SubmittedAt   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TotalDaysFor computes the inclusive day count of a request once, at
// validation time: days_between(start, end) + 1, or 0.5 for a half-day
// single-day request.
func TotalDaysFor(startDate, endDate time.Time, duration DurationType) decimal.Decimal {
	days := int(endDate.Sub(startDate).Hours()/24) + 1
	if days == 1 && duration.IsHalfDay() {
		return decimal.NewFromFloat(0.5)
	}
	return decimal.NewFromInt(int64(days))
}

// Overlaps reports whether two inclusive date ranges intersect:
// newStart <= existingEnd AND newEnd >= existingStart.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// Covers reports whether the request's inclusive range contains the date.
func (r Request) Covers(date time.Time) bool {
	return !date.Before(r.StartDate) && !date.After(r.EndDate)
}

// Blocks reports whether this request should block a new overlapping
// request: rejected and cancelled requests free their dates.
func (r Request) Blocks() bool {
	return r.Status == RequestStatusPending || r.Status == RequestStatusApproved
}
