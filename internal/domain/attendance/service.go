package attendance

import "context"

type AttendanceService interface {
	RecordCheck(ctx context.Context, req RecordCheckRequest) (CheckResponse, error)
	GetDay(ctx context.Context, employeeID, dateKey string) (DayResponse, error)
	FinalizeDay(ctx context.Context, employeeID, dateKey string) (DayResponse, error)
	OverrideDay(ctx context.Context, req OverrideDayRequest) (DayResponse, error)
	MonthlySummary(ctx context.Context, employeeID, monthKey string) (MonthlySummaryResponse, error)
}
