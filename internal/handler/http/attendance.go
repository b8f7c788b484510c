package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendly-app/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-app/attendance-backend-go/internal/handler/http/middleware"
	"github.com/attendly-app/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	RecordCheck(w http.ResponseWriter, r *http.Request)
	GetMyDay(w http.ResponseWriter, r *http.Request)
	GetDay(w http.ResponseWriter, r *http.Request)
	FinalizeDay(w http.ResponseWriter, r *http.Request)
	OverrideDay(w http.ResponseWriter, r *http.Request)
	GetMyMonthlySummary(w http.ResponseWriter, r *http.Request)
	GetMonthlySummary(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// RecordCheck implements AttendanceHandler. The authenticated employee
// records a check against the window matching the event time (or the slot
// hint in the body).
func (a *AttendanceHandlerImpl) RecordCheck(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RecordCheck decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	employeeID, companyID, _ := middleware.Identity(r)
	req.EmployeeID = employeeID
	req.CompanyID = companyID

	result, err := a.attendanceService.RecordCheck(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check recorded", result)
}

// GetMyDay implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetMyDay(w http.ResponseWriter, r *http.Request) {
	employeeID, _, _ := middleware.Identity(r)
	a.getDay(w, r, employeeID)
}

// GetDay implements AttendanceHandler. Admin view of any employee's day.
func (a *AttendanceHandlerImpl) GetDay(w http.ResponseWriter, r *http.Request) {
	a.getDay(w, r, chi.URLParam(r, "employeeID"))
}

func (a *AttendanceHandlerImpl) getDay(w http.ResponseWriter, r *http.Request, employeeID string) {
	dateKey := chi.URLParam(r, "date")

	day, err := a.attendanceService.GetDay(r.Context(), employeeID, dateKey)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, day)
}

// FinalizeDay implements AttendanceHandler. Exposed to admins for repair;
// the nightly scheduler calls the service directly.
func (a *AttendanceHandlerImpl) FinalizeDay(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	dateKey := chi.URLParam(r, "date")

	day, err := a.attendanceService.FinalizeDay(r.Context(), employeeID, dateKey)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance day finalized", day)
}

// OverrideDay implements AttendanceHandler.
func (a *AttendanceHandlerImpl) OverrideDay(w http.ResponseWriter, r *http.Request) {
	var req attendance.OverrideDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("OverrideDay decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	adminID, _, _ := middleware.Identity(r)
	req.EmployeeID = chi.URLParam(r, "employeeID")
	req.DateKey = chi.URLParam(r, "date")
	req.OverriddenBy = adminID

	day, err := a.attendanceService.OverrideDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance day overridden", day)
}

// GetMyMonthlySummary implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetMyMonthlySummary(w http.ResponseWriter, r *http.Request) {
	employeeID, _, _ := middleware.Identity(r)
	a.monthlySummary(w, r, employeeID)
}

// GetMonthlySummary implements AttendanceHandler.
func (a *AttendanceHandlerImpl) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	a.monthlySummary(w, r, chi.URLParam(r, "employeeID"))
}

func (a *AttendanceHandlerImpl) monthlySummary(w http.ResponseWriter, r *http.Request, employeeID string) {
	monthKey := chi.URLParam(r, "month")

	summary, err := a.attendanceService.MonthlySummary(r.Context(), employeeID, monthKey)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
