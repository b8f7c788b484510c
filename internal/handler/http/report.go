package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendly-app/attendance-backend-go/internal/domain/violation"
	"github.com/attendly-app/attendance-backend-go/internal/handler/http/middleware"
	"github.com/attendly-app/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	GetMyViolations(w http.ResponseWriter, r *http.Request)
	GetViolations(w http.ResponseWriter, r *http.Request)
	GetMyPenalties(w http.ResponseWriter, r *http.Request)
	GetPenalties(w http.ResponseWriter, r *http.Request)
	DecidePenalty(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	accrualService violation.AccrualService
}

func NewReportHandler(accrualService violation.AccrualService) ReportHandler {
	return &ReportHandlerImpl{accrualService: accrualService}
}

// GetMyViolations implements ReportHandler.
func (h *ReportHandlerImpl) GetMyViolations(w http.ResponseWriter, r *http.Request) {
	employeeID, _, _ := middleware.Identity(r)
	h.violations(w, r, employeeID)
}

// GetViolations implements ReportHandler.
func (h *ReportHandlerImpl) GetViolations(w http.ResponseWriter, r *http.Request) {
	h.violations(w, r, chi.URLParam(r, "employeeID"))
}

func (h *ReportHandlerImpl) violations(w http.ResponseWriter, r *http.Request, employeeID string) {
	monthKey := chi.URLParam(r, "month")

	summary, err := h.accrualService.GetMonthlyCounts(r.Context(), employeeID, monthKey)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// GetMyPenalties implements ReportHandler.
func (h *ReportHandlerImpl) GetMyPenalties(w http.ResponseWriter, r *http.Request) {
	employeeID, _, _ := middleware.Identity(r)
	h.penalties(w, r, employeeID)
}

// GetPenalties implements ReportHandler.
func (h *ReportHandlerImpl) GetPenalties(w http.ResponseWriter, r *http.Request) {
	h.penalties(w, r, chi.URLParam(r, "employeeID"))
}

func (h *ReportHandlerImpl) penalties(w http.ResponseWriter, r *http.Request, employeeID string) {
	penalties, err := h.accrualService.ListPenalties(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, penalties)
}

// DecidePenalty implements ReportHandler. Settles an active penalty as
// waived or paid.
func (h *ReportHandlerImpl) DecidePenalty(w http.ResponseWriter, r *http.Request) {
	var req violation.DecidePenaltyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("DecidePenalty decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.PenaltyID = chi.URLParam(r, "id")

	penalty, err := h.accrualService.DecidePenalty(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Penalty updated", penalty)
}
