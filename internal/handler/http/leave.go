package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendly-app/attendance-backend-go/internal/domain/leave"
	"github.com/attendly-app/attendance-backend-go/internal/handler/http/middleware"
	"github.com/attendly-app/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	SubmitRequest(w http.ResponseWriter, r *http.Request)
	DecideRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyBalances(w http.ResponseWriter, r *http.Request)
	ListBalances(w http.ResponseWriter, r *http.Request)
	SetBalance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// SubmitRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	employeeID, companyID, _ := middleware.Identity(r)
	req.EmployeeID = employeeID
	req.CompanyID = companyID

	result, err := l.leaveService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// DecideRequest implements LeaveHandler. Admin approval or rejection.
func (l *LeaveHandlerImpl) DecideRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("DecideRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	adminID, _, _ := middleware.Identity(r)
	req.RequestID = chi.URLParam(r, "id")
	req.DecidedBy = adminID

	result, err := l.leaveService.Decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request decided", result)
}

// CancelRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, _, _ := middleware.Identity(r)
	requestID := chi.URLParam(r, "id")

	result, err := l.leaveService.Cancel(r.Context(), requestID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", result)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, _, _ := middleware.Identity(r)

	requests, err := l.leaveService.ListRequests(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListRequests implements LeaveHandler. Admin view of any employee's
// requests.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := l.leaveService.ListRequests(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// GetMyBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	employeeID, _, _ := middleware.Identity(r)

	balances, err := l.leaveService.ListBalances(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// ListBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) ListBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := l.leaveService.ListBalances(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// SetBalance implements LeaveHandler. Admin seeding or correction.
func (l *LeaveHandlerImpl) SetBalance(w http.ResponseWriter, r *http.Request) {
	var req leave.SetBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetBalance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	_, companyID, _ := middleware.Identity(r)
	req.CompanyID = companyID

	balance, err := l.leaveService.SetBalance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave balance updated", balance)
}
