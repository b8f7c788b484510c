package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/attendly-app/attendance-backend-go/internal/domain/settings"
	"github.com/attendly-app/attendance-backend-go/internal/handler/http/middleware"
	"github.com/attendly-app/attendance-backend-go/internal/handler/http/response"
)

type SettingsHandler interface {
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type SettingsHandlerImpl struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &SettingsHandlerImpl{settingsService: settingsService}
}

// GetSettings implements SettingsHandler. Always returns a configuration,
// defaults included.
func (s *SettingsHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	_, companyID, _ := middleware.Identity(r)

	cs := s.settingsService.Get(r.Context(), companyID)
	response.Success(w, settings.ToResponse(cs))
}

// UpdateSettings implements SettingsHandler.
func (s *SettingsHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settings.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateSettings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	_, companyID, _ := middleware.Identity(r)
	req.CompanyID = companyID

	updated, err := s.settingsService.Update(r.Context(), req.ToEntity())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings updated", settings.ToResponse(updated))
}
