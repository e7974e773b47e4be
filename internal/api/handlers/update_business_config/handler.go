package update_business_config

import (
	"errors"
	"net/http"

	"github.com/turnord/TurnORD-SchedulingService/internal/api/handlers"
	businessService "github.com/turnord/TurnORD-SchedulingService/internal/service/business"
	"github.com/turnord/TurnORD-SchedulingService/internal/service/business/models"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service BusinessService
	logger  Logger
}

func NewHandler(service BusinessService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/businesses/{businessId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/config - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateConfig(r.Context(), businessID, &req)
	if err != nil {
		switch {
		case errors.Is(err, businessService.ErrInvalidInput):
			h.logger.Warn("PUT /businesses/{id}/config - Invalid input: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PUT /businesses/{id}/config - Failed to update config: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/config - Config updated: business_id=%d", businessID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
