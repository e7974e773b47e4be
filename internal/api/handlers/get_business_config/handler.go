package get_business_config

import (
	"errors"
	"net/http"

	"github.com/turnord/TurnORD-SchedulingService/internal/api/handlers"
	businessService "github.com/turnord/TurnORD-SchedulingService/internal/service/business"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgConfigNotFound    = "конфигурация бизнеса не найдена"
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

// Handle GET /api/v1/businesses/{businessId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/config - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	result, err := h.service.GetConfig(r.Context(), businessID)
	if err != nil {
		switch {
		case errors.Is(err, businessService.ErrConfigNotFound):
			h.logger.Warn("GET /businesses/{id}/config - Config not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgConfigNotFound)
		default:
			h.logger.Error("GET /businesses/{id}/config - Failed to get config: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
