package list_services

import (
	"net/http"
	"strconv"

	"github.com/turnord/TurnORD-SchedulingService/internal/api/handlers"
)

const msgInvalidBusinessID = "некорректный ID бизнеса"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/services?includeInactive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/services - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	includeInactive, _ := strconv.ParseBool(r.URL.Query().Get("includeInactive"))

	result, err := h.service.List(r.Context(), businessID, includeInactive)
	if err != nil {
		h.logger.Error("GET /businesses/{id}/services - Failed to list services: business_id=%d, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
