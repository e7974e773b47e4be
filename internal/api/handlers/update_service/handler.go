package update_service

import (
	"errors"
	"net/http"

	"github.com/turnord/TurnORD-SchedulingService/internal/api/handlers"
	catalogService "github.com/turnord/TurnORD-SchedulingService/internal/service/catalog"
	"github.com/turnord/TurnORD-SchedulingService/internal/service/catalog/models"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgServiceNotFound    = "услуга не найдена"
	msgDuplicateName      = "услуга с таким названием уже существует"
)

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

// Handle PUT /api/v1/businesses/{businessId}/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/services/{serviceId} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req models.UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/services/{serviceId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), serviceID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalogService.ErrServiceNotFound):
			h.logger.Warn("PUT /businesses/{id}/services/{serviceId} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)
		case errors.Is(err, catalogService.ErrDuplicateName):
			h.logger.Warn("PUT /businesses/{id}/services/{serviceId} - Duplicate name: service_id=%d", serviceID)
			handlers.RespondConflict(w, msgDuplicateName)
		case errors.Is(err, catalogService.ErrInvalidInput):
			h.logger.Warn("PUT /businesses/{id}/services/{serviceId} - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PUT /businesses/{id}/services/{serviceId} - Failed to update service: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/services/{serviceId} - Service updated: service_id=%d", serviceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
