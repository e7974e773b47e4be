package delete_service

import (
	"errors"
	"net/http"

	"github.com/turnord/TurnORD-SchedulingService/internal/api/handlers"
	catalogService "github.com/turnord/TurnORD-SchedulingService/internal/service/catalog"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgServiceNotFound  = "услуга не найдена"
	msgServiceInUse     = "на услугу есть активные записи"
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

// Handle DELETE /api/v1/businesses/{businessId}/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/services/{serviceId} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if err := h.service.Delete(r.Context(), serviceID); err != nil {
		switch {
		case errors.Is(err, catalogService.ErrServiceNotFound):
			h.logger.Warn("DELETE /businesses/{id}/services/{serviceId} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)
		case errors.Is(err, catalogService.ErrServiceInUse):
			h.logger.Warn("DELETE /businesses/{id}/services/{serviceId} - Service in use: service_id=%d", serviceID)
			handlers.RespondConflict(w, msgServiceInUse)
		default:
			h.logger.Error("DELETE /businesses/{id}/services/{serviceId} - Failed to delete service: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /businesses/{id}/services/{serviceId} - Service deleted: service_id=%d", serviceID)
	handlers.RespondNoContent(w)
}
