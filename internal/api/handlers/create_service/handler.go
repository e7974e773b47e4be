package create_service

import (
	"errors"
	"net/http"

	"github.com/turnord/TurnORD-SchedulingService/internal/api/handlers"
	catalogService "github.com/turnord/TurnORD-SchedulingService/internal/service/catalog"
	"github.com/turnord/TurnORD-SchedulingService/internal/service/catalog/models"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle POST /api/v1/businesses/{businessId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/services - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.BusinessID = businessID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalogService.ErrDuplicateName):
			h.logger.Warn("POST /businesses/{id}/services - Duplicate name: business_id=%d, name=%q", businessID, req.Name)
			handlers.RespondConflict(w, msgDuplicateName)
		case errors.Is(err, catalogService.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/services - Invalid input: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /businesses/{id}/services - Failed to create service: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/services - Service created: service_id=%d, business_id=%d", result.ID, businessID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
