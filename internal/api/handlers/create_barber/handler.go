package create_barber

import (
	"errors"
	"net/http"

	"github.com/turnord/TurnORD-SchedulingService/internal/api/handlers"
	barbersService "github.com/turnord/TurnORD-SchedulingService/internal/service/barbers"
	"github.com/turnord/TurnORD-SchedulingService/internal/service/barbers/models"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service BarbersService
	logger  Logger
}

func NewHandler(service BarbersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/barbers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/barbers - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req models.CreateBarberRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/barbers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.BusinessID = businessID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, barbersService.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/barbers - Invalid input: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /businesses/{id}/barbers - Failed to create barber: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/barbers - Barber created: barber_id=%d, business_id=%d", result.ID, businessID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
