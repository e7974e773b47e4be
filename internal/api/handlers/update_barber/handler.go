package update_barber

import (
	"errors"
	"net/http"

	"github.com/turnord/TurnORD-SchedulingService/internal/api/handlers"
	barbersService "github.com/turnord/TurnORD-SchedulingService/internal/service/barbers"
	"github.com/turnord/TurnORD-SchedulingService/internal/service/barbers/models"
)

const (
	msgInvalidBarberID    = "некорректный ID мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBarberNotFound     = "мастер не найден"
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

// Handle PUT /api/v1/businesses/{businessId}/barbers/{barberId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := handlers.PathInt64(r, "barberId")
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/barbers/{barberId} - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	var req models.UpdateBarberRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/barbers/{barberId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), barberID, &req)
	if err != nil {
		switch {
		case errors.Is(err, barbersService.ErrBarberNotFound):
			h.logger.Warn("PUT /businesses/{id}/barbers/{barberId} - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)
		case errors.Is(err, barbersService.ErrInvalidInput):
			h.logger.Warn("PUT /businesses/{id}/barbers/{barberId} - Invalid input: barber_id=%d, error=%v", barberID, err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PUT /businesses/{id}/barbers/{barberId} - Failed to update barber: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/barbers/{barberId} - Barber updated: barber_id=%d", barberID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
