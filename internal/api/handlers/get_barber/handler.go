package get_barber

import (
	"errors"
	"net/http"

	"github.com/turnord/TurnORD-SchedulingService/internal/api/handlers"
	barbersService "github.com/turnord/TurnORD-SchedulingService/internal/service/barbers"
)

const (
	msgInvalidBarberID = "некорректный ID мастера"
	msgBarberNotFound  = "мастер не найден"
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

// Handle GET /api/v1/businesses/{businessId}/barbers/{barberId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := handlers.PathInt64(r, "barberId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/barbers/{barberId} - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	result, err := h.service.GetByID(r.Context(), barberID)
	if err != nil {
		switch {
		case errors.Is(err, barbersService.ErrBarberNotFound):
			h.logger.Warn("GET /businesses/{id}/barbers/{barberId} - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)
		default:
			h.logger.Error("GET /businesses/{id}/barbers/{barberId} - Failed to get barber: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
