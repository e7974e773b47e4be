package delete_barber

import (
	"errors"
	"net/http"

	"github.com/turnord/TurnORD-SchedulingService/internal/api/handlers"
	barbersService "github.com/turnord/TurnORD-SchedulingService/internal/service/barbers"
)

const (
	msgInvalidBarberID = "некорректный ID мастера"
	msgBarberNotFound  = "мастер не найден"
	msgBarberInUse     = "у мастера есть активные записи"
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

// Handle DELETE /api/v1/businesses/{businessId}/barbers/{barberId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	barberID, err := handlers.PathInt64(r, "barberId")
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/barbers/{barberId} - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	if err := h.service.Delete(r.Context(), barberID); err != nil {
		switch {
		case errors.Is(err, barbersService.ErrBarberNotFound):
			h.logger.Warn("DELETE /businesses/{id}/barbers/{barberId} - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)
		case errors.Is(err, barbersService.ErrBarberInUse):
			h.logger.Warn("DELETE /businesses/{id}/barbers/{barberId} - Barber in use: barber_id=%d", barberID)
			handlers.RespondConflict(w, msgBarberInUse)
		default:
			h.logger.Error("DELETE /businesses/{id}/barbers/{barberId} - Failed to delete barber: barber_id=%d, error=%v", barberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /businesses/{id}/barbers/{barberId} - Barber deleted: barber_id=%d", barberID)
	handlers.RespondNoContent(w)
}
