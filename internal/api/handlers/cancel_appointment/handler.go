package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/turnord/TurnORD-SchedulingService/internal/api/handlers"
	appointmentsService "github.com/turnord/TurnORD-SchedulingService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgAppointmentNotFound  = "запись не найдена"
	msgAlreadyFinalized     = "запись уже завершена или отменена"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	result, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Appointment not found: appointment_id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		case errors.Is(err, appointmentsService.ErrAlreadyFinalized):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Already finalized: appointment_id=%d", id)
			handlers.RespondConflict(w, msgAlreadyFinalized)
		default:
			h.logger.Error("PATCH /appointments/{id}/cancel - Failed to cancel: appointment_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Appointment cancelled: appointment_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
