package checkout_appointment

import (
	"errors"
	"net/http"

	"github.com/turnord/TurnORD-SchedulingService/internal/api/handlers"
	appointmentsService "github.com/turnord/TurnORD-SchedulingService/internal/service/appointments"
	"github.com/turnord/TurnORD-SchedulingService/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgAppointmentNotFound  = "запись не найдена"
	msgAlreadyFinalized     = "запись уже завершена или отменена"
	msgNotInService         = "завершить можно только запись, взятую в работу"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/checkout - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req models.CheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/checkout - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Checkout(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/checkout - Appointment not found: appointment_id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		case errors.Is(err, appointmentsService.ErrAlreadyFinalized):
			h.logger.Warn("PATCH /appointments/{id}/checkout - Already finalized: appointment_id=%d", id)
			handlers.RespondConflict(w, msgAlreadyFinalized)
		case errors.Is(err, appointmentsService.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/checkout - Not in service: appointment_id=%d", id)
			handlers.RespondConflict(w, msgNotInService)
		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/checkout - Invalid input: appointment_id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PATCH /appointments/{id}/checkout - Failed to checkout: appointment_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/checkout - Appointment attended: appointment_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
