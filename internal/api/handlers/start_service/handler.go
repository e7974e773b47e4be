package start_service

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
	msgInvalidTransition    = "запись нельзя взять в работу из текущего статуса"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/start
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/start - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req models.StartServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/start - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.StartService(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/start - Appointment not found: appointment_id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		case errors.Is(err, appointmentsService.ErrAlreadyFinalized):
			h.logger.Warn("PATCH /appointments/{id}/start - Already finalized: appointment_id=%d", id)
			handlers.RespondConflict(w, msgAlreadyFinalized)
		case errors.Is(err, appointmentsService.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/start - Invalid transition: appointment_id=%d", id)
			handlers.RespondConflict(w, msgInvalidTransition)
		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/start - Invalid input: appointment_id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PATCH /appointments/{id}/start - Failed to start service: appointment_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/start - Appointment in service: appointment_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
