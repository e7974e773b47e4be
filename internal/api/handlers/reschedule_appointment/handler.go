package reschedule_appointment

import (
	"errors"
	"net/http"

	"github.com/turnord/TurnORD-SchedulingService/internal/api/handlers"
	"github.com/turnord/TurnORD-SchedulingService/internal/availability"
	rescheduleAppointment "github.com/turnord/TurnORD-SchedulingService/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgAppointmentNotFound  = "запись не найдена"
	msgBarberNotFound       = "мастер не найден"
	msgBarberUnavailable    = "мастер недоступен для записи"
	msgNotReschedulable     = "запись нельзя перенести из текущего статуса"
	msgSlotTaken            = "выбранный слот уже занят"
	msgNonWorkingDay        = "мастер не работает в выбранный день"
	msgOutsideHours         = "выбранное время вне рабочих часов мастера"
	msgDuringBreak          = "выбранное время попадает на перерыв мастера"
	msgInvalidDateValue     = "некорректная дата записи"
	msgDateTooFar           = "дата записи слишком далеко в будущем"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(id)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var outsideHours *availability.OutsideWorkingHoursError
		var duringBreak *availability.DuringBreakError

		switch {
		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Not found: appointment_id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, rescheduleAppointment.ErrBarberNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Barber not found: appointment_id=%d", id)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, availability.ErrBarberUnavailable):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Barber unavailable: appointment_id=%d", id)
			handlers.RespondUnprocessable(w, msgBarberUnavailable)

		case errors.Is(err, rescheduleAppointment.ErrNotReschedulable):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Not reschedulable: appointment_id=%d", id)
			handlers.RespondConflict(w, msgNotReschedulable)

		case errors.Is(err, availability.ErrSlotConflict):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Slot taken: appointment_id=%d, date=%s, time=%s",
				id, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, availability.ErrNonWorkingDay):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Non-working day: appointment_id=%d, date=%s", id, req.Date)
			handlers.RespondUnprocessable(w, msgNonWorkingDay)

		case errors.As(err, &outsideHours):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Outside working hours: appointment_id=%d, time=%s", id, req.StartTime)
			handlers.RespondError(w, http.StatusUnprocessableEntity,
				msgOutsideHours+" ("+outsideHours.WorkStart.String()+" - "+outsideHours.WorkEnd.String()+")")

		case errors.As(err, &duringBreak):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - During break: appointment_id=%d, time=%s", id, req.StartTime)
			handlers.RespondError(w, http.StatusUnprocessableEntity,
				msgDuringBreak+", свободно с "+duringBreak.UnblockAt.String())

		case errors.Is(err, rescheduleAppointment.ErrInvalidDate):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid date: appointment_id=%d, date=%s", id, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDateValue)

		case errors.Is(err, rescheduleAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Date too far: appointment_id=%d, date=%s", id, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid input: appointment_id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /appointments/{id}/reschedule - Failed to reschedule: appointment_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/reschedule - Appointment rescheduled: appointment_id=%d, date=%s, time=%s",
		id, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
