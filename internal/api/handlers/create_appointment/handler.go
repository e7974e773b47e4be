package create_appointment

import (
	"errors"
	"net/http"

	"github.com/turnord/TurnORD-SchedulingService/internal/api/handlers"
	"github.com/turnord/TurnORD-SchedulingService/internal/availability"
	createAppointment "github.com/turnord/TurnORD-SchedulingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSlotTaken          = "выбранный слот уже занят"
	msgBarberNotFound     = "мастер не найден"
	msgBarberUnavailable  = "мастер недоступен для записи"
	msgServiceNotFound    = "услуга не найдена"
	msgNonWorkingDay      = "мастер не работает в выбранный день"
	msgOutsideHours       = "выбранное время вне рабочих часов мастера"
	msgDuringBreak        = "выбранное время попадает на перерыв мастера"
	msgInvalidDateValue   = "некорректная дата записи"
	msgDateTooFar         = "дата записи слишком далеко в будущем"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var outsideHours *availability.OutsideWorkingHoursError
		var duringBreak *availability.DuringBreakError

		switch {
		case errors.Is(err, availability.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot taken: barber_id=%d, date=%s, time=%s",
				req.BarberID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createAppointment.ErrBarberNotFound):
			h.logger.Warn("POST /appointments - Barber not found: barber_id=%d", req.BarberID)
			handlers.RespondNotFound(w, msgBarberNotFound)

		case errors.Is(err, availability.ErrBarberUnavailable):
			h.logger.Warn("POST /appointments - Barber unavailable: barber_id=%d", req.BarberID)
			handlers.RespondUnprocessable(w, msgBarberUnavailable)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, availability.ErrNonWorkingDay):
			h.logger.Warn("POST /appointments - Non-working day: barber_id=%d, date=%s", req.BarberID, req.Date)
			handlers.RespondUnprocessable(w, msgNonWorkingDay)

		case errors.As(err, &outsideHours):
			h.logger.Warn("POST /appointments - Outside working hours: barber_id=%d, time=%s", req.BarberID, req.StartTime)
			handlers.RespondError(w, http.StatusUnprocessableEntity,
				msgOutsideHours+" ("+outsideHours.WorkStart.String()+" - "+outsideHours.WorkEnd.String()+")")

		case errors.As(err, &duringBreak):
			h.logger.Warn("POST /appointments - During break: barber_id=%d, time=%s", req.BarberID, req.StartTime)
			handlers.RespondError(w, http.StatusUnprocessableEntity,
				msgDuringBreak+", свободно с "+duringBreak.UnblockAt.String())

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDateValue)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far in future: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: barber_id=%d, error=%v",
				req.BarberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, barber_id=%d",
		result.ID, req.BarberID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
