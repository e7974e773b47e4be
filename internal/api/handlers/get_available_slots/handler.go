package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/turnord/TurnORD-SchedulingService/internal/api/handlers"
	getAvailableSlots "github.com/turnord/TurnORD-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidBarberID   = "некорректный ID мастера"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateRequired      = "параметр date обязателен"
	msgBarberNotFound    = "мастер не найден"
	msgDateTooFar        = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/barbers/{barberId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET available-slots - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	barberID, err := handlers.PathInt64(r, "barberId")
	if err != nil {
		h.logger.Warn("GET available-slots - Invalid barber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBarberID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET available-slots - Missing date parameter: business_id=%d, barber_id=%d", businessID, barberID)
		handlers.RespondBadRequest(w, msgDateRequired)
		return
	}

	useCaseReq, err := ToUseCaseRequest(businessID, barberID, dateStr)
	if err != nil {
		h.logger.Warn("GET available-slots - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrBarberNotFound):
			h.logger.Warn("GET available-slots - Barber not found: barber_id=%d", barberID)
			handlers.RespondNotFound(w, msgBarberNotFound)
		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET available-slots - Date too far: barber_id=%d, date=%s", barberID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GET available-slots - Failed to get slots: barber_id=%d, date=%s, error=%v",
				barberID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET available-slots - %d slots: business_id=%d, barber_id=%d, date=%s",
		len(result.Slots), businessID, barberID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
