package get_business_stats

import (
	"errors"
	"net/http"
	"time"

	"github.com/turnord/TurnORD-SchedulingService/internal/api/handlers"
	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	businessService "github.com/turnord/TurnORD-SchedulingService/internal/service/business"
	"github.com/turnord/TurnORD-SchedulingService/internal/service/business/models"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidPeriod     = "некорректный период, ожидается from и to в формате YYYY-MM-DD"
)

type Handler struct {
	service BusinessService
	logger  Logger
}

func NewHandler(service BusinessService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/stats?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/stats - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	q := r.URL.Query()
	from, err := time.Parse(domain.DateFormat, q.Get("from"))
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/stats - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	to, err := time.Parse(domain.DateFormat, q.Get("to"))
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/stats - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.GetStats(r.Context(), &models.GetStatsRequest{
		BusinessID: businessID,
		From:       from,
		To:         to,
	})
	if err != nil {
		switch {
		case errors.Is(err, businessService.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/stats - Invalid period: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)
		default:
			h.logger.Error("GET /businesses/{id}/stats - Failed to get stats: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
