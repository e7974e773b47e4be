package list_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/turnord/TurnORD-SchedulingService/internal/api/handlers"
	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	appointmentsService "github.com/turnord/TurnORD-SchedulingService/internal/service/appointments"
	"github.com/turnord/TurnORD-SchedulingService/internal/service/appointments/models"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidFilter     = "некорректные параметры фильтра"
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

// Handle GET /api/v1/businesses/{businessId}/appointments
// Query: barberId, serviceId, startDate, endDate, status, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.PathInt64(r, "businessId")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/appointments - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	req, err := parseFilter(r, businessID)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/appointments - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetBusinessAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/appointments - Invalid input: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
		default:
			h.logger.Error("GET /businesses/{id}/appointments - Failed to list: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseFilter(r *http.Request, businessID int64) (*models.GetBusinessAppointmentsRequest, error) {
	q := r.URL.Query()
	req := &models.GetBusinessAppointmentsRequest{BusinessID: businessID}

	if raw := q.Get("barberId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, errors.New("barberId must be a positive integer")
		}
		req.BarberID = &id
	}

	if raw := q.Get("serviceId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, errors.New("serviceId must be a positive integer")
		}
		req.ServiceID = &id
	}

	if raw := q.Get("startDate"); raw != "" {
		d, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &d
	}

	if raw := q.Get("endDate"); raw != "" {
		d, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &d
	}

	if raw := q.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := q.Get("includeInactive"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = v
	}

	return req, nil
}
