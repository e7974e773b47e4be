package reschedule_appointment

import (
	"time"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	rescheduleAppointment "github.com/turnord/TurnORD-SchedulingService/internal/usecase/reschedule_appointment"
	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	BusinessID int64  `json:"businessId"`
	BarberID   *int64 `json:"barberId,omitempty"` // Новый мастер (опционально)
	Date       string `json:"date"`               // "2026-09-07"
	StartTime  string `json:"startTime"`          // "10:00"
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID         int64  `json:"id"`
	BusinessID int64  `json:"businessId"`
	BarberID   int64  `json:"barberId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	Status     string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(appointmentID int64) (*rescheduleAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		BusinessID:    r.BusinessID,
		BarberID:      r.BarberID,
		Date:          date,
		StartTime:     startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *RescheduleResponse {
	return &RescheduleResponse{
		ID:         resp.ID,
		BusinessID: resp.BusinessID,
		BarberID:   resp.BarberID,
		Date:       resp.Date.Format(domain.DateFormat),
		StartTime:  resp.StartTime.String(),
		Status:     resp.Status,
	}
}
