package create_appointment

import (
	"time"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	createAppointment "github.com/turnord/TurnORD-SchedulingService/internal/usecase/create_appointment"
	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	BusinessID  int64   `json:"businessId"`
	BarberID    int64   `json:"barberId"`
	ServiceID   int64   `json:"serviceId"`
	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone"`
	ClientEmail *string `json:"clientEmail,omitempty"`
	Date        string  `json:"date"`      // "2026-09-07"
	StartTime   string  `json:"startTime"` // "10:00"
	Notes       *string `json:"notes,omitempty"`
	Quick       bool    `json:"quick,omitempty"` // Быстрая запись от стойки (статус created)
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	BusinessID int64  `json:"businessId"`
	BarberID   int64  `json:"barberId"`
	ServiceID  int64  `json:"serviceId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	Status     string `json:"status"`

	ServiceName            string  `json:"serviceName"`
	ServicePrice           float64 `json:"servicePrice"`
	ServiceDurationMinutes int     `json:"serviceDurationMinutes"`

	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone"`
	ClientEmail *string `json:"clientEmail,omitempty"`
	Notes       *string `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		BusinessID:  r.BusinessID,
		BarberID:    r.BarberID,
		ServiceID:   r.ServiceID,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		ClientEmail: r.ClientEmail,
		Date:        date,
		StartTime:   startTime,
		Notes:       r.Notes,
		Quick:       r.Quick,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                     resp.ID,
		BusinessID:             resp.BusinessID,
		BarberID:               resp.BarberID,
		ServiceID:              resp.ServiceID,
		Date:                   resp.Date.Format(domain.DateFormat),
		StartTime:              resp.StartTime.String(),
		Status:                 resp.Status,
		ServiceName:            resp.ServiceName,
		ServicePrice:           resp.ServicePrice,
		ServiceDurationMinutes: resp.ServiceDurationMinutes,
		ClientName:             resp.ClientName,
		ClientPhone:            resp.ClientPhone,
		ClientEmail:            resp.ClientEmail,
		Notes:                  resp.Notes,
		CreatedAt:              resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              resp.UpdatedAt.Format(time.RFC3339),
	}
}
