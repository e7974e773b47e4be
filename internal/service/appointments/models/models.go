package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidPaymentMethod возвращается при некорректном способе оплаты
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// Request модели

// GetBusinessAppointmentsRequest запрос на получение записей бизнеса
type GetBusinessAppointmentsRequest struct {
	BusinessID      int64      `json:"businessId"`
	BarberID        *int64     `json:"barberId,omitempty"`        // Фильтр по мастеру (опционально)
	ServiceID       *int64     `json:"serviceId,omitempty"`       // Фильтр по услуге (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отмененные записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBusinessAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		BusinessID:      r.BusinessID,
		BarberID:        r.BarberID,
		ServiceID:       r.ServiceID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// StartServiceRequest запрос на взятие клиента в работу
type StartServiceRequest struct {
	DurationMinutes int `json:"durationMinutes"`
}

// CheckoutRequest запрос на завершение обслуживания
type CheckoutRequest struct {
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID         int64 `json:"id"`
	BusinessID int64 `json:"businessId"`
	BarberID   int64 `json:"barberId"`
	ServiceID  int64 `json:"serviceId"`

	ServiceName            string  `json:"serviceName"`
	ServicePrice           float64 `json:"servicePrice"`
	ServiceDurationMinutes int     `json:"serviceDurationMinutes"`

	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone"`
	ClientEmail *string `json:"clientEmail,omitempty"`

	Date      string `json:"date"`      // "2026-09-07"
	StartTime string `json:"startTime"` // "10:00"
	Status    string `json:"status"`

	InServiceSince *string `json:"inServiceSince,omitempty"` // ISO 8601
	AttendedAt     *string `json:"attendedAt,omitempty"`
	CancelledAt    *string `json:"cancelledAt,omitempty"`

	Amount        *float64 `json:"amount,omitempty"`
	PaymentMethod *string  `json:"paymentMethod,omitempty"`

	Notes *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// FromDomainAppointment конвертирует domain модель в response
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:                     appt.ID,
		BusinessID:             appt.BusinessID,
		BarberID:               appt.BarberID,
		ServiceID:              appt.ServiceID,
		ServiceName:            appt.ServiceName,
		ServicePrice:           appt.ServicePrice,
		ServiceDurationMinutes: appt.ServiceDurationMinutes,
		ClientName:             appt.ClientName,
		ClientPhone:            appt.ClientPhone,
		ClientEmail:            appt.ClientEmail,
		Date:                   appt.Date.Format(domain.DateFormat),
		StartTime:              appt.StartTime.String(),
		Status:                 string(appt.Status),
		Amount:                 appt.Amount,
		Notes:                  appt.Notes,
		CreatedAt:              appt.CreatedAt,
		UpdatedAt:              appt.UpdatedAt,
	}

	resp.InServiceSince = formatTimePtr(appt.InServiceSince)
	resp.AttendedAt = formatTimePtr(appt.AttendedAt)
	resp.CancelledAt = formatTimePtr(appt.CancelledAt)

	if appt.PaymentMethod != nil {
		method := string(*appt.PaymentMethod)
		resp.PaymentMethod = &method
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в response
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	result := make([]AppointmentResponse, len(appointments))
	for i, appt := range appointments {
		result[i] = *FromDomainAppointment(appt)
	}
	return &AppointmentListResponse{
		Appointments: result,
		Total:        len(result),
	}
}

// ToDomainStatus конвертирует строку в domain статус с валидацией
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	for _, valid := range domain.ValidStatuses {
		if domain.AppointmentStatus(s) == valid {
			return valid, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// ToDomainPaymentMethod конвертирует строку в способ оплаты с валидацией
func ToDomainPaymentMethod(s string) (domain.PaymentMethod, error) {
	for _, valid := range domain.ValidPaymentMethods {
		if domain.PaymentMethod(s) == valid {
			return valid, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, s)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
