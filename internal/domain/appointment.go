package domain

import (
	"time"

	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusCreated   AppointmentStatus = "created"
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusInService AppointmentStatus = "in_service"
	StatusAttended  AppointmentStatus = "attended"
	StatusCancelled AppointmentStatus = "cancelled"
)

// PaymentMethod represents how an attended appointment was paid
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

// Appointment represents a client appointment with a barber
type Appointment struct {
	ID         int64
	BusinessID int64
	BarberID   int64
	ServiceID  int64

	// Denormalized data for history (снимок на момент записи)
	ServiceName            string
	ServicePrice           float64
	ServiceDurationMinutes int

	ClientName  string
	ClientPhone string
	ClientEmail *string

	Date      time.Time
	StartTime types.TimeString
	Status    AppointmentStatus

	// Заполняются по мере прохождения статусов
	InServiceSince *time.Time
	AttendedAt     *time.Time
	CancelledAt    *time.Time

	// Фактическая сумма и способ оплаты фиксируются при завершении
	Amount        *float64
	PaymentMethod *PaymentMethod

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsFinalized returns true if the appointment reached a terminal state
func (a *Appointment) IsFinalized() bool {
	return a.Status == StatusAttended || a.Status == StatusCancelled
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return !a.IsFinalized()
}

// CanBeRescheduled returns true if the appointment can be moved to another slot
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusCreated || a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// CanStartService returns true if the client can be taken into service
func (a *Appointment) CanStartService() bool {
	return a.Status == StatusCreated || a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// CanBeCheckedOut returns true if the appointment can be closed as attended
func (a *Appointment) CanBeCheckedOut() bool {
	return a.Status == StatusInService
}

// AppointmentsFilter фильтр для выборки записей бизнеса
type AppointmentsFilter struct {
	BusinessID      int64              // Обязательный параметр
	BarberID        *int64             // Фильтр по мастеру (опционально)
	ServiceID       *int64             // Фильтр по услуге (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отмененные записи
}
