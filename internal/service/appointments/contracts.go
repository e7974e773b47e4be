package appointments

import (
	"context"
	"time"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	StartService(ctx context.Context, id int64, durationMinutes int, since time.Time) error
	Checkout(ctx context.Context, id int64, amount float64, method domain.PaymentMethod, at time.Time) error
	Cancel(ctx context.Context, id int64, at time.Time) error
}

// ReminderScheduler интерфейс планировщика напоминаний
type ReminderScheduler interface {
	CancelFor(ctx context.Context, appointmentID int64) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
