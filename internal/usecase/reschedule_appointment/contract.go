package reschedule_appointment

import (
	"context"
	"time"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	"github.com/turnord/TurnORD-SchedulingService/internal/integrations/notifygateway"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	// GetByBarberAndDate в транзакции блокирует записи мастера на дату (FOR UPDATE)
	GetByBarberAndDate(ctx context.Context, barberID int64, date time.Time) ([]*domain.Appointment, error)
	Reschedule(ctx context.Context, appt *domain.Appointment) error
}

// BarberRepository интерфейс репозитория мастеров
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
}

// ConfigRepository интерфейс репозитория конфигурации бизнеса
type ConfigRepository interface {
	GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessConfig, error)
}

// ReminderScheduler интерфейс планировщика напоминаний
type ReminderScheduler interface {
	ScheduleFor(ctx context.Context, appt *domain.Appointment) error
	CancelFor(ctx context.Context, appointmentID int64) error
}

// NotifyGateway интерфейс шлюза уведомлений
type NotifyGateway interface {
	SendBestEffort(ctx context.Context, n *notifygateway.Notification) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
