package reminders

import (
	"context"
	"time"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	"github.com/turnord/TurnORD-SchedulingService/internal/integrations/notifygateway"
)

// ReminderRepository интерфейс репозитория очереди напоминаний
type ReminderRepository interface {
	Create(ctx context.Context, rem *domain.Reminder) (*domain.Reminder, error)
	GetDue(ctx context.Context, now time.Time, limit int) ([]*domain.Reminder, error)
	MarkSent(ctx context.Context, id int64, at time.Time) error
	DeleteByAppointment(ctx context.Context, appointmentID int64) error
	DeleteStale(ctx context.Context, now time.Time, maxAge time.Duration) (int64, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
}

// BarberRepository интерфейс репозитория мастеров
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
}

// NotifyGateway интерфейс шлюза уведомлений
type NotifyGateway interface {
	SendBestEffort(ctx context.Context, n *notifygateway.Notification) error
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
