package barbers

import (
	"context"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
)

// BarberRepository интерфейс репозитория мастеров
type BarberRepository interface {
	Create(ctx context.Context, barber *domain.Barber) (*domain.Barber, error)
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
	ListByBusiness(ctx context.Context, businessID int64, includeInactive bool) ([]*domain.Barber, error)
	Update(ctx context.Context, barber *domain.Barber) error
	Delete(ctx context.Context, id int64) error
}

// AppointmentRepository интерфейс репозитория записей
// Нужен для запрета удаления мастера с живыми записями
type AppointmentRepository interface {
	CountActiveByBarber(ctx context.Context, barberID int64) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
