package catalog

import (
	"context"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	ListByBusiness(ctx context.Context, businessID int64, includeInactive bool) ([]*domain.Service, error)
	Update(ctx context.Context, service *domain.Service) error
	Delete(ctx context.Context, id int64) error
}

// AppointmentRepository интерфейс репозитория записей
// Нужен для запрета удаления услуги с живыми записями
type AppointmentRepository interface {
	CountActiveByService(ctx context.Context, serviceID int64) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
