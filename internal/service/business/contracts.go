package business

import (
	"context"
	"time"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	"github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/appointment"
)

// ConfigRepository интерфейс репозитория конфигурации бизнеса
type ConfigRepository interface {
	GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessConfig, error)
	Upsert(ctx context.Context, cfg *domain.BusinessConfig) (*domain.BusinessConfig, error)
}

// StatsRepository интерфейс источника агрегатов по записям
type StatsRepository interface {
	GetStats(ctx context.Context, businessID int64, from, to time.Time) (*appointment.StatsRow, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
