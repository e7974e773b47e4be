package list_barbers

import (
	"context"

	"github.com/turnord/TurnORD-SchedulingService/internal/service/barbers/models"
)

type BarbersService interface {
	List(ctx context.Context, businessID int64, includeInactive bool) (*models.BarberListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
