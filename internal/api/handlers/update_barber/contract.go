package update_barber

import (
	"context"

	"github.com/turnord/TurnORD-SchedulingService/internal/service/barbers/models"
)

type BarbersService interface {
	Update(ctx context.Context, id int64, req *models.UpdateBarberRequest) (*models.BarberResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
