package start_service

import (
	"context"

	"github.com/turnord/TurnORD-SchedulingService/internal/service/appointments/models"
)

type AppointmentsService interface {
	StartService(ctx context.Context, id int64, req *models.StartServiceRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
