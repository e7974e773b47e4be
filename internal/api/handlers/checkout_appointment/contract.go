package checkout_appointment

import (
	"context"

	"github.com/turnord/TurnORD-SchedulingService/internal/service/appointments/models"
)

type AppointmentsService interface {
	Checkout(ctx context.Context, id int64, req *models.CheckoutRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
