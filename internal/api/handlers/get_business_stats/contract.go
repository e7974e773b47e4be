package get_business_stats

import (
	"context"

	"github.com/turnord/TurnORD-SchedulingService/internal/service/business/models"
)

type BusinessService interface {
	GetStats(ctx context.Context, req *models.GetStatsRequest) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
