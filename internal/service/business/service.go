package business

import (
	"context"
	"errors"
	"fmt"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	configRepo "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/businessconfig"
	"github.com/turnord/TurnORD-SchedulingService/internal/service/business/models"
	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

// Service сервис конфигурации и статистики бизнеса
type Service struct {
	configRepo ConfigRepository
	statsRepo  StatsRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса бизнеса
func NewService(
	configRepo ConfigRepository,
	statsRepo StatsRepository,
	logger Logger,
) *Service {
	return &Service{
		configRepo: configRepo,
		statsRepo:  statsRepo,
		logger:     logger,
	}
}

// GetConfig получает конфигурацию бизнеса
func (s *Service) GetConfig(ctx context.Context, businessID int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetConfig: fetching config for business=%d", businessID)

	cfg, err := s.configRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("GetConfig: config for business=%d not found", businessID)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("GetConfig: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetConfig - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(cfg), nil
}

// UpdateConfig обновляет конфигурацию бизнеса (upsert с дефолтами)
func (s *Service) UpdateConfig(ctx context.Context, businessID int64, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("UpdateConfig: updating config for business=%d", businessID)

	cfg, err := s.configRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Error("UpdateConfig: repository error for business=%d: %v", businessID, err)
			return nil, fmt.Errorf("%w: UpdateConfig - repository error: %v", ErrInternal, err)
		}
		// Первое обновление создает конфигурацию с дефолтами
		cfg = defaultConfig(businessID)
	}

	if err := applyConfigUpdate(cfg, req); err != nil {
		s.logger.Warn("UpdateConfig: validation failed for business=%d: %v", businessID, err)
		return nil, err
	}

	updated, err := s.configRepo.Upsert(ctx, cfg)
	if err != nil {
		s.logger.Error("UpdateConfig: upsert error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: UpdateConfig - upsert error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateConfig: config id=%d updated for business=%d", updated.ID, businessID)
	return models.FromDomainConfig(updated), nil
}

// GetStats считает статистику записей бизнеса за период
func (s *Service) GetStats(ctx context.Context, req *models.GetStatsRequest) (*models.StatsResponse, error) {
	s.logger.Info("GetStats: business=%d, period=%s to %s",
		req.BusinessID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if req.To.Before(req.From) {
		s.logger.Warn("GetStats: invalid period for business=%d", req.BusinessID)
		return nil, fmt.Errorf("%w: period end before period start", ErrInvalidInput)
	}

	row, err := s.statsRepo.GetStats(ctx, req.BusinessID, req.From, req.To)
	if err != nil {
		s.logger.Error("GetStats: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetStats - repository error: %v", ErrInternal, err)
	}

	return &models.StatsResponse{
		BusinessID: req.BusinessID,
		From:       req.From.Format(domain.DateFormat),
		To:         req.To.Format(domain.DateFormat),
		Total:      row.Total,
		Attended:   row.Attended,
		Cancelled:  row.Cancelled,
		InService:  row.InService,
		Upcoming:   row.Upcoming,
		Revenue:    row.Revenue,
	}, nil
}

// defaultConfig конфигурация нового бизнеса до первой настройки
func defaultConfig(businessID int64) *domain.BusinessConfig {
	return &domain.BusinessConfig{
		BusinessID:           businessID,
		DefaultWorkStart:     "09:00",
		DefaultWorkEnd:       "19:00",
		DefaultWorkDays:      []int{1, 2, 3, 4, 5, 6},
		SlotDurationMinutes:  domain.DefaultSlotDurationMinutes,
		MaxConcurrentPerSlot: domain.DefaultMaxConcurrentPerSlot,
		AdvanceBookingDays:   domain.DefaultAdvanceBookingDays,
		RemindersEnabled:     true,
	}
}

// applyConfigUpdate накладывает частичное обновление с валидацией
func applyConfigUpdate(cfg *domain.BusinessConfig, req *models.UpdateConfigRequest) error {
	if req.BusinessName != nil {
		cfg.BusinessName = *req.BusinessName
	}
	if req.ContactPhone != nil {
		cfg.ContactPhone = req.ContactPhone
	}
	if req.Address != nil {
		cfg.Address = req.Address
	}

	if req.DefaultWorkStart != nil {
		ts, err := types.NewTimeStringFromString(*req.DefaultWorkStart)
		if err != nil {
			return fmt.Errorf("%w: default work start: %v", ErrInvalidInput, err)
		}
		cfg.DefaultWorkStart = ts
	}
	if req.DefaultWorkEnd != nil {
		ts, err := types.NewTimeStringFromString(*req.DefaultWorkEnd)
		if err != nil {
			return fmt.Errorf("%w: default work end: %v", ErrInvalidInput, err)
		}
		cfg.DefaultWorkEnd = ts
	}
	if !cfg.DefaultWorkStart.IsBefore(cfg.DefaultWorkEnd) {
		return fmt.Errorf("%w: work start must be before work end", ErrInvalidInput)
	}

	if req.DefaultWorkDays != nil {
		if len(*req.DefaultWorkDays) == 0 {
			return fmt.Errorf("%w: at least one work day is required", ErrInvalidInput)
		}
		for _, d := range *req.DefaultWorkDays {
			if d < 1 || d > 7 {
				return fmt.Errorf("%w: work day must be 1-7 (ISO weekday), got %d", ErrInvalidInput, d)
			}
		}
		cfg.DefaultWorkDays = *req.DefaultWorkDays
	}

	if req.SlotDurationMinutes != nil {
		if *req.SlotDurationMinutes < domain.MinServiceDurationMinutes || *req.SlotDurationMinutes > domain.MaxServiceDurationMinutes {
			return fmt.Errorf("%w: slot duration must be %d-%d minutes",
				ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
		}
		cfg.SlotDurationMinutes = *req.SlotDurationMinutes
	}

	if req.MaxConcurrentPerSlot != nil {
		if *req.MaxConcurrentPerSlot < 1 {
			return fmt.Errorf("%w: max concurrent per slot must be at least 1", ErrInvalidInput)
		}
		cfg.MaxConcurrentPerSlot = *req.MaxConcurrentPerSlot
	}

	if req.AdvanceBookingDays != nil {
		if *req.AdvanceBookingDays < 0 {
			return fmt.Errorf("%w: advance booking days must not be negative", ErrInvalidInput)
		}
		cfg.AdvanceBookingDays = *req.AdvanceBookingDays
	}

	if req.RemindersEnabled != nil {
		cfg.RemindersEnabled = *req.RemindersEnabled
	}

	return nil
}
