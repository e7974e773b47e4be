package barbers

import (
	"context"
	"errors"
	"fmt"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	barberRepo "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/barber"
	"github.com/turnord/TurnORD-SchedulingService/internal/service/barbers/models"
)

// Service сервис управления мастерами
type Service struct {
	barberRepo BarberRepository
	apptRepo   AppointmentRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса мастеров
func NewService(
	barberRepo BarberRepository,
	apptRepo AppointmentRepository,
	logger Logger,
) *Service {
	return &Service{
		barberRepo: barberRepo,
		apptRepo:   apptRepo,
		logger:     logger,
	}
}

// Create создает нового мастера
func (s *Service) Create(ctx context.Context, req *models.CreateBarberRequest) (*models.BarberResponse, error) {
	s.logger.Info("Create: creating barber %q for business=%d", req.Name, req.BusinessID)

	workStart, err := parseTimeString(req.WorkStart, "work start")
	if err != nil {
		return nil, err
	}
	workEnd, err := parseTimeString(req.WorkEnd, "work end")
	if err != nil {
		return nil, err
	}
	breakStart, err := parseOptionalTimeString(req.BreakStart, "break start")
	if err != nil {
		return nil, err
	}
	breakEnd, err := parseOptionalTimeString(req.BreakEnd, "break end")
	if err != nil {
		return nil, err
	}

	barber := &domain.Barber{
		BusinessID:          req.BusinessID,
		Name:                req.Name,
		Phone:               req.Phone,
		PhotoURL:            req.PhotoURL,
		WorkStart:           workStart,
		WorkEnd:             workEnd,
		BreakStart:          breakStart,
		BreakEnd:            breakEnd,
		BreakPaddingMinutes: req.BreakPaddingMinutes,
		WorkDays:            req.WorkDays,
		IsActive:            true,
	}

	if err := validateSchedule(barber); err != nil {
		s.logger.Warn("Create: validation failed for barber %q: %v", req.Name, err)
		return nil, err
	}

	created, err := s.barberRepo.Create(ctx, barber)
	if err != nil {
		s.logger.Error("Create: repository error for barber %q: %v", req.Name, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: barber id=%d created for business=%d", created.ID, req.BusinessID)
	return models.FromDomainBarber(created), nil
}

// GetByID получает мастера по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BarberResponse, error) {
	s.logger.Info("GetByID: fetching barber id=%d", id)

	barber, err := s.getBarber(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainBarber(barber), nil
}

// List получает мастеров бизнеса
func (s *Service) List(ctx context.Context, businessID int64, includeInactive bool) (*models.BarberListResponse, error) {
	s.logger.Info("List: fetching barbers for business=%d, includeInactive=%t", businessID, includeInactive)

	barbers, err := s.barberRepo.ListByBusiness(ctx, businessID, includeInactive)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBarberList(barbers), nil
}

// Update частично обновляет профиль и расписание мастера
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBarberRequest) (*models.BarberResponse, error) {
	s.logger.Info("Update: updating barber id=%d", id)

	barber, err := s.getBarber(ctx, id, "Update")
	if err != nil {
		return nil, err
	}

	if err := applyUpdate(barber, req); err != nil {
		s.logger.Warn("Update: validation failed for barber id=%d: %v", id, err)
		return nil, err
	}

	if err := validateSchedule(barber); err != nil {
		s.logger.Warn("Update: validation failed for barber id=%d: %v", id, err)
		return nil, err
	}

	if err := s.barberRepo.Update(ctx, barber); err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			return nil, ErrBarberNotFound
		}
		s.logger.Error("Update: repository error for barber id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: barber id=%d updated", id)
	return models.FromDomainBarber(barber), nil
}

// Delete удаляет мастера. Отказывает, пока на мастера есть незавершенные записи.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting barber id=%d", id)

	if _, err := s.getBarber(ctx, id, "Delete"); err != nil {
		return err
	}

	active, err := s.apptRepo.CountActiveByBarber(ctx, id)
	if err != nil {
		s.logger.Error("Delete: failed to count active appointments for barber id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - count active appointments: %v", ErrInternal, err)
	}
	if active > 0 {
		s.logger.Warn("Delete: barber id=%d has %d active appointments", id, active)
		return fmt.Errorf("%w: %d active appointments", ErrBarberInUse, active)
	}

	if err := s.barberRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			return ErrBarberNotFound
		}
		s.logger.Error("Delete: repository error for barber id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: barber id=%d deleted", id)
	return nil
}

func (s *Service) getBarber(ctx context.Context, id int64, op string) (*domain.Barber, error) {
	barber, err := s.barberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("%s: barber id=%d not found", op, id)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("%s: repository error for barber id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return barber, nil
}

// applyUpdate накладывает частичное обновление на domain модель
func applyUpdate(barber *domain.Barber, req *models.UpdateBarberRequest) error {
	if req.Name != nil {
		barber.Name = *req.Name
	}
	if req.Phone != nil {
		barber.Phone = req.Phone
	}
	if req.PhotoURL != nil {
		barber.PhotoURL = req.PhotoURL
	}

	if req.WorkStart != nil {
		ts, err := parseTimeString(*req.WorkStart, "work start")
		if err != nil {
			return err
		}
		barber.WorkStart = ts
	}
	if req.WorkEnd != nil {
		ts, err := parseTimeString(*req.WorkEnd, "work end")
		if err != nil {
			return err
		}
		barber.WorkEnd = ts
	}

	// Пустая строка снимает перерыв
	if req.BreakStart != nil {
		ts, err := parseOptionalTimeString(req.BreakStart, "break start")
		if err != nil {
			return err
		}
		barber.BreakStart = ts
	}
	if req.BreakEnd != nil {
		ts, err := parseOptionalTimeString(req.BreakEnd, "break end")
		if err != nil {
			return err
		}
		barber.BreakEnd = ts
	}

	if req.BreakPaddingMinutes != nil {
		barber.BreakPaddingMinutes = *req.BreakPaddingMinutes
	}
	if req.WorkDays != nil {
		barber.WorkDays = *req.WorkDays
	}
	if req.IsActive != nil {
		barber.IsActive = *req.IsActive
	}

	return nil
}
