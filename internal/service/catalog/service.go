package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	catalogRepo "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/catalog"
	"github.com/turnord/TurnORD-SchedulingService/internal/service/catalog/models"
)

// Service сервис каталога услуг
type Service struct {
	serviceRepo ServiceRepository
	apptRepo    AppointmentRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	serviceRepo ServiceRepository,
	apptRepo AppointmentRepository,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		apptRepo:    apptRepo,
		logger:      logger,
	}
}

// Create создает новую услугу
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service %q for business=%d", req.Name, req.BusinessID)

	service := &domain.Service{
		BusinessID:      req.BusinessID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}

	if err := validateService(service); err != nil {
		s.logger.Warn("Create: validation failed for service %q: %v", req.Name, err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, service)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrDuplicateName) {
			s.logger.Warn("Create: service name %q already exists for business=%d", req.Name, req.BusinessID)
			return nil, ErrDuplicateName
		}
		s.logger.Error("Create: repository error for service %q: %v", req.Name, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: service id=%d created for business=%d", created.ID, req.BusinessID)
	return models.FromDomainService(created), nil
}

// GetByID получает услугу по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetByID: fetching service id=%d", id)

	service, err := s.getService(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainService(service), nil
}

// List получает услуги бизнеса
func (s *Service) List(ctx context.Context, businessID int64, includeInactive bool) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching services for business=%d, includeInactive=%t", businessID, includeInactive)

	services, err := s.serviceRepo.ListByBusiness(ctx, businessID, includeInactive)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// Update частично обновляет услугу
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d", id)

	service, err := s.getService(ctx, id, "Update")
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = req.Description
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := validateService(service); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", id, err)
		return nil, err
	}

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		switch {
		case errors.Is(err, catalogRepo.ErrServiceNotFound):
			return nil, ErrServiceNotFound
		case errors.Is(err, catalogRepo.ErrDuplicateName):
			s.logger.Warn("Update: service name %q already exists", service.Name)
			return nil, ErrDuplicateName
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: service id=%d updated", id)
	return models.FromDomainService(service), nil
}

// Delete удаляет услугу. Отказывает, пока на услугу есть незавершенные записи.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting service id=%d", id)

	if _, err := s.getService(ctx, id, "Delete"); err != nil {
		return err
	}

	active, err := s.apptRepo.CountActiveByService(ctx, id)
	if err != nil {
		s.logger.Error("Delete: failed to count active appointments for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - count active appointments: %v", ErrInternal, err)
	}
	if active > 0 {
		s.logger.Warn("Delete: service id=%d has %d active appointments", id, active)
		return fmt.Errorf("%w: %d active appointments", ErrServiceInUse, active)
	}

	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: service id=%d deleted", id)
	return nil
}

func (s *Service) getService(ctx context.Context, id int64, op string) (*domain.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%d not found", op, id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("%s: repository error for service id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return service, nil
}

// validateService проверяет поля услуги
func validateService(service *domain.Service) error {
	if service.Name == "" || len(service.Name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: service name must be 1-%d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}
	if service.Price < domain.MinServicePrice || service.Price > domain.MaxServicePrice {
		return fmt.Errorf("%w: price must be %.2f-%d", ErrInvalidInput, domain.MinServicePrice, domain.MaxServicePrice)
	}
	if service.DurationMinutes < domain.MinServiceDurationMinutes || service.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be %d-%d minutes",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	return nil
}
