package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/turnord/TurnORD-SchedulingService/internal/availability"
	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	"github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/appointment"
	"github.com/turnord/TurnORD-SchedulingService/internal/service/appointments/models"
)

// Service сервис для работы с записями: чтение и переходы статусов.
// Создание и перенос записей живут в отдельных usecase, так как
// требуют транзакционной проверки занятости слота.
type Service struct {
	apptRepo     AppointmentRepository
	reminders    ReminderScheduler
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	apptRepo AppointmentRepository,
	reminders ReminderScheduler,
	logger Logger,
) *Service {
	return &Service{
		apptRepo:     apptRepo,
		reminders:    reminders,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, err := s.getAppointment(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appt), nil
}

// GetBusinessAppointments получает записи бизнеса с гибкой фильтрацией:
// по мастеру, услуге, периоду и статусу
func (s *Service) GetBusinessAppointments(ctx context.Context, req *models.GetBusinessAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetBusinessAppointments: business=%d, barber=%v, service=%v, status=%v",
		req.BusinessID, req.BarberID, req.ServiceID, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBusinessAppointments: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	appointments, err := s.apptRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessAppointments: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessAppointments: fetched %d appointments for business=%d",
		len(appointments), req.BusinessID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись и снимает её напоминания
func (s *Service) Cancel(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d", id)

	appt, err := s.getAppointment(ctx, id, "Cancel")
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	if err := availability.Cancel(appt, now); err != nil {
		return nil, s.mapTransitionError("Cancel", id, err)
	}

	if err := s.apptRepo.Cancel(ctx, id, now); err != nil {
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Напоминания отмененной записи больше не нужны
	if err := s.reminders.CancelFor(ctx, id); err != nil {
		s.logger.Warn("Cancel: failed to drop reminders for appointment id=%d: %v", id, err)
	}

	s.logger.Info("Cancel: appointment id=%d cancelled", id)
	return models.FromDomainAppointment(appt), nil
}

// StartService берет клиента в работу: статус in_service с фактической длительностью
func (s *Service) StartService(ctx context.Context, id int64, req *models.StartServiceRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("StartService: appointment id=%d, duration=%d", id, req.DurationMinutes)

	appt, err := s.getAppointment(ctx, id, "StartService")
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	if err := availability.StartService(appt, req.DurationMinutes, now); err != nil {
		return nil, s.mapTransitionError("StartService", id, err)
	}

	if err := s.apptRepo.StartService(ctx, id, req.DurationMinutes, now); err != nil {
		s.logger.Error("StartService: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: StartService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("StartService: appointment id=%d is now in service", id)
	return models.FromDomainAppointment(appt), nil
}

// Checkout завершает обслуживание: статус attended, сумма и способ оплаты
func (s *Service) Checkout(ctx context.Context, id int64, req *models.CheckoutRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Checkout: appointment id=%d, amount=%.2f, method=%s", id, req.Amount, req.PaymentMethod)

	method, err := models.ToDomainPaymentMethod(req.PaymentMethod)
	if err != nil {
		s.logger.Warn("Checkout: invalid payment method %q for appointment id=%d", req.PaymentMethod, id)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	appt, err := s.getAppointment(ctx, id, "Checkout")
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	if err := availability.Checkout(appt, req.Amount, method, now); err != nil {
		return nil, s.mapTransitionError("Checkout", id, err)
	}

	if err := s.apptRepo.Checkout(ctx, id, req.Amount, method, now); err != nil {
		s.logger.Error("Checkout: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Checkout - repository error: %v", ErrInternal, err)
	}

	// Завершенная запись напоминаний не требует
	if err := s.reminders.CancelFor(ctx, id); err != nil {
		s.logger.Warn("Checkout: failed to drop reminders for appointment id=%d: %v", id, err)
	}

	s.logger.Info("Checkout: appointment id=%d attended, amount=%.2f", id, req.Amount)
	return models.FromDomainAppointment(appt), nil
}

func (s *Service) getAppointment(ctx context.Context, id int64, op string) (*domain.Appointment, error) {
	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

func (s *Service) mapTransitionError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, availability.ErrAlreadyFinalized):
		s.logger.Warn("%s: appointment id=%d is already finalized", op, id)
		return ErrAlreadyFinalized
	case errors.Is(err, availability.ErrInvalidTransition):
		s.logger.Warn("%s: invalid transition for appointment id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	case errors.Is(err, availability.ErrInvalidFormat):
		s.logger.Warn("%s: invalid input for appointment id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		s.logger.Error("%s: transition error for appointment id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - transition error: %v", ErrInternal, op, err)
	}
}
