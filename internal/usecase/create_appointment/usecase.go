package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/turnord/TurnORD-SchedulingService/internal/availability"
	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	barberRepo "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/barber"
	configRepo "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/businessconfig"
	catalogRepo "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/catalog"
	"github.com/turnord/TurnORD-SchedulingService/internal/integrations/notifygateway"
	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

// UseCase создание записи клиента на слот мастера
type UseCase struct {
	apptRepo     AppointmentRepository
	barberRepo   BarberRepository
	serviceRepo  ServiceRepository
	configRepo   ConfigRepository
	reminders    ReminderScheduler
	gateway      NotifyGateway
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр usecase создания записи
func NewUseCase(
	apptRepo AppointmentRepository,
	barberRepo BarberRepository,
	serviceRepo ServiceRepository,
	configRepo ConfigRepository,
	reminders ReminderScheduler,
	gateway NotifyGateway,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		barberRepo:   barberRepo,
		serviceRepo:  serviceRepo,
		configRepo:   configRepo,
		reminders:    reminders,
		gateway:      gateway,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute создает запись клиента.
//
// Проверка слота и вставка выполняются в одной serializable транзакции:
// записи мастера на дату блокируются FOR UPDATE, поэтому два конкурентных
// запроса на последнее место не проходят оба.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("Execute: creating appointment for business=%d, barber=%d, date=%s %s",
		req.BusinessID, req.BarberID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Execute: invalid request: %v", err)
		return nil, err
	}

	// 2. Получаем мастера и проверяем его доступность
	barber, err := uc.barberRepo.GetByID(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("Execute: failed to get barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: Execute - failed to get barber: %v", ErrInternal, err)
	}
	if barber.BusinessID != req.BusinessID {
		return nil, ErrBarberNotFound
	}
	if err := availability.CheckBarber(barber); err != nil {
		uc.logger.Warn("Execute: barber=%d unavailable", req.BarberID)
		return nil, err
	}

	// 3. Получаем услугу: снимок цены и длительности денормализуется в запись
	svc, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("Execute: failed to get service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: Execute - failed to get service: %v", ErrInternal, err)
	}
	if svc.BusinessID != req.BusinessID || !svc.IsActive {
		return nil, ErrServiceNotFound
	}

	// 4. Получаем конфигурацию бизнеса (отсутствующая заменяется дефолтами)
	cfg, err := uc.configRepo.GetByBusinessID(ctx, req.BusinessID)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("Execute: failed to get config for business=%d: %v", req.BusinessID, err)
			return nil, fmt.Errorf("%w: Execute - failed to get business config: %v", ErrInternal, err)
		}
		cfg = nil
	}

	// 5. Проверяем дату против текущего момента и горизонта бронирования
	now := uc.timeProvider.Now()
	startMin, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	advanceDays := domain.DefaultAdvanceBookingDays
	if cfg != nil {
		advanceDays = cfg.AdvanceBookingDays
	}
	if err := validateDate(req.Date, startMin, now, advanceDays); err != nil {
		uc.logger.Warn("Execute: date rejected for business=%d: %v", req.BusinessID, err)
		return nil, err
	}

	// 6. Проверяем слот и создаем запись в serializable транзакции
	var created *domain.Appointment
	sched := availability.Resolve(barber, cfg)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := availability.ValidateStartTime(sched, req.Date, req.StartTime); err != nil {
			return err
		}

		// FOR UPDATE: записи мастера на дату блокируются до конца транзакции
		existing, err := uc.apptRepo.GetByBarberAndDate(txCtx, req.BarberID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: Execute - failed to get existing appointments: %v", ErrInternal, err)
		}

		taken := make([]types.TimeString, 0, len(existing))
		for _, a := range existing {
			if a.IsActive() {
				taken = append(taken, a.StartTime)
			}
		}

		occupied := availability.CountAtSlot(req.StartTime, taken)
		if err := availability.CheckCapacity(occupied, sched.MaxConcurrentPerSlot); err != nil {
			return err
		}

		status := domain.StatusScheduled
		if req.Quick {
			status = domain.StatusCreated
		}

		appt := &domain.Appointment{
			BusinessID:             req.BusinessID,
			BarberID:               req.BarberID,
			ServiceID:              req.ServiceID,
			ServiceName:            svc.Name,
			ServicePrice:           svc.Price,
			ServiceDurationMinutes: svc.DurationMinutes,
			ClientName:             req.ClientName,
			ClientPhone:            req.ClientPhone,
			ClientEmail:            req.ClientEmail,
			Date:                   truncateToDay(req.Date),
			StartTime:              req.StartTime,
			Status:                 status,
			Notes:                  req.Notes,
		}

		created, err = uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			return fmt.Errorf("%w: Execute - failed to create appointment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Warn("Execute: appointment not created for business=%d: %v", req.BusinessID, err)
		return nil, err
	}

	uc.logger.Info("Execute: appointment id=%d created for business=%d, barber=%d",
		created.ID, req.BusinessID, req.BarberID)

	// 7. Напоминания и уведомление после коммита: их сбой не откатывает запись
	if cfg == nil || cfg.RemindersEnabled {
		if err := uc.reminders.ScheduleFor(ctx, created); err != nil {
			uc.logger.Warn("Execute: failed to schedule reminders for appointment=%d: %v", created.ID, err)
		}
	}

	_ = uc.gateway.SendBestEffort(ctx, &notifygateway.Notification{
		Event:         "appointment_created",
		AppointmentID: created.ID,
		ClientName:    created.ClientName,
		ClientPhone:   created.ClientPhone,
		ClientEmail:   created.ClientEmail,
		BarberName:    barber.Name,
		ServiceName:   created.ServiceName,
		Date:          created.Date.Format(domain.DateFormat),
		StartTime:     created.StartTime.String(),
	})

	return buildResponse(created), nil
}

// buildResponse конвертирует созданную запись в ответ usecase
func buildResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:                     a.ID,
		BusinessID:             a.BusinessID,
		BarberID:               a.BarberID,
		ServiceID:              a.ServiceID,
		Date:                   a.Date,
		StartTime:              a.StartTime,
		Status:                 string(a.Status),
		ServiceName:            a.ServiceName,
		ServicePrice:           a.ServicePrice,
		ServiceDurationMinutes: a.ServiceDurationMinutes,
		ClientName:             a.ClientName,
		ClientPhone:            a.ClientPhone,
		ClientEmail:            a.ClientEmail,
		Notes:                  a.Notes,
		CreatedAt:              a.CreatedAt,
		UpdatedAt:              a.UpdatedAt,
	}
}
