package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/turnord/TurnORD-SchedulingService/internal/availability"
	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	apptRepo "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/appointment"
	barberRepo "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/barber"
	configRepo "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/businessconfig"
	"github.com/turnord/TurnORD-SchedulingService/internal/integrations/notifygateway"
	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

// UseCase перенос записи на другой слот
type UseCase struct {
	appointments AppointmentRepository
	barbers      BarberRepository
	configs      ConfigRepository
	reminders    ReminderScheduler
	gateway      NotifyGateway
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр usecase переноса записи
func NewUseCase(
	appointments AppointmentRepository,
	barbers BarberRepository,
	configs ConfigRepository,
	reminders ReminderScheduler,
	gateway NotifyGateway,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointments: appointments,
		barbers:      barbers,
		configs:      configs,
		reminders:    reminders,
		gateway:      gateway,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute переносит запись на новый слот, опционально к другому мастеру.
// Новый слот проверяется так же, как при создании, но собственное старое
// время записи не считается занятым местом.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("Execute: rescheduling appointment=%d to %s %s",
		req.AppointmentID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Execute: invalid request: %v", err)
		return nil, err
	}

	// 2. Получаем запись и проверяем, что ее можно переносить
	appt, err := uc.appointments.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("Execute: failed to get appointment=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: Execute - failed to get appointment: %v", ErrInternal, err)
	}
	if appt.BusinessID != req.BusinessID {
		return nil, ErrAppointmentNotFound
	}
	if !appt.CanBeRescheduled() {
		uc.logger.Warn("Execute: appointment=%d in status %s can not be rescheduled",
			appt.ID, appt.Status)
		return nil, ErrNotReschedulable
	}

	// 3. Получаем целевого мастера: нового из запроса или текущего мастера записи.
	// Неактивный мастер не принимает переносы, как и новые записи.
	targetBarberID := appt.BarberID
	if req.BarberID != nil {
		targetBarberID = *req.BarberID
	}
	barber, err := uc.barbers.GetByID(ctx, targetBarberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("Execute: failed to get barber=%d: %v", targetBarberID, err)
		return nil, fmt.Errorf("%w: Execute - failed to get barber: %v", ErrInternal, err)
	}
	if barber.BusinessID != req.BusinessID {
		return nil, ErrBarberNotFound
	}
	if err := availability.CheckBarber(barber); err != nil {
		uc.logger.Warn("Execute: barber=%d unavailable for reschedule", targetBarberID)
		return nil, err
	}

	// 4. Получаем конфигурацию бизнеса
	cfg, err := uc.configs.GetByBusinessID(ctx, req.BusinessID)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("Execute: failed to get config for business=%d: %v", req.BusinessID, err)
			return nil, fmt.Errorf("%w: Execute - failed to get business config: %v", ErrInternal, err)
		}
		cfg = nil
	}

	// 5. Проверяем новую дату
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
		uc.logger.Warn("Execute: new date rejected for appointment=%d: %v", req.AppointmentID, err)
		return nil, err
	}

	// 6. Проверяем новый слот и переносим запись в serializable транзакции
	sched := availability.Resolve(barber, cfg)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := availability.ValidateStartTime(sched, req.Date, req.StartTime); err != nil {
			return err
		}

		existing, err := uc.appointments.GetByBarberAndDate(txCtx, targetBarberID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: Execute - failed to get existing appointments: %v", ErrInternal, err)
		}

		// Собственное место записи не считается занятым
		taken := make([]types.TimeString, 0, len(existing))
		for _, a := range existing {
			if a.ID != appt.ID && a.IsActive() {
				taken = append(taken, a.StartTime)
			}
		}

		occupied := availability.CountAtSlot(req.StartTime, taken)
		if err := availability.CheckCapacity(occupied, sched.MaxConcurrentPerSlot); err != nil {
			return err
		}

		appt.BarberID = targetBarberID
		appt.Date = truncateToDay(req.Date)
		appt.StartTime = req.StartTime

		if err := uc.appointments.Reschedule(txCtx, appt); err != nil {
			return fmt.Errorf("%w: Execute - failed to reschedule appointment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Warn("Execute: appointment=%d not rescheduled: %v", req.AppointmentID, err)
		return nil, err
	}

	uc.logger.Info("Execute: appointment=%d rescheduled to %s %s",
		appt.ID, appt.Date.Format(domain.DateFormat), appt.StartTime)

	// 7. Пересоздаем напоминания под новое время
	if err := uc.reminders.CancelFor(ctx, appt.ID); err != nil {
		uc.logger.Warn("Execute: failed to cancel reminders for appointment=%d: %v", appt.ID, err)
	}
	if cfg == nil || cfg.RemindersEnabled {
		if err := uc.reminders.ScheduleFor(ctx, appt); err != nil {
			uc.logger.Warn("Execute: failed to schedule reminders for appointment=%d: %v", appt.ID, err)
		}
	}

	_ = uc.gateway.SendBestEffort(ctx, &notifygateway.Notification{
		Event:         "appointment_rescheduled",
		AppointmentID: appt.ID,
		ClientName:    appt.ClientName,
		ClientPhone:   appt.ClientPhone,
		ClientEmail:   appt.ClientEmail,
		BarberName:    barber.Name,
		ServiceName:   appt.ServiceName,
		Date:          appt.Date.Format(domain.DateFormat),
		StartTime:     appt.StartTime.String(),
	})

	return &Response{
		ID:         appt.ID,
		BusinessID: appt.BusinessID,
		BarberID:   appt.BarberID,
		Date:       appt.Date,
		StartTime:  appt.StartTime,
		Status:     string(appt.Status),
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointment id must be positive", ErrInvalidInput)
	}
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: business id must be positive", ErrInvalidInput)
	}
	if req.BarberID != nil && *req.BarberID <= 0 {
		return fmt.Errorf("%w: barber id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time must be in HH:MM format", ErrInvalidInput)
	}
	return nil
}

// validateDate проверяет, что новая дата не в прошлом и не дальше горизонта
func validateDate(date time.Time, start int, now time.Time, advanceDays int) error {
	today := truncateToDay(now)
	day := truncateToDay(date)

	if day.Before(today) {
		return ErrInvalidDate
	}
	if day.Equal(today) {
		nowMin := now.Hour()*60 + now.Minute()
		if start <= nowMin {
			return ErrInvalidDate
		}
	}

	if advanceDays > 0 {
		horizon := today.AddDate(0, 0, advanceDays)
		if day.After(horizon) {
			return ErrDateTooFarInFuture
		}
	}

	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
