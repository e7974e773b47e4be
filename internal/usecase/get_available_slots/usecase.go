package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/turnord/TurnORD-SchedulingService/internal/availability"
	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	barberRepo "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/barber"
	configRepo "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/businessconfig"
	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

// UseCase получение свободных слотов мастера на дату
type UseCase struct {
	apptRepo     AppointmentRepository
	barberRepo   BarberRepository
	configRepo   ConfigRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр usecase
func NewUseCase(
	apptRepo AppointmentRepository,
	barberRepo BarberRepository,
	configRepo ConfigRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		barberRepo:   barberRepo,
		configRepo:   configRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет usecase получения доступных слотов.
// Прошедшая дата, выходной день мастера и неактивный мастер дают
// пустой список слотов, а не ошибку.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, barber=%d, date=%s",
		req.BusinessID, req.BarberID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем мастера
	barber, err := uc.barberRepo.GetByID(ctx, req.BarberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			uc.logger.Warn("GetAvailableSlots: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}
	if barber.BusinessID != req.BusinessID {
		return nil, ErrBarberNotFound
	}

	// 3. Получаем конфигурацию бизнеса (отсутствующая заменяется дефолтами в Resolve)
	cfg, err := uc.configRepo.GetByBusinessID(ctx, req.BusinessID)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
			return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}
		cfg = nil
	}

	// 4. Проверяем дату
	now := uc.timeProvider.Now()
	advanceDays := domain.DefaultAdvanceBookingDays
	if cfg != nil {
		advanceDays = cfg.AdvanceBookingDays
	}
	if isBeyondHorizon(req.Date, now, advanceDays) {
		uc.logger.Warn("GetAvailableSlots: date %s beyond booking horizon of %d days",
			req.Date.Format(domain.DateFormat), advanceDays)
		return nil, ErrDateTooFarInFuture
	}

	sched := availability.Resolve(barber, cfg)

	// 5. Неактивный мастер, прошедшая дата и выходной день дают пустой ответ
	if !barber.IsActive || isDateInPast(req.Date, now) || !sched.WorksOn(domain.ISOWeekday(req.Date)) {
		uc.logger.Info("GetAvailableSlots: no slots for barber=%d on %s",
			req.BarberID, req.Date.Format(domain.DateFormat))
		return emptyResponse(req), nil
	}

	// 6. Генерируем слоты рабочего дня и убираем окно перерыва
	slots, err := availability.GenerateSlots(sched.WorkStart, sched.WorkEnd, sched.SlotDurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	slots = availability.UsableSlots(slots, sched)

	// 7. На сегодня прошедшие слоты не предлагаются
	if truncateToDay(req.Date).Equal(truncateToDay(now)) {
		nowMin := now.Hour()*60 + now.Minute()
		upcoming := make([]types.TimeString, 0, len(slots))
		for _, s := range slots {
			if m, err := s.Minutes(); err == nil && m > nowMin {
				upcoming = append(upcoming, s)
			}
		}
		slots = upcoming
	}

	// 8. Считаем занятость по активным записям мастера на дату
	existing, err := uc.apptRepo.GetByBarberAndDate(ctx, req.BarberID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	taken := make([]types.TimeString, 0, len(existing))
	for _, a := range existing {
		if a.IsActive() {
			taken = append(taken, a.StartTime)
		}
	}

	result := make([]Slot, 0, len(slots))
	for _, s := range slots {
		occupied := availability.CountAtSlot(s, taken)
		available := sched.MaxConcurrentPerSlot - occupied
		if available < 0 {
			available = 0
		}
		result = append(result, Slot{
			StartTime:       s,
			DurationMinutes: sched.SlotDurationMinutes,
			AvailableSpots:  available,
			TotalSpots:      sched.MaxConcurrentPerSlot,
		})
	}

	uc.logger.Info("GetAvailableSlots: %d slots for barber=%d, date=%s",
		len(result), req.BarberID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:       req.Date,
		BusinessID: req.BusinessID,
		BarberID:   req.BarberID,
		Slots:      result,
	}, nil
}

func emptyResponse(req *Request) *Response {
	return &Response{
		Date:       req.Date,
		BusinessID: req.BusinessID,
		BarberID:   req.BarberID,
		Slots:      []Slot{},
	}
}
