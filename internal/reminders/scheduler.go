// Package reminders очередь напоминаний клиентам о предстоящих записях.
// Напоминания персистентны: переживают рестарт сервиса и снимаются
// при отмене, переносе или завершении записи.
package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	"github.com/turnord/TurnORD-SchedulingService/internal/integrations/notifygateway"
)

const (
	// Смещения напоминаний относительно начала записи
	offsetOneHour    = time.Hour
	offsetTenMinutes = 10 * time.Minute

	// Напоминание, пропустившее окно больше чем на сутки, не отправляется
	staleAfter = 24 * time.Hour

	sweepBatchSize = 100
)

// Scheduler планировщик напоминаний: ставит их в очередь при создании
// записи и раз в 30 секунд отправляет созревшие.
type Scheduler struct {
	reminderRepo ReminderRepository
	apptRepo     AppointmentRepository
	barberRepo   BarberRepository
	gateway      NotifyGateway
	txManager    TxManager
	timeProvider TimeProvider
	logger       Logger

	cron *cron.Cron
}

// NewScheduler создает планировщик напоминаний
func NewScheduler(
	reminderRepo ReminderRepository,
	apptRepo AppointmentRepository,
	barberRepo BarberRepository,
	gateway NotifyGateway,
	txManager TxManager,
	logger Logger,
) *Scheduler {
	return &Scheduler{
		reminderRepo: reminderRepo,
		apptRepo:     apptRepo,
		barberRepo:   barberRepo,
		gateway:      gateway,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		cron:         cron.New(cron.WithSeconds()),
	}
}

// Start запускает периодическую проверку очереди
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("*/30 * * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()

		if err := s.Sweep(ctx); err != nil {
			s.logger.Error("Reminders: sweep failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("reminders: register sweep job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Reminders: scheduler started, sweep every 30s")
	return nil
}

// Stop останавливает планировщик и дожидается текущего прохода
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Reminders: scheduler stopped")
}

// ScheduleFor ставит напоминания для записи: за час и за 10 минут.
// Напоминания, чье время уже прошло, не создаются.
func (s *Scheduler) ScheduleFor(ctx context.Context, appt *domain.Appointment) error {
	startAt, err := appointmentStart(appt)
	if err != nil {
		return fmt.Errorf("reminders: compute appointment start: %w", err)
	}

	now := s.timeProvider.Now()
	plan := []struct {
		kind   domain.ReminderKind
		offset time.Duration
	}{
		{domain.ReminderOneHour, offsetOneHour},
		{domain.ReminderTenMinutes, offsetTenMinutes},
	}

	for _, p := range plan {
		fireAt := startAt.Add(-p.offset)
		if !fireAt.After(now) {
			continue
		}

		_, err := s.reminderRepo.Create(ctx, &domain.Reminder{
			AppointmentID: appt.ID,
			Kind:          p.kind,
			FireAt:        fireAt,
		})
		if err != nil {
			return fmt.Errorf("reminders: schedule %s for appointment %d: %w", p.kind, appt.ID, err)
		}
	}

	return nil
}

// CancelFor снимает все неотправленные напоминания записи
func (s *Scheduler) CancelFor(ctx context.Context, appointmentID int64) error {
	if err := s.reminderRepo.DeleteByAppointment(ctx, appointmentID); err != nil {
		return fmt.Errorf("reminders: cancel for appointment %d: %w", appointmentID, err)
	}
	return nil
}

// Sweep один проход по очереди: чистит протухшие и отправляет созревшие
func (s *Scheduler) Sweep(ctx context.Context) error {
	now := s.timeProvider.Now()

	removed, err := s.reminderRepo.DeleteStale(ctx, now, staleAfter)
	if err != nil {
		return err
	}
	if removed > 0 {
		s.logger.Warn("Reminders: dropped %d stale reminders", removed)
	}

	// Выборка и пометка идут в транзакции с SKIP LOCKED,
	// отправка - уже вне критической секции невозможна без потери
	// атомарности, поэтому шлем внутри: шлюз best-effort и быстрый.
	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		due, err := s.reminderRepo.GetDue(txCtx, now, sweepBatchSize)
		if err != nil {
			return err
		}

		for _, rem := range due {
			if err := s.deliver(txCtx, rem, now); err != nil {
				s.logger.Error("Reminders: deliver id=%d appointment=%d: %v", rem.ID, rem.AppointmentID, err)
				continue
			}
		}

		return nil
	})
}

func (s *Scheduler) deliver(ctx context.Context, rem *domain.Reminder, now time.Time) error {
	appt, err := s.apptRepo.GetByID(ctx, rem.AppointmentID)
	if err != nil {
		// Запись удалена - напоминание больше не нужно
		return s.reminderRepo.DeleteByAppointment(ctx, rem.AppointmentID)
	}

	// Завершенные и отмененные записи не напоминаем
	if appt.IsFinalized() {
		return s.reminderRepo.DeleteByAppointment(ctx, rem.AppointmentID)
	}

	barberName := ""
	if barber, err := s.barberRepo.GetByID(ctx, appt.BarberID); err == nil {
		barberName = barber.Name
	}

	// Шлюз best-effort: неудача доставки не блокирует пометку,
	// иначе очередь застрянет на одном недоставляемом напоминании
	_ = s.gateway.SendBestEffort(ctx, &notifygateway.Notification{
		Event:         string(rem.Kind),
		AppointmentID: appt.ID,
		ClientName:    appt.ClientName,
		ClientPhone:   appt.ClientPhone,
		ClientEmail:   appt.ClientEmail,
		BarberName:    barberName,
		ServiceName:   appt.ServiceName,
		Date:          appt.Date.Format(domain.DateFormat),
		StartTime:     appt.StartTime.String(),
	})

	return s.reminderRepo.MarkSent(ctx, rem.ID, now)
}

// appointmentStart собирает момент начала записи из даты и времени слота
func appointmentStart(appt *domain.Appointment) (time.Time, error) {
	minutes, err := appt.StartTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}

	day := time.Date(appt.Date.Year(), appt.Date.Month(), appt.Date.Day(), 0, 0, 0, 0, appt.Date.Location())
	return day.Add(time.Duration(minutes) * time.Minute), nil
}
