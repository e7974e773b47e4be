package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	"github.com/turnord/TurnORD-SchedulingService/internal/integrations/notifygateway"
)

type fakeReminderRepo struct {
	nextID  int64
	stored  []*domain.Reminder
	sent    map[int64]time.Time
	deleted []int64
	staled  int64
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{sent: make(map[int64]time.Time)}
}

func (f *fakeReminderRepo) Create(_ context.Context, rem *domain.Reminder) (*domain.Reminder, error) {
	created := *rem
	f.nextID++
	created.ID = f.nextID
	f.stored = append(f.stored, &created)
	return &created, nil
}

func (f *fakeReminderRepo) GetDue(_ context.Context, now time.Time, limit int) ([]*domain.Reminder, error) {
	due := make([]*domain.Reminder, 0)
	for _, rem := range f.stored {
		if _, ok := f.sent[rem.ID]; ok {
			continue
		}
		if !rem.FireAt.After(now) && len(due) < limit {
			due = append(due, rem)
		}
	}
	return due, nil
}

func (f *fakeReminderRepo) MarkSent(_ context.Context, id int64, at time.Time) error {
	f.sent[id] = at
	return nil
}

func (f *fakeReminderRepo) DeleteByAppointment(_ context.Context, appointmentID int64) error {
	f.deleted = append(f.deleted, appointmentID)
	kept := f.stored[:0]
	for _, rem := range f.stored {
		if rem.AppointmentID != appointmentID {
			kept = append(kept, rem)
		}
	}
	f.stored = kept
	return nil
}

func (f *fakeReminderRepo) DeleteStale(_ context.Context, now time.Time, maxAge time.Duration) (int64, error) {
	kept := f.stored[:0]
	var removed int64
	for _, rem := range f.stored {
		if now.Sub(rem.FireAt) > maxAge {
			removed++
			continue
		}
		kept = append(kept, rem)
	}
	f.stored = kept
	f.staled = removed
	return removed, nil
}

type fakeApptRepo struct {
	appts map[int64]*domain.Appointment
}

func (f *fakeApptRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appts[id]
	if !ok {
		return nil, errors.New("appointment.repository: appointment not found")
	}
	return appt, nil
}

type fakeBarberRepo struct {
	barber *domain.Barber
}

func (f *fakeBarberRepo) GetByID(_ context.Context, _ int64) (*domain.Barber, error) {
	if f.barber == nil {
		return nil, errors.New("barber.repository: barber not found")
	}
	return f.barber, nil
}

type fakeGateway struct {
	sent []*notifygateway.Notification
	err  error
}

func (f *fakeGateway) SendBestEffort(_ context.Context, n *notifygateway.Notification) error {
	f.sent = append(f.sent, n)
	return f.err
}

type inlineTxManager struct{}

func (inlineTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var schedNow = time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:          42,
		BusinessID:  1,
		BarberID:    1,
		ServiceID:   2,
		ServiceName: "Corte clásico",
		ClientName:  "Juan Pérez",
		ClientPhone: "8091234567",
		Date:        time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime:   "11:00",
		Status:      domain.StatusScheduled,
	}
}

func newTestScheduler(remRepo *fakeReminderRepo, appts *fakeApptRepo, gw *fakeGateway) *Scheduler {
	s := NewScheduler(remRepo, appts, &fakeBarberRepo{barber: &domain.Barber{ID: 1, Name: "Луис"}},
		gw, inlineTxManager{}, nopLogger{})
	s.timeProvider = fixedTime{schedNow}
	return s
}

func TestScheduleFor_CreatesBothKinds(t *testing.T) {
	remRepo := newFakeReminderRepo()
	s := newTestScheduler(remRepo, &fakeApptRepo{}, &fakeGateway{})

	// Запись на 11:00, сейчас 09:00: оба напоминания в будущем
	require.NoError(t, s.ScheduleFor(context.Background(), testAppointment()))
	require.Len(t, remRepo.stored, 2)

	assert.Equal(t, domain.ReminderOneHour, remRepo.stored[0].Kind)
	assert.Equal(t, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), remRepo.stored[0].FireAt)

	assert.Equal(t, domain.ReminderTenMinutes, remRepo.stored[1].Kind)
	assert.Equal(t, time.Date(2026, 9, 7, 10, 50, 0, 0, time.UTC), remRepo.stored[1].FireAt)
}

func TestScheduleFor_SkipsElapsedOffsets(t *testing.T) {
	remRepo := newFakeReminderRepo()
	s := newTestScheduler(remRepo, &fakeApptRepo{}, &fakeGateway{})

	// Запись на 09:30: часовое напоминание уже в прошлом, десятиминутное еще нет
	appt := testAppointment()
	appt.StartTime = "09:30"

	require.NoError(t, s.ScheduleFor(context.Background(), appt))
	require.Len(t, remRepo.stored, 1)
	assert.Equal(t, domain.ReminderTenMinutes, remRepo.stored[0].Kind)
}

func TestCancelFor_RemovesReminders(t *testing.T) {
	remRepo := newFakeReminderRepo()
	s := newTestScheduler(remRepo, &fakeApptRepo{}, &fakeGateway{})

	require.NoError(t, s.ScheduleFor(context.Background(), testAppointment()))
	require.NoError(t, s.CancelFor(context.Background(), 42))

	assert.Empty(t, remRepo.stored)
	assert.Contains(t, remRepo.deleted, int64(42))
}

func TestSweep_DeliversDueReminders(t *testing.T) {
	appt := testAppointment()
	remRepo := newFakeReminderRepo()
	gw := &fakeGateway{}
	s := newTestScheduler(remRepo, &fakeApptRepo{appts: map[int64]*domain.Appointment{42: appt}}, gw)

	_, _ = remRepo.Create(context.Background(), &domain.Reminder{
		AppointmentID: 42,
		Kind:          domain.ReminderOneHour,
		FireAt:        schedNow.Add(-time.Minute),
	})
	_, _ = remRepo.Create(context.Background(), &domain.Reminder{
		AppointmentID: 42,
		Kind:          domain.ReminderTenMinutes,
		FireAt:        schedNow.Add(30 * time.Minute), // еще не созрело
	})

	require.NoError(t, s.Sweep(context.Background()))

	require.Len(t, gw.sent, 1)
	assert.Equal(t, "reminder_1h", gw.sent[0].Event)
	assert.Equal(t, "Juan Pérez", gw.sent[0].ClientName)
	assert.Equal(t, "Луис", gw.sent[0].BarberName)

	// Отправленное помечено, несозревшее осталось нетронутым
	assert.Contains(t, remRepo.sent, int64(1))
	assert.NotContains(t, remRepo.sent, int64(2))
}

func TestSweep_MarksSentEvenWhenGatewayFails(t *testing.T) {
	appt := testAppointment()
	remRepo := newFakeReminderRepo()
	gw := &fakeGateway{err: errors.New("gateway unreachable")}
	s := newTestScheduler(remRepo, &fakeApptRepo{appts: map[int64]*domain.Appointment{42: appt}}, gw)

	_, _ = remRepo.Create(context.Background(), &domain.Reminder{
		AppointmentID: 42,
		Kind:          domain.ReminderOneHour,
		FireAt:        schedNow.Add(-time.Minute),
	})

	require.NoError(t, s.Sweep(context.Background()))
	assert.Contains(t, remRepo.sent, int64(1))
}

func TestSweep_DropsRemindersOfFinalizedAppointment(t *testing.T) {
	appt := testAppointment()
	appt.Status = domain.StatusCancelled

	remRepo := newFakeReminderRepo()
	gw := &fakeGateway{}
	s := newTestScheduler(remRepo, &fakeApptRepo{appts: map[int64]*domain.Appointment{42: appt}}, gw)

	_, _ = remRepo.Create(context.Background(), &domain.Reminder{
		AppointmentID: 42,
		Kind:          domain.ReminderOneHour,
		FireAt:        schedNow.Add(-time.Minute),
	})

	require.NoError(t, s.Sweep(context.Background()))

	assert.Empty(t, gw.sent)
	assert.Empty(t, remRepo.stored)
	assert.Empty(t, remRepo.sent)
}

func TestSweep_DropsRemindersOfMissingAppointment(t *testing.T) {
	remRepo := newFakeReminderRepo()
	gw := &fakeGateway{}
	s := newTestScheduler(remRepo, &fakeApptRepo{appts: map[int64]*domain.Appointment{}}, gw)

	_, _ = remRepo.Create(context.Background(), &domain.Reminder{
		AppointmentID: 42,
		Kind:          domain.ReminderOneHour,
		FireAt:        schedNow.Add(-time.Minute),
	})

	require.NoError(t, s.Sweep(context.Background()))

	assert.Empty(t, gw.sent)
	assert.Empty(t, remRepo.stored)
}

func TestSweep_DropsStaleReminders(t *testing.T) {
	appt := testAppointment()
	remRepo := newFakeReminderRepo()
	gw := &fakeGateway{}
	s := newTestScheduler(remRepo, &fakeApptRepo{appts: map[int64]*domain.Appointment{42: appt}}, gw)

	// Просрочено на двое суток: чистится до выборки созревших
	_, _ = remRepo.Create(context.Background(), &domain.Reminder{
		AppointmentID: 42,
		Kind:          domain.ReminderOneHour,
		FireAt:        schedNow.Add(-48 * time.Hour),
	})

	require.NoError(t, s.Sweep(context.Background()))

	assert.Equal(t, int64(1), remRepo.staled)
	assert.Empty(t, gw.sent)
}
