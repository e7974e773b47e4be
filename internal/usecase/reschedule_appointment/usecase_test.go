package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnord/TurnORD-SchedulingService/internal/availability"
	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	apptStorage "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/appointment"
	barberRepo "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/barber"
	configRepo "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/businessconfig"
	"github.com/turnord/TurnORD-SchedulingService/internal/integrations/notifygateway"
	"github.com/turnord/TurnORD-SchedulingService/pkg/ptr"
	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

type fakeApptRepo struct {
	appt     *domain.Appointment
	err      error
	existing []*domain.Appointment

	// Календари отдельных мастеров; при отсутствии берется existing
	byBarber map[int64][]*domain.Appointment

	rescheduled *domain.Appointment
}

func (f *fakeApptRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	return f.appt, f.err
}

func (f *fakeApptRepo) GetByBarberAndDate(_ context.Context, barberID int64, _ time.Time) ([]*domain.Appointment, error) {
	if appts, ok := f.byBarber[barberID]; ok {
		return appts, nil
	}
	return f.existing, nil
}

func (f *fakeApptRepo) Reschedule(_ context.Context, appt *domain.Appointment) error {
	moved := *appt
	f.rescheduled = &moved
	return nil
}

type fakeBarberRepo struct {
	barbers map[int64]*domain.Barber
}

func (f *fakeBarberRepo) GetByID(_ context.Context, id int64) (*domain.Barber, error) {
	b, ok := f.barbers[id]
	if !ok {
		return nil, barberRepo.ErrBarberNotFound
	}
	return b, nil
}

type fakeConfigRepo struct {
	cfg *domain.BusinessConfig
	err error
}

func (f *fakeConfigRepo) GetByBusinessID(_ context.Context, _ int64) (*domain.BusinessConfig, error) {
	return f.cfg, f.err
}

type fakeReminders struct {
	cancelledFor []int64
	scheduledFor []int64
}

func (f *fakeReminders) ScheduleFor(_ context.Context, appt *domain.Appointment) error {
	f.scheduledFor = append(f.scheduledFor, appt.ID)
	return nil
}

func (f *fakeReminders) CancelFor(_ context.Context, appointmentID int64) error {
	f.cancelledFor = append(f.cancelledFor, appointmentID)
	return nil
}

type fakeGateway struct {
	sent []*notifygateway.Notification
}

func (f *fakeGateway) SendBestEffort(_ context.Context, n *notifygateway.Notification) error {
	f.sent = append(f.sent, n)
	return nil
}

type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	testNow     = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	testMonday  = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	testTuesday = time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
)

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:          42,
		BusinessID:  1,
		BarberID:    1,
		ServiceID:   2,
		ServiceName: "Corte clásico",
		ClientName:  "Juan Pérez",
		ClientPhone: "8091234567",
		Date:        testMonday,
		StartTime:   "10:00",
		Status:      domain.StatusScheduled,
	}
}

func testBarber() *domain.Barber {
	return &domain.Barber{
		ID:         1,
		BusinessID: 1,
		Name:       "Луис",
		WorkStart:  "09:00",
		WorkEnd:    "19:00",
		WorkDays:   []int{1, 2, 3, 4, 5, 6},
		IsActive:   true,
	}
}

func testRequest() *Request {
	return &Request{
		AppointmentID: 42,
		BusinessID:    1,
		Date:          testTuesday,
		StartTime:     "15:00",
	}
}

func newTestUseCase(appts *fakeApptRepo, extraBarbers ...*domain.Barber) (*UseCase, *fakeReminders, *fakeGateway) {
	barbers := map[int64]*domain.Barber{1: testBarber()}
	for _, b := range extraBarbers {
		barbers[b.ID] = b
	}

	rem := &fakeReminders{}
	gw := &fakeGateway{}
	uc := NewUseCase(appts, &fakeBarberRepo{barbers: barbers},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound},
		rem, gw, inlineTxManager{}, fixedTime{testNow}, nopLogger{})
	return uc, rem, gw
}

func TestExecute_MovesAppointment(t *testing.T) {
	appts := &fakeApptRepo{appt: testAppointment()}
	uc, rem, gw := newTestUseCase(appts)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, testTuesday, resp.Date)
	assert.Equal(t, types.TimeString("15:00"), resp.StartTime)
	assert.Equal(t, "scheduled", resp.Status)

	require.NotNil(t, appts.rescheduled)
	assert.Equal(t, types.TimeString("15:00"), appts.rescheduled.StartTime)

	// Напоминания пересозданы под новое время
	assert.Equal(t, []int64{42}, rem.cancelledFor)
	assert.Equal(t, []int64{42}, rem.scheduledFor)

	require.Len(t, gw.sent, 1)
	assert.Equal(t, "appointment_rescheduled", gw.sent[0].Event)
}

func TestExecute_OwnSlotNotCountedAsTaken(t *testing.T) {
	appt := testAppointment()
	appts := &fakeApptRepo{
		appt:     appt,
		existing: []*domain.Appointment{appt},
	}
	uc, _, _ := newTestUseCase(appts)

	// Перенос на собственное время в тот же день проходит
	req := testRequest()
	req.Date = testMonday
	req.StartTime = "10:00"

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_MovesToAnotherBarber(t *testing.T) {
	other := testBarber()
	other.ID = 2
	other.Name = "Марко"

	// У прежнего мастера целевое время занято, у нового - свободно:
	// занятость проверяется по календарю нового мастера
	appts := &fakeApptRepo{
		appt: testAppointment(),
		byBarber: map[int64][]*domain.Appointment{
			1: {{ID: 7, StartTime: "15:00", Status: domain.StatusScheduled}},
			2: {},
		},
	}
	uc, _, _ := newTestUseCase(appts, other)

	req := testRequest()
	req.BarberID = ptr.Ptr(int64(2))

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.BarberID)
	require.NotNil(t, appts.rescheduled)
	assert.Equal(t, int64(2), appts.rescheduled.BarberID)
}

func TestExecute_TargetBarberSlotTaken(t *testing.T) {
	other := testBarber()
	other.ID = 2

	appts := &fakeApptRepo{
		appt: testAppointment(),
		byBarber: map[int64][]*domain.Appointment{
			2: {{ID: 7, StartTime: "15:00", Status: domain.StatusScheduled}},
		},
	}
	uc, _, _ := newTestUseCase(appts, other)

	req := testRequest()
	req.BarberID = ptr.Ptr(int64(2))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, availability.ErrSlotConflict)
}

func TestExecute_TargetBarberInactive(t *testing.T) {
	other := testBarber()
	other.ID = 2
	other.IsActive = false

	uc, _, _ := newTestUseCase(&fakeApptRepo{appt: testAppointment()}, other)

	req := testRequest()
	req.BarberID = ptr.Ptr(int64(2))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, availability.ErrBarberUnavailable)
}

func TestExecute_CurrentBarberInactive(t *testing.T) {
	// Мастер деактивирован после создания записи: перенос к нему не проходит
	inactive := testBarber()
	inactive.IsActive = false

	uc, _, _ := newTestUseCase(&fakeApptRepo{appt: testAppointment()}, inactive)

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, availability.ErrBarberUnavailable)
}

func TestExecute_TargetBarberNotFound(t *testing.T) {
	uc, _, _ := newTestUseCase(&fakeApptRepo{appt: testAppointment()})

	req := testRequest()
	req.BarberID = ptr.Ptr(int64(99))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_TargetBarberScheduleApplies(t *testing.T) {
	// Новый мастер работает до 14:00: запрос на 15:00 вне его часов
	other := testBarber()
	other.ID = 2
	other.WorkEnd = "14:00"

	uc, _, _ := newTestUseCase(&fakeApptRepo{appt: testAppointment()}, other)

	req := testRequest()
	req.BarberID = ptr.Ptr(int64(2))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, availability.ErrOutsideWorkingHours)
}

func TestExecute_TargetSlotTaken(t *testing.T) {
	appts := &fakeApptRepo{
		appt: testAppointment(),
		existing: []*domain.Appointment{
			{ID: 7, StartTime: "15:00", Status: domain.StatusScheduled},
		},
	}
	uc, _, _ := newTestUseCase(appts)

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, availability.ErrSlotConflict)
}

func TestExecute_NotReschedulable(t *testing.T) {
	tests := []struct {
		name   string
		status domain.AppointmentStatus
	}{
		{name: "in service", status: domain.StatusInService},
		{name: "attended", status: domain.StatusAttended},
		{name: "cancelled", status: domain.StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appt := testAppointment()
			appt.Status = tt.status
			uc, _, _ := newTestUseCase(&fakeApptRepo{appt: appt})

			_, err := uc.Execute(context.Background(), testRequest())
			assert.ErrorIs(t, err, ErrNotReschedulable)
		})
	}
}

func TestExecute_AppointmentNotFound(t *testing.T) {
	uc, _, _ := newTestUseCase(&fakeApptRepo{err: apptStorage.ErrAppointmentNotFound})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_ForeignBusinessAppointment(t *testing.T) {
	appt := testAppointment()
	appt.BusinessID = 99
	uc, _, _ := newTestUseCase(&fakeApptRepo{appt: appt})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_PastTargetDate(t *testing.T) {
	uc, _, _ := newTestUseCase(&fakeApptRepo{appt: testAppointment()})

	req := testRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}
