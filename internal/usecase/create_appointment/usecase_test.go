package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnord/TurnORD-SchedulingService/internal/availability"
	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	configRepo "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/businessconfig"
	"github.com/turnord/TurnORD-SchedulingService/internal/integrations/notifygateway"
	"github.com/turnord/TurnORD-SchedulingService/pkg/ptr"
	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

// Фейки репозиториев и зависимостей

type fakeApptRepo struct {
	existing []*domain.Appointment
	created  *domain.Appointment
	nextID   int64
}

func (f *fakeApptRepo) GetByBarberAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Appointment, error) {
	return f.existing, nil
}

func (f *fakeApptRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	created := *appt
	f.nextID++
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

type fakeBarberRepo struct {
	barber *domain.Barber
	err    error
}

func (f *fakeBarberRepo) GetByID(_ context.Context, _ int64) (*domain.Barber, error) {
	return f.barber, f.err
}

type fakeServiceRepo struct {
	service *domain.Service
	err     error
}

func (f *fakeServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	return f.service, f.err
}

type fakeConfigRepo struct {
	cfg *domain.BusinessConfig
	err error
}

func (f *fakeConfigRepo) GetByBusinessID(_ context.Context, _ int64) (*domain.BusinessConfig, error) {
	return f.cfg, f.err
}

type fakeReminders struct {
	scheduledFor []int64
}

func (f *fakeReminders) ScheduleFor(_ context.Context, appt *domain.Appointment) error {
	f.scheduledFor = append(f.scheduledFor, appt.ID)
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

// Фикстуры: понедельник 2026-09-07, мастер работает 09:00-19:00 с перерывом 13:00-14:00

var (
	testNow    = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	testMonday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	testSunday = time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
)

func testBarber() *domain.Barber {
	return &domain.Barber{
		ID:         1,
		BusinessID: 1,
		Name:       "Луис",
		WorkStart:  "09:00",
		WorkEnd:    "19:00",
		BreakStart: ptr.Ptr(types.TimeString("13:00")),
		BreakEnd:   ptr.Ptr(types.TimeString("14:00")),
		WorkDays:   []int{1, 2, 3, 4, 5, 6},
		IsActive:   true,
	}
}

func testService() *domain.Service {
	return &domain.Service{
		ID:              2,
		BusinessID:      1,
		Name:            "Corte clásico",
		Price:           350,
		DurationMinutes: 30,
		IsActive:        true,
	}
}

func testRequest() *Request {
	return &Request{
		BusinessID:  1,
		BarberID:    1,
		ServiceID:   2,
		ClientName:  "Juan Pérez",
		ClientPhone: "8091234567",
		Date:        testMonday,
		StartTime:   "10:00",
	}
}

func newTestUseCase(appts *fakeApptRepo, barbers *fakeBarberRepo, services *fakeServiceRepo, cfgs *fakeConfigRepo) (*UseCase, *fakeReminders, *fakeGateway) {
	rem := &fakeReminders{}
	gw := &fakeGateway{}
	uc := NewUseCase(appts, barbers, services, cfgs, rem, gw,
		inlineTxManager{}, fixedTime{testNow}, nopLogger{})
	return uc, rem, gw
}

func TestExecute_CreatesAppointment(t *testing.T) {
	appts := &fakeApptRepo{}
	uc, rem, gw := newTestUseCase(appts,
		&fakeBarberRepo{barber: testBarber()},
		&fakeServiceRepo{service: testService()},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound})

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "scheduled", resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)

	// Снимок услуги денормализован в запись
	assert.Equal(t, "Corte clásico", resp.ServiceName)
	assert.Equal(t, 350.0, resp.ServicePrice)
	assert.Equal(t, 30, resp.ServiceDurationMinutes)

	// Напоминания и уведомление ушли после создания
	require.Len(t, rem.scheduledFor, 1)
	assert.Equal(t, resp.ID, rem.scheduledFor[0])
	require.Len(t, gw.sent, 1)
	assert.Equal(t, "appointment_created", gw.sent[0].Event)
}

func TestExecute_QuickCreate(t *testing.T) {
	uc, _, _ := newTestUseCase(&fakeApptRepo{},
		&fakeBarberRepo{barber: testBarber()},
		&fakeServiceRepo{service: testService()},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound})

	req := testRequest()
	req.Quick = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "created", resp.Status)
}

func TestExecute_SlotConflict(t *testing.T) {
	appts := &fakeApptRepo{
		existing: []*domain.Appointment{
			{ID: 7, StartTime: "10:00", Status: domain.StatusScheduled},
		},
	}
	uc, _, _ := newTestUseCase(appts,
		&fakeBarberRepo{barber: testBarber()},
		&fakeServiceRepo{service: testService()},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, availability.ErrSlotConflict)
}

func TestExecute_CancelledAppointmentFreesSlot(t *testing.T) {
	appts := &fakeApptRepo{
		existing: []*domain.Appointment{
			{ID: 7, StartTime: "10:00", Status: domain.StatusCancelled},
		},
	}
	uc, _, _ := newTestUseCase(appts,
		&fakeBarberRepo{barber: testBarber()},
		&fakeServiceRepo{service: testService()},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.NoError(t, err)
}

func TestExecute_RejectsByScheduleRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{
			name:    "non-working day",
			mutate:  func(req *Request) { req.Date = testSunday },
			wantErr: availability.ErrNonWorkingDay,
		},
		{
			name:    "before opening",
			mutate:  func(req *Request) { req.StartTime = "08:30" },
			wantErr: availability.ErrOutsideWorkingHours,
		},
		{
			name:    "at closing time",
			mutate:  func(req *Request) { req.StartTime = "19:00" },
			wantErr: availability.ErrOutsideWorkingHours,
		},
		{
			name:    "during break",
			mutate:  func(req *Request) { req.StartTime = "13:30" },
			wantErr: availability.ErrDuringBreak,
		},
		{
			name:    "past date",
			mutate:  func(req *Request) { req.Date = testNow.AddDate(0, 0, -1) },
			wantErr: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _ := newTestUseCase(&fakeApptRepo{},
				&fakeBarberRepo{barber: testBarber()},
				&fakeServiceRepo{service: testService()},
				&fakeConfigRepo{err: configRepo.ErrConfigNotFound})

			req := testRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_AdvanceBookingHorizon(t *testing.T) {
	cfg := &domain.BusinessConfig{
		BusinessID:           1,
		DefaultWorkStart:     "09:00",
		DefaultWorkEnd:       "19:00",
		DefaultWorkDays:      []int{1, 2, 3, 4, 5, 6},
		SlotDurationMinutes:  30,
		MaxConcurrentPerSlot: 1,
		AdvanceBookingDays:   3,
		RemindersEnabled:     true,
	}
	uc, _, _ := newTestUseCase(&fakeApptRepo{},
		&fakeBarberRepo{barber: testBarber()},
		&fakeServiceRepo{service: testService()},
		&fakeConfigRepo{cfg: cfg})

	req := testRequest() // 2026-09-07 при "сейчас" 2026-09-01 и горизонте 3 дня
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_InactiveBarber(t *testing.T) {
	barber := testBarber()
	barber.IsActive = false

	uc, _, _ := newTestUseCase(&fakeApptRepo{},
		&fakeBarberRepo{barber: barber},
		&fakeServiceRepo{service: testService()},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, availability.ErrBarberUnavailable)
}

func TestExecute_InactiveServiceRejected(t *testing.T) {
	svc := testService()
	svc.IsActive = false

	uc, _, _ := newTestUseCase(&fakeApptRepo{},
		&fakeBarberRepo{barber: testBarber()},
		&fakeServiceRepo{service: svc},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidClient(t *testing.T) {
	uc, _, _ := newTestUseCase(&fakeApptRepo{},
		&fakeBarberRepo{barber: testBarber()},
		&fakeServiceRepo{service: testService()},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound})

	req := testRequest()
	req.ClientPhone = "123" // короче минимума

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
