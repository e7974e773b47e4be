package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	barberRepo "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/barber"
	configRepo "github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/businessconfig"
	"github.com/turnord/TurnORD-SchedulingService/pkg/ptr"
	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

type fakeApptRepo struct {
	existing []*domain.Appointment
}

func (f *fakeApptRepo) GetByBarberAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Appointment, error) {
	return f.existing, nil
}

type fakeBarberRepo struct {
	barber *domain.Barber
	err    error
}

func (f *fakeBarberRepo) GetByID(_ context.Context, _ int64) (*domain.Barber, error) {
	return f.barber, f.err
}

type fakeConfigRepo struct {
	cfg *domain.BusinessConfig
	err error
}

func (f *fakeConfigRepo) GetByBusinessID(_ context.Context, _ int64) (*domain.BusinessConfig, error) {
	return f.cfg, f.err
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

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

func newTestUseCase(appts *fakeApptRepo, barbers *fakeBarberRepo, cfgs *fakeConfigRepo) *UseCase {
	uc := NewUseCase(appts, barbers, cfgs, nopLogger{})
	uc.timeProvider = fixedTime{testNow}
	return uc
}

func testRequest(date time.Time) *Request {
	return &Request{BusinessID: 1, BarberID: 1, Date: date}
}

func TestExecute_FullWorkingDay(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{},
		&fakeBarberRepo{barber: testBarber()},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound})

	resp, err := uc.Execute(context.Background(), testRequest(testMonday))
	require.NoError(t, err)

	// 09:00-19:00 с шагом 30 дает 20 слотов, перерыв 13:00-14:00 убирает два
	require.Len(t, resp.Slots, 18)

	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	for _, s := range resp.Slots {
		assert.NotEqual(t, types.TimeString("13:00"), s.StartTime)
		assert.NotEqual(t, types.TimeString("13:30"), s.StartTime)
		assert.Equal(t, 30, s.DurationMinutes)
		assert.Equal(t, 1, s.TotalSpots)
		assert.Equal(t, 1, s.AvailableSpots)
	}
	assert.Equal(t, types.TimeString("18:30"), resp.Slots[len(resp.Slots)-1].StartTime)
}

func TestExecute_OccupiedSlotReducesSpots(t *testing.T) {
	appts := &fakeApptRepo{
		existing: []*domain.Appointment{
			{ID: 5, StartTime: "10:00", Status: domain.StatusScheduled},
			{ID: 6, StartTime: "11:00", Status: domain.StatusCancelled}, // отмененная не занимает
		},
	}
	uc := newTestUseCase(appts,
		&fakeBarberRepo{barber: testBarber()},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound})

	resp, err := uc.Execute(context.Background(), testRequest(testMonday))
	require.NoError(t, err)

	bySlot := make(map[types.TimeString]Slot, len(resp.Slots))
	for _, s := range resp.Slots {
		bySlot[s.StartTime] = s
	}

	assert.Equal(t, 0, bySlot["10:00"].AvailableSpots)
	assert.Equal(t, 1, bySlot["11:00"].AvailableSpots)
}

func TestExecute_ParallelSlots(t *testing.T) {
	cfg := &domain.BusinessConfig{
		BusinessID:           1,
		SlotDurationMinutes:  30,
		MaxConcurrentPerSlot: 3,
	}
	appts := &fakeApptRepo{
		existing: []*domain.Appointment{
			{ID: 5, StartTime: "10:00", Status: domain.StatusScheduled},
			{ID: 6, StartTime: "10:00", Status: domain.StatusConfirmed},
		},
	}
	uc := newTestUseCase(appts,
		&fakeBarberRepo{barber: testBarber()},
		&fakeConfigRepo{cfg: cfg})

	resp, err := uc.Execute(context.Background(), testRequest(testMonday))
	require.NoError(t, err)

	bySlot := make(map[types.TimeString]Slot, len(resp.Slots))
	for _, s := range resp.Slots {
		bySlot[s.StartTime] = s
	}

	assert.Equal(t, 3, bySlot["10:00"].TotalSpots)
	assert.Equal(t, 1, bySlot["10:00"].AvailableSpots)
}

func TestExecute_EmptySlotsCases(t *testing.T) {
	inactive := testBarber()
	inactive.IsActive = false

	tests := []struct {
		name   string
		barber *domain.Barber
		date   time.Time
	}{
		{name: "non-working day", barber: testBarber(), date: testSunday},
		{name: "past date", barber: testBarber(), date: testNow.AddDate(0, 0, -2)},
		{name: "inactive barber", barber: inactive, date: testMonday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeApptRepo{},
				&fakeBarberRepo{barber: tt.barber},
				&fakeConfigRepo{err: configRepo.ErrConfigNotFound})

			resp, err := uc.Execute(context.Background(), testRequest(tt.date))
			require.NoError(t, err)
			assert.Empty(t, resp.Slots)
		})
	}
}

func TestExecute_SameDaySkipsElapsedSlots(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{},
		&fakeBarberRepo{barber: testBarber()},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound})

	// "Сейчас" вторник 10:00, слот 10:00 уже не предлагается
	resp, err := uc.Execute(context.Background(), testRequest(testNow))
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, types.TimeString("10:30"), resp.Slots[0].StartTime)
}

func TestExecute_BarberNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{},
		&fakeBarberRepo{err: barberRepo.ErrBarberNotFound},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound})

	_, err := uc.Execute(context.Background(), testRequest(testMonday))
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_ForeignBusinessBarber(t *testing.T) {
	barber := testBarber()
	barber.BusinessID = 99

	uc := newTestUseCase(&fakeApptRepo{},
		&fakeBarberRepo{barber: barber},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound})

	_, err := uc.Execute(context.Background(), testRequest(testMonday))
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestExecute_BeyondBookingHorizon(t *testing.T) {
	cfg := &domain.BusinessConfig{
		BusinessID:         1,
		AdvanceBookingDays: 3,
	}
	uc := newTestUseCase(&fakeApptRepo{},
		&fakeBarberRepo{barber: testBarber()},
		&fakeConfigRepo{cfg: cfg})

	_, err := uc.Execute(context.Background(), testRequest(testMonday))
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{},
		&fakeBarberRepo{barber: testBarber()},
		&fakeConfigRepo{err: configRepo.ErrConfigNotFound})

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, BarberID: 0, Date: testMonday})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
