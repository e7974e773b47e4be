package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	"github.com/turnord/TurnORD-SchedulingService/internal/infra/storage/appointment"
	"github.com/turnord/TurnORD-SchedulingService/internal/service/appointments/models"
)

type fakeApptRepo struct {
	appt *domain.Appointment
	err  error

	cancelled  []int64
	started    []int64
	checkedOut []int64
}

func (f *fakeApptRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	return f.appt, f.err
}

func (f *fakeApptRepo) GetByBusinessWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	if f.appt == nil {
		return []*domain.Appointment{}, nil
	}
	return []*domain.Appointment{f.appt}, nil
}

func (f *fakeApptRepo) StartService(_ context.Context, id int64, _ int, _ time.Time) error {
	f.started = append(f.started, id)
	return nil
}

func (f *fakeApptRepo) Checkout(_ context.Context, id int64, _ float64, _ domain.PaymentMethod, _ time.Time) error {
	f.checkedOut = append(f.checkedOut, id)
	return nil
}

func (f *fakeApptRepo) Cancel(_ context.Context, id int64, _ time.Time) error {
	f.cancelled = append(f.cancelled, id)
	return nil
}

type fakeReminders struct {
	cancelledFor []int64
}

func (f *fakeReminders) CancelFor(_ context.Context, appointmentID int64) error {
	f.cancelledFor = append(f.cancelledFor, appointmentID)
	return nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var svcNow = time.Date(2026, 9, 7, 10, 30, 0, 0, time.UTC)

func testAppointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:          42,
		BusinessID:  1,
		BarberID:    1,
		ServiceID:   2,
		ServiceName: "Corte clásico",
		ClientName:  "Juan Pérez",
		ClientPhone: "8091234567",
		Date:        time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		Status:      status,
	}
}

func newTestService(repo *fakeApptRepo) (*Service, *fakeReminders) {
	rem := &fakeReminders{}
	svc := NewService(repo, rem, nopLogger{})
	svc.timeProvider = fixedTime{svcNow}
	return svc, rem
}

func TestCancel_DropsReminders(t *testing.T) {
	repo := &fakeApptRepo{appt: testAppointment(domain.StatusScheduled)}
	svc, rem := newTestService(repo)

	resp, err := svc.Cancel(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, []int64{42}, repo.cancelled)
	assert.Equal(t, []int64{42}, rem.cancelledFor)
}

func TestCancel_AlreadyFinalized(t *testing.T) {
	tests := []struct {
		name   string
		status domain.AppointmentStatus
	}{
		{name: "cancelled", status: domain.StatusCancelled},
		{name: "attended", status: domain.StatusAttended},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeApptRepo{appt: testAppointment(tt.status)}
			svc, rem := newTestService(repo)

			_, err := svc.Cancel(context.Background(), 42)
			assert.ErrorIs(t, err, ErrAlreadyFinalized)
			assert.Empty(t, repo.cancelled)
			assert.Empty(t, rem.cancelledFor)
		})
	}
}

func TestCancel_NotFound(t *testing.T) {
	repo := &fakeApptRepo{err: appointment.ErrAppointmentNotFound}
	svc, _ := newTestService(repo)

	_, err := svc.Cancel(context.Background(), 42)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestStartService_Transition(t *testing.T) {
	repo := &fakeApptRepo{appt: testAppointment(domain.StatusScheduled)}
	svc, _ := newTestService(repo)

	resp, err := svc.StartService(context.Background(), 42, &models.StartServiceRequest{DurationMinutes: 45})
	require.NoError(t, err)

	assert.Equal(t, "in_service", resp.Status)
	assert.Equal(t, 45, resp.ServiceDurationMinutes)
	require.NotNil(t, resp.InServiceSince)
	assert.Equal(t, []int64{42}, repo.started)
}

func TestStartService_InvalidDuration(t *testing.T) {
	repo := &fakeApptRepo{appt: testAppointment(domain.StatusScheduled)}
	svc, _ := newTestService(repo)

	_, err := svc.StartService(context.Background(), 42, &models.StartServiceRequest{DurationMinutes: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.started)
}

func TestStartService_FromInService(t *testing.T) {
	repo := &fakeApptRepo{appt: testAppointment(domain.StatusInService)}
	svc, _ := newTestService(repo)

	_, err := svc.StartService(context.Background(), 42, &models.StartServiceRequest{DurationMinutes: 45})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCheckout_Transition(t *testing.T) {
	repo := &fakeApptRepo{appt: testAppointment(domain.StatusInService)}
	svc, rem := newTestService(repo)

	resp, err := svc.Checkout(context.Background(), 42, &models.CheckoutRequest{Amount: 350, PaymentMethod: "cash"})
	require.NoError(t, err)

	assert.Equal(t, "attended", resp.Status)
	require.NotNil(t, resp.Amount)
	assert.Equal(t, 350.0, *resp.Amount)
	require.NotNil(t, resp.PaymentMethod)
	assert.Equal(t, "cash", *resp.PaymentMethod)
	assert.Equal(t, []int64{42}, repo.checkedOut)
	assert.Equal(t, []int64{42}, rem.cancelledFor)
}

func TestCheckout_RequiresInService(t *testing.T) {
	repo := &fakeApptRepo{appt: testAppointment(domain.StatusScheduled)}
	svc, _ := newTestService(repo)

	_, err := svc.Checkout(context.Background(), 42, &models.CheckoutRequest{Amount: 350, PaymentMethod: "cash"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, repo.checkedOut)
}

func TestCheckout_InvalidPaymentMethod(t *testing.T) {
	repo := &fakeApptRepo{appt: testAppointment(domain.StatusInService)}
	svc, _ := newTestService(repo)

	_, err := svc.Checkout(context.Background(), 42, &models.CheckoutRequest{Amount: 350, PaymentMethod: "bitcoin"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetBusinessAppointments_InvalidStatusFilter(t *testing.T) {
	repo := &fakeApptRepo{appt: testAppointment(domain.StatusScheduled)}
	svc, _ := newTestService(repo)

	bad := "unknown"
	_, err := svc.GetBusinessAppointments(context.Background(), &models.GetBusinessAppointmentsRequest{
		BusinessID: 1,
		Status:     &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetBusinessAppointments_ReturnsList(t *testing.T) {
	repo := &fakeApptRepo{appt: testAppointment(domain.StatusScheduled)}
	svc, _ := newTestService(repo)

	resp, err := svc.GetBusinessAppointments(context.Background(), &models.GetBusinessAppointmentsRequest{BusinessID: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(42), resp.Appointments[0].ID)
}
