package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
)

func newAppointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:          1,
		BarberID:    2,
		ServiceID:   3,
		ClientName:  "Juan Pérez",
		ClientPhone: "80912345678",
		Status:      status,
	}
}

func TestStartService(t *testing.T) {
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	for _, status := range []domain.AppointmentStatus{domain.StatusCreated, domain.StatusScheduled, domain.StatusConfirmed} {
		t.Run("from "+string(status), func(t *testing.T) {
			a := newAppointment(status)
			require.NoError(t, StartService(a, 45, now))

			assert.Equal(t, domain.StatusInService, a.Status)
			assert.Equal(t, 45, a.ServiceDurationMinutes)
			require.NotNil(t, a.InServiceSince)
			assert.Equal(t, now, *a.InServiceSince)
		})
	}

	t.Run("duration below minimum", func(t *testing.T) {
		a := newAppointment(domain.StatusScheduled)
		assert.ErrorIs(t, StartService(a, 4, now), ErrInvalidFormat)
		assert.Equal(t, domain.StatusScheduled, a.Status)
	})

	t.Run("duration above maximum", func(t *testing.T) {
		a := newAppointment(domain.StatusScheduled)
		assert.ErrorIs(t, StartService(a, 181, now), ErrInvalidFormat)
	})

	t.Run("already in service", func(t *testing.T) {
		a := newAppointment(domain.StatusInService)
		assert.ErrorIs(t, StartService(a, 45, now), ErrInvalidTransition)
	})

	t.Run("finalized", func(t *testing.T) {
		a := newAppointment(domain.StatusAttended)
		assert.ErrorIs(t, StartService(a, 45, now), ErrAlreadyFinalized)

		cancelled := newAppointment(domain.StatusCancelled)
		assert.ErrorIs(t, StartService(cancelled, 45, now), ErrAlreadyFinalized)
	})
}

func TestCheckout(t *testing.T) {
	now := time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		a := newAppointment(domain.StatusInService)
		require.NoError(t, Checkout(a, 350.0, domain.PaymentCash, now))

		assert.Equal(t, domain.StatusAttended, a.Status)
		require.NotNil(t, a.Amount)
		assert.Equal(t, 350.0, *a.Amount)
		require.NotNil(t, a.PaymentMethod)
		assert.Equal(t, domain.PaymentCash, *a.PaymentMethod)
		require.NotNil(t, a.AttendedAt)
		assert.Equal(t, now, *a.AttendedAt)
	})

	t.Run("zero amount", func(t *testing.T) {
		a := newAppointment(domain.StatusInService)
		assert.ErrorIs(t, Checkout(a, 0, domain.PaymentCash, now), ErrInvalidFormat)
		assert.Equal(t, domain.StatusInService, a.Status)
	})

	t.Run("unknown payment method", func(t *testing.T) {
		a := newAppointment(domain.StatusInService)
		assert.ErrorIs(t, Checkout(a, 350.0, "crypto", now), ErrInvalidFormat)
	})

	t.Run("not in service yet", func(t *testing.T) {
		a := newAppointment(domain.StatusScheduled)
		assert.ErrorIs(t, Checkout(a, 350.0, domain.PaymentCash, now), ErrInvalidTransition)
	})

	t.Run("finalized", func(t *testing.T) {
		a := newAppointment(domain.StatusCancelled)
		assert.ErrorIs(t, Checkout(a, 350.0, domain.PaymentCash, now), ErrAlreadyFinalized)
	})
}

func TestCancel(t *testing.T) {
	now := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)

	for _, status := range []domain.AppointmentStatus{
		domain.StatusCreated, domain.StatusScheduled, domain.StatusConfirmed, domain.StatusInService,
	} {
		t.Run("from "+string(status), func(t *testing.T) {
			a := newAppointment(status)
			require.NoError(t, Cancel(a, now))

			assert.Equal(t, domain.StatusCancelled, a.Status)
			require.NotNil(t, a.CancelledAt)
			assert.Equal(t, now, *a.CancelledAt)
		})
	}

	t.Run("attended cannot be cancelled", func(t *testing.T) {
		a := newAppointment(domain.StatusAttended)
		assert.ErrorIs(t, Cancel(a, now), ErrAlreadyFinalized)
	})

	t.Run("cancel is idempotent in error only", func(t *testing.T) {
		a := newAppointment(domain.StatusCancelled)
		assert.ErrorIs(t, Cancel(a, now), ErrAlreadyFinalized)
	})
}
