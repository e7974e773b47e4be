package availability

import (
	"fmt"
	"time"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
)

// StartService переводит запись в статус "клиент в кресле".
// Допускается только из начальных статусов (created/scheduled/confirmed).
func StartService(a *domain.Appointment, durationMinutes int, now time.Time) error {
	if a.IsFinalized() {
		return ErrAlreadyFinalized
	}
	if !a.CanStartService() {
		return fmt.Errorf("%w: cannot start service from status %q", ErrInvalidTransition, a.Status)
	}
	if durationMinutes < domain.MinInServiceDurationMinutes || durationMinutes > domain.MaxInServiceDurationMinutes {
		return fmt.Errorf("%w: service duration must be %d-%d minutes, got %d",
			ErrInvalidFormat, domain.MinInServiceDurationMinutes, domain.MaxInServiceDurationMinutes, durationMinutes)
	}

	a.Status = domain.StatusInService
	a.ServiceDurationMinutes = durationMinutes
	a.InServiceSince = &now

	return nil
}

// Checkout завершает обслуживание: фиксирует сумму и способ оплаты.
// Допускается только из статуса in_service.
func Checkout(a *domain.Appointment, amount float64, method domain.PaymentMethod, now time.Time) error {
	if a.IsFinalized() {
		return ErrAlreadyFinalized
	}
	if !a.CanBeCheckedOut() {
		return fmt.Errorf("%w: cannot checkout from status %q", ErrInvalidTransition, a.Status)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %.2f", ErrInvalidFormat, amount)
	}
	if !isValidPaymentMethod(method) {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidFormat, method)
	}

	a.Status = domain.StatusAttended
	a.Amount = &amount
	a.PaymentMethod = &method
	a.AttendedAt = &now

	return nil
}

// Cancel отменяет запись. Допускается из любого незавершенного статуса.
func Cancel(a *domain.Appointment, now time.Time) error {
	if a.IsFinalized() {
		return ErrAlreadyFinalized
	}

	a.Status = domain.StatusCancelled
	a.CancelledAt = &now

	return nil
}

func isValidPaymentMethod(method domain.PaymentMethod) bool {
	for _, m := range domain.ValidPaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}
