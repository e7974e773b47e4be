package create_appointment

import (
	"fmt"
	"time"

	"github.com/turnord/TurnORD-SchedulingService/internal/availability"
	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
)

// validateRequest проверяет базовые поля запроса до походов в хранилище.
// Валидация времени против расписания мастера выполняется позже, в транзакции.
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: business id must be positive", ErrInvalidInput)
	}
	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barber id must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service id must be positive", ErrInvalidInput)
	}

	if err := availability.ValidateClient(req.ClientName, req.ClientPhone, req.ClientEmail); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time must be in HH:MM format", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше горизонта бронирования.
// advanceDays == 0 означает отсутствие ограничения горизонта.
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
