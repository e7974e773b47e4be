package get_available_slots

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: business id must be positive", ErrInvalidInput)
	}
	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barber id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// isDateInPast возвращает true, если дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return truncateToDay(date).Before(truncateToDay(now))
}

// isBeyondHorizon возвращает true, если дата дальше горизонта бронирования.
// advanceDays == 0 означает отсутствие ограничения.
func isBeyondHorizon(date, now time.Time, advanceDays int) bool {
	if advanceDays <= 0 {
		return false
	}
	horizon := truncateToDay(now).AddDate(0, 0, advanceDays)
	return truncateToDay(date).After(horizon)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
