package barbers

import (
	"fmt"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

// validateSchedule проверяет рабочие часы, перерыв и дни недели мастера
func validateSchedule(b *domain.Barber) error {
	if b.Name == "" || len(b.Name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: barber name must be 1-%d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}

	if err := b.WorkStart.Validate(); err != nil {
		return fmt.Errorf("%w: work start: %v", ErrInvalidInput, err)
	}
	if err := b.WorkEnd.Validate(); err != nil {
		return fmt.Errorf("%w: work end: %v", ErrInvalidInput, err)
	}
	if !b.WorkStart.IsBefore(b.WorkEnd) {
		return fmt.Errorf("%w: work start must be before work end", ErrInvalidInput)
	}

	// Перерыв: либо оба конца, либо ни одного
	hasStart := b.BreakStart != nil && !b.BreakStart.IsZero()
	hasEnd := b.BreakEnd != nil && !b.BreakEnd.IsZero()
	if hasStart != hasEnd {
		return fmt.Errorf("%w: break start and break end must be set together", ErrInvalidInput)
	}
	if hasStart {
		if err := b.BreakStart.Validate(); err != nil {
			return fmt.Errorf("%w: break start: %v", ErrInvalidInput, err)
		}
		if err := b.BreakEnd.Validate(); err != nil {
			return fmt.Errorf("%w: break end: %v", ErrInvalidInput, err)
		}
	}
	if b.BreakPaddingMinutes < 0 {
		return fmt.Errorf("%w: break padding must not be negative", ErrInvalidInput)
	}

	if len(b.WorkDays) == 0 {
		return fmt.Errorf("%w: at least one work day is required", ErrInvalidInput)
	}
	for _, d := range b.WorkDays {
		if d < 1 || d > 7 {
			return fmt.Errorf("%w: work day must be 1-7 (ISO weekday), got %d", ErrInvalidInput, d)
		}
	}

	if b.Phone != nil && *b.Phone != "" {
		if len(*b.Phone) < domain.MinClientPhoneLength || len(*b.Phone) > domain.MaxClientPhoneLength {
			return fmt.Errorf("%w: phone must be %d-%d characters",
				ErrInvalidInput, domain.MinClientPhoneLength, domain.MaxClientPhoneLength)
		}
	}

	return nil
}

// parseTimeString парсит и нормализует время из запроса
func parseTimeString(s string, field string) (types.TimeString, error) {
	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidInput, field, err)
	}
	return ts, nil
}

// parseOptionalTimeString парсит опциональное время; пустая строка снимает значение
func parseOptionalTimeString(s *string, field string) (*types.TimeString, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	ts, err := parseTimeString(*s, field)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}
