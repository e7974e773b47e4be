package availability

import (
	"fmt"
	"time"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

// ValidateStartTime проверяет стартовое время записи против расписания мастера.
// Порядок проверок фиксированный, возвращается первая сработавшая:
// 1. Формат времени
// 2. Рабочие часы
// 3. Рабочий день недели
// 4. Окно перерыва (с padding)
//
// Занятость слота проверяется отдельно (CheckCapacity), так как требует
// похода в хранилище.
func ValidateStartTime(sched Schedule, date time.Time, start types.TimeString) error {
	startMin, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidFormat, err)
	}

	// Рабочие часы: start входит, end не входит
	workStart, err := sched.WorkStart.Minutes()
	if err != nil {
		return fmt.Errorf("%w: work start: %v", ErrInvalidFormat, err)
	}
	workEnd, err := sched.WorkEnd.Minutes()
	if err != nil {
		return fmt.Errorf("%w: work end: %v", ErrInvalidFormat, err)
	}
	if startMin < workStart || startMin >= workEnd {
		return &OutsideWorkingHoursError{WorkStart: sched.WorkStart, WorkEnd: sched.WorkEnd}
	}

	// Рабочий день
	weekday := domain.ISOWeekday(date)
	if !sched.WorksOn(weekday) {
		return &NonWorkingDayError{ISOWeekday: weekday}
	}

	// Перерыв
	if bs, be, ok := sched.breakWindow(); ok {
		if startMin >= bs && startMin < be {
			return &DuringBreakError{UnblockAt: types.FromMinutes(be)}
		}
	}

	return nil
}

// CheckBarber проверяет, что мастер доступен для записи
func CheckBarber(barber *domain.Barber) error {
	if !barber.IsActive {
		return ErrBarberUnavailable
	}
	return nil
}

// CheckCapacity проверяет, что в слоте есть свободное место.
// occupied - число активных записей на этот слот, max - вместимость слота.
func CheckCapacity(occupied, max int) error {
	if max <= 0 {
		max = domain.DefaultMaxConcurrentPerSlot
	}
	if occupied >= max {
		return ErrSlotConflict
	}
	return nil
}

// ValidateClient проверяет клиентские поля записи
func ValidateClient(name, phone string, email *string) error {
	if name == "" || len(name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: client name must be 1-%d characters", ErrInvalidFormat, domain.MaxClientNameLength)
	}
	if len(phone) < domain.MinClientPhoneLength || len(phone) > domain.MaxClientPhoneLength {
		return fmt.Errorf("%w: client phone must be %d-%d characters",
			ErrInvalidFormat, domain.MinClientPhoneLength, domain.MaxClientPhoneLength)
	}
	if email != nil && *email != "" && !looksLikeEmail(*email) {
		return fmt.Errorf("%w: invalid client email", ErrInvalidFormat)
	}
	return nil
}

// looksLikeEmail минимальная проверка формата email: непустые части вокруг @ и точка в домене
func looksLikeEmail(s string) bool {
	at := -1
	for i, c := range s {
		if c == '@' {
			if at != -1 {
				return false
			}
			at = i
		}
	}
	if at <= 0 || at == len(s)-1 {
		return false
	}
	dot := false
	for _, c := range s[at+1:] {
		if c == '.' {
			dot = true
		}
	}
	return dot
}
