package availability

import (
	"errors"
	"fmt"

	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

var (
	// ErrInvalidFormat возвращается при некорректном формате входных данных
	ErrInvalidFormat = errors.New("availability: invalid format")

	// ErrBarberUnavailable возвращается, когда мастер неактивен
	ErrBarberUnavailable = errors.New("availability: barber is unavailable")

	// ErrNonWorkingDay возвращается, когда мастер не работает в этот день недели
	ErrNonWorkingDay = errors.New("availability: barber does not work on this day")

	// ErrOutsideWorkingHours возвращается, когда время вне рабочих часов мастера
	ErrOutsideWorkingHours = errors.New("availability: time is outside working hours")

	// ErrDuringBreak возвращается, когда время попадает в окно перерыва
	ErrDuringBreak = errors.New("availability: time falls within the break window")

	// ErrSlotConflict возвращается, когда слот уже занят
	ErrSlotConflict = errors.New("availability: slot is already taken")

	// ErrAlreadyFinalized возвращается при попытке изменить завершенную запись
	ErrAlreadyFinalized = errors.New("availability: appointment is already finalized")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("availability: invalid status transition")
)

// OutsideWorkingHoursError несет рабочие часы мастера для сообщения клиенту.
// errors.Is(err, ErrOutsideWorkingHours) == true.
type OutsideWorkingHoursError struct {
	WorkStart types.TimeString
	WorkEnd   types.TimeString
}

func (e *OutsideWorkingHoursError) Error() string {
	return fmt.Sprintf("%v: working hours are %s - %s", ErrOutsideWorkingHours, e.WorkStart, e.WorkEnd)
}

func (e *OutsideWorkingHoursError) Unwrap() error {
	return ErrOutsideWorkingHours
}

// DuringBreakError несет время, с которого запись снова доступна.
// errors.Is(err, ErrDuringBreak) == true.
type DuringBreakError struct {
	UnblockAt types.TimeString
}

func (e *DuringBreakError) Error() string {
	return fmt.Sprintf("%v: available again at %s", ErrDuringBreak, e.UnblockAt)
}

func (e *DuringBreakError) Unwrap() error {
	return ErrDuringBreak
}

// NonWorkingDayError несет день недели, в который мастер не работает.
// errors.Is(err, ErrNonWorkingDay) == true.
type NonWorkingDayError struct {
	ISOWeekday int // 1 = понедельник ... 7 = воскресенье
}

func (e *NonWorkingDayError) Error() string {
	return fmt.Sprintf("%v: weekday %d", ErrNonWorkingDay, e.ISOWeekday)
}

func (e *NonWorkingDayError) Unwrap() error {
	return ErrNonWorkingDay
}
