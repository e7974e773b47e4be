package reschedule_appointment

import "errors"

// Ошибки доступности нового слота пробрасываются из пакета availability
// без обертки, чтобы handler мог достать их параметры через errors.As.
var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrBarberNotFound возвращается, когда мастер записи не найден
	ErrBarberNotFound = errors.New("reschedule_appointment: barber not found")

	// ErrNotReschedulable возвращается, когда запись уже в работе или завершена
	ErrNotReschedulable = errors.New("reschedule_appointment: appointment can not be rescheduled")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("reschedule_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("reschedule_appointment: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
