package create_appointment

import "errors"

// Ошибки доступности (нерабочий день, вне рабочих часов, перерыв, занятый слот)
// пробрасываются из пакета availability без обертки, чтобы handler мог
// достать их параметры через errors.As.
var (
	// ErrBarberNotFound возвращается, когда мастер не найден
	ErrBarberNotFound = errors.New("create_appointment: barber not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или отключена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
