package barbers

import "errors"

var (
	// ErrBarberNotFound возвращается, когда мастер не найден
	ErrBarberNotFound = errors.New("barber not found")

	// ErrBarberInUse возвращается при попытке удалить мастера с незавершенными записями
	ErrBarberInUse = errors.New("barber has active appointments")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
