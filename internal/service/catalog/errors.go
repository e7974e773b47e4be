package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceInUse возвращается при попытке удалить услугу с незавершенными записями
	ErrServiceInUse = errors.New("service has active appointments")

	// ErrDuplicateName возвращается при создании услуги с занятым именем
	ErrDuplicateName = errors.New("service name already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
