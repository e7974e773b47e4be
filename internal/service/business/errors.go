package business

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация бизнеса не найдена
	ErrConfigNotFound = errors.New("business config not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
