package barber

import "errors"

var (
	// ErrBarberNotFound возвращается, когда мастер не найден
	ErrBarberNotFound = errors.New("barber.repository: barber not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("barber.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("barber.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("barber.repository: failed to scan row")
)
