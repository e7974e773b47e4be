package notifygateway

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifygateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("notifygateway client: invalid response")

	// ErrGatewayUnavailable возвращается, когда шлюз уведомлений недоступен.
	// Уведомления best-effort: запись живет дальше, доставка не гарантируется.
	ErrGatewayUnavailable = errors.New("notifygateway unavailable: notification skipped")
)
