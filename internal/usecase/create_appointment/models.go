package create_appointment

import (
	"time"

	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	BusinessID  int64            // ID бизнеса
	BarberID    int64            // ID мастера
	ServiceID   int64            // ID услуги
	ClientName  string           // Имя клиента
	ClientPhone string           // Телефон клиента
	ClientEmail *string          // Email клиента (опционально)
	Date        time.Time        // Дата записи (без времени)
	StartTime   types.TimeString // Время начала слота (например, "10:00")
	Notes       *string          // Дополнительные заметки (опционально)

	// Быстрая запись от стойки: создается в статусе created вместо scheduled
	Quick bool
}

// Response модель ответа с созданной записью
type Response struct {
	ID         int64            // ID созданной записи
	BusinessID int64            // ID бизнеса
	BarberID   int64            // ID мастера
	ServiceID  int64            // ID услуги
	Date       time.Time        // Дата записи
	StartTime  types.TimeString // Время начала
	Status     string           // Статус записи

	// Денормализованные данные услуги
	ServiceName            string  // Название услуги
	ServicePrice           float64 // Цена услуги
	ServiceDurationMinutes int     // Плановая длительность

	ClientName  string  // Имя клиента
	ClientPhone string  // Телефон клиента
	ClientEmail *string // Email клиента
	Notes       *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
