package get_available_slots

import (
	"time"

	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID int64     // ID бизнеса
	BarberID   int64     // ID мастера
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date       time.Time // Дата, на которую запрашивались слоты
	BusinessID int64     // ID бизнеса
	BarberID   int64     // ID мастера
	Slots      []Slot    // Список слотов со свободными местами
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность слота в минутах
	AvailableSpots  int              // Свободных мест в слоте
	TotalSpots      int              // Вместимость слота
}
