package reschedule_appointment

import (
	"time"

	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID int64            // ID переносимой записи
	BusinessID    int64            // ID бизнеса (запись другого бизнеса не видна)
	BarberID      *int64           // Новый мастер (опционально, nil - мастер не меняется)
	Date          time.Time        // Новая дата
	StartTime     types.TimeString // Новое время начала
}

// Response модель ответа с перенесенной записью
type Response struct {
	ID         int64            // ID записи
	BusinessID int64            // ID бизнеса
	BarberID   int64            // ID мастера
	Date       time.Time        // Новая дата записи
	StartTime  types.TimeString // Новое время начала
	Status     string           // Статус записи
}
