package notifygateway

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Notification сообщение для шлюза уведомлений.
// Шлюз сам решает канал доставки (WhatsApp, SMS, email).
type Notification struct {
	Event         string  `json:"event"` // appointment_created | appointment_rescheduled | appointment_cancelled | reminder_1h | reminder_10m
	AppointmentID int64   `json:"appointmentId"`
	ClientName    string  `json:"clientName"`
	ClientPhone   string  `json:"clientPhone"`
	ClientEmail   *string `json:"clientEmail,omitempty"`
	BarberName    string  `json:"barberName,omitempty"`
	ServiceName   string  `json:"serviceName"`
	Date          string  `json:"date"`      // YYYY-MM-DD
	StartTime     string  `json:"startTime"` // HH:MM
}
