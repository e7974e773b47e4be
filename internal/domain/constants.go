package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes  = 30
	DefaultMaxConcurrentPerSlot = 1
	DefaultAdvanceBookingDays   = 0 // 0 = unlimited
	DefaultBreakPaddingMinutes  = 0
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours

	MinInServiceDurationMinutes = 5
	MaxInServiceDurationMinutes = 180 // 3 hours

	MinServicePrice = 0.01
	MaxServicePrice = 999999

	MinClientPhoneLength = 7
	MaxClientPhoneLength = 15

	MaxClientNameLength = 100
	MaxNotesLength      = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ValidStatuses все допустимые статусы записи
var ValidStatuses = []AppointmentStatus{
	StatusCreated,
	StatusScheduled,
	StatusConfirmed,
	StatusInService,
	StatusAttended,
	StatusCancelled,
}

// ActiveStatuses статусы, при которых запись занимает слот.
// Используются при подсчете занятости слотов.
var ActiveStatuses = []AppointmentStatus{
	StatusCreated,
	StatusScheduled,
	StatusConfirmed,
	StatusInService,
	StatusAttended,
}

// ValidPaymentMethods допустимые способы оплаты
var ValidPaymentMethods = []PaymentMethod{
	PaymentCash,
	PaymentCard,
	PaymentTransfer,
}
