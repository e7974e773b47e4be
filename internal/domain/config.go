package domain

import (
	"time"

	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

// BusinessConfig represents scheduling defaults for a business.
// Barber-level schedule fields override these when set.
type BusinessConfig struct {
	ID         int64
	BusinessID int64

	BusinessName string
	ContactPhone *string
	Address      *string

	DefaultWorkStart types.TimeString
	DefaultWorkEnd   types.TimeString
	DefaultWorkDays  []int

	SlotDurationMinutes  int
	MaxConcurrentPerSlot int

	// За сколько дней вперед открыта запись. 0 = без ограничения.
	AdvanceBookingDays int

	RemindersEnabled bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAdvanceBookingLimit returns true if booking horizon is limited
func (c *BusinessConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// SupportsParallelAppointments returns true if a slot can hold more than one appointment
func (c *BusinessConfig) SupportsParallelAppointments() bool {
	return c.MaxConcurrentPerSlot > 1
}
