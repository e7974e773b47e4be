package domain

import (
	"time"

	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

// Barber represents a barber and his personal working schedule
type Barber struct {
	ID         int64
	BusinessID int64
	Name       string
	Phone      *string
	PhotoURL   *string

	WorkStart types.TimeString
	WorkEnd   types.TimeString

	// Перерыв опционален: оба поля либо заданы, либо nil
	BreakStart          *types.TimeString
	BreakEnd            *types.TimeString
	BreakPaddingMinutes int

	// ISO weekdays: 1 = понедельник ... 7 = воскресенье
	WorkDays []int

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorksOn returns true if the barber works on the given ISO weekday (1..7)
func (b *Barber) WorksOn(isoWeekday int) bool {
	for _, d := range b.WorkDays {
		if d == isoWeekday {
			return true
		}
	}
	return false
}

// HasBreak returns true if the barber has a fully specified break window
func (b *Barber) HasBreak() bool {
	return b.BreakStart != nil && b.BreakEnd != nil &&
		!b.BreakStart.IsZero() && !b.BreakEnd.IsZero()
}

// ISOWeekday converts time.Weekday to ISO numbering (Sunday = 7)
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
