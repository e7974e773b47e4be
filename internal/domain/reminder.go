package domain

import "time"

// ReminderKind identifies which reminder of an appointment this is
type ReminderKind string

const (
	ReminderOneHour    ReminderKind = "reminder_1h"
	ReminderTenMinutes ReminderKind = "reminder_10m"
)

// Reminder represents a scheduled notification for an appointment
type Reminder struct {
	ID            int64
	AppointmentID int64
	Kind          ReminderKind
	FireAt        time.Time
	SentAt        *time.Time
	CreatedAt     time.Time
}

// IsDue returns true if the reminder should fire at the given moment
func (r *Reminder) IsDue(now time.Time) bool {
	return r.SentAt == nil && !r.FireAt.After(now)
}

// IsStale returns true if the reminder missed its window by more than maxAge.
// Протухшие напоминания не отправляются, а молча удаляются.
func (r *Reminder) IsStale(now time.Time, maxAge time.Duration) bool {
	return r.SentAt == nil && now.Sub(r.FireAt) > maxAge
}
