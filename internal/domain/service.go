package domain

import "time"

// Service represents a service offered by the business (haircut, shave, ...)
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	Description     *string
	Price           float64
	DurationMinutes int
	IsActive        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
