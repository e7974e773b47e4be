package models

import (
	"time"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
)

// Request модели

// UpdateConfigRequest запрос на обновление конфигурации бизнеса.
// Upsert: отсутствующая конфигурация создается.
type UpdateConfigRequest struct {
	BusinessName         *string `json:"businessName,omitempty"`
	ContactPhone         *string `json:"contactPhone,omitempty"`
	Address              *string `json:"address,omitempty"`
	DefaultWorkStart     *string `json:"defaultWorkStart,omitempty"` // "09:00"
	DefaultWorkEnd       *string `json:"defaultWorkEnd,omitempty"`   // "19:00"
	DefaultWorkDays      *[]int  `json:"defaultWorkDays,omitempty"`
	SlotDurationMinutes  *int    `json:"slotDurationMinutes,omitempty"`
	MaxConcurrentPerSlot *int    `json:"maxConcurrentPerSlot,omitempty"`
	AdvanceBookingDays   *int    `json:"advanceBookingDays,omitempty"`
	RemindersEnabled     *bool   `json:"remindersEnabled,omitempty"`
}

// GetStatsRequest запрос на статистику бизнеса за период
type GetStatsRequest struct {
	BusinessID int64     `json:"businessId"`
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
}

// Response модели

// ConfigResponse ответ с конфигурацией бизнеса
type ConfigResponse struct {
	ID         int64 `json:"id"`
	BusinessID int64 `json:"businessId"`

	BusinessName string  `json:"businessName"`
	ContactPhone *string `json:"contactPhone,omitempty"`
	Address      *string `json:"address,omitempty"`

	DefaultWorkStart string `json:"defaultWorkStart"`
	DefaultWorkEnd   string `json:"defaultWorkEnd"`
	DefaultWorkDays  []int  `json:"defaultWorkDays"`

	SlotDurationMinutes  int  `json:"slotDurationMinutes"`
	MaxConcurrentPerSlot int  `json:"maxConcurrentPerSlot"`
	AdvanceBookingDays   int  `json:"advanceBookingDays"`
	RemindersEnabled     bool `json:"remindersEnabled"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatsResponse агрегаты по записям бизнеса за период
type StatsResponse struct {
	BusinessID int64  `json:"businessId"`
	From       string `json:"from"` // "2026-09-01"
	To         string `json:"to"`

	Total     int     `json:"total"`
	Attended  int     `json:"attended"`
	Cancelled int     `json:"cancelled"`
	InService int     `json:"inService"`
	Upcoming  int     `json:"upcoming"`
	Revenue   float64 `json:"revenue"`
}

// FromDomainConfig конвертирует domain модель в response
func FromDomainConfig(cfg *domain.BusinessConfig) *ConfigResponse {
	return &ConfigResponse{
		ID:                   cfg.ID,
		BusinessID:           cfg.BusinessID,
		BusinessName:         cfg.BusinessName,
		ContactPhone:         cfg.ContactPhone,
		Address:              cfg.Address,
		DefaultWorkStart:     cfg.DefaultWorkStart.String(),
		DefaultWorkEnd:       cfg.DefaultWorkEnd.String(),
		DefaultWorkDays:      cfg.DefaultWorkDays,
		SlotDurationMinutes:  cfg.SlotDurationMinutes,
		MaxConcurrentPerSlot: cfg.MaxConcurrentPerSlot,
		AdvanceBookingDays:   cfg.AdvanceBookingDays,
		RemindersEnabled:     cfg.RemindersEnabled,
		CreatedAt:            cfg.CreatedAt,
		UpdatedAt:            cfg.UpdatedAt,
	}
}
