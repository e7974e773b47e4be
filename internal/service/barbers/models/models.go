package models

import (
	"time"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

// Request модели

// CreateBarberRequest запрос на создание мастера
type CreateBarberRequest struct {
	BusinessID          int64   `json:"businessId"`
	Name                string  `json:"name"`
	Phone               *string `json:"phone,omitempty"`
	PhotoURL            *string `json:"photoUrl,omitempty"`
	WorkStart           string  `json:"workStart"` // "09:00"
	WorkEnd             string  `json:"workEnd"`   // "19:00"
	BreakStart          *string `json:"breakStart,omitempty"`
	BreakEnd            *string `json:"breakEnd,omitempty"`
	BreakPaddingMinutes int     `json:"breakPaddingMinutes,omitempty"`
	WorkDays            []int   `json:"workDays"` // ISO: 1 = понедельник ... 7 = воскресенье
}

// UpdateBarberRequest запрос на обновление мастера (частичное)
type UpdateBarberRequest struct {
	Name                *string  `json:"name,omitempty"`
	Phone               *string  `json:"phone,omitempty"`
	PhotoURL            *string  `json:"photoUrl,omitempty"`
	WorkStart           *string  `json:"workStart,omitempty"`
	WorkEnd             *string  `json:"workEnd,omitempty"`
	BreakStart          *string  `json:"breakStart,omitempty"`
	BreakEnd            *string  `json:"breakEnd,omitempty"`
	BreakPaddingMinutes *int     `json:"breakPaddingMinutes,omitempty"`
	WorkDays            *[]int   `json:"workDays,omitempty"`
	IsActive            *bool    `json:"isActive,omitempty"`
}

// Response модели

// BarberResponse ответ с данными мастера
type BarberResponse struct {
	ID                  int64   `json:"id"`
	BusinessID          int64   `json:"businessId"`
	Name                string  `json:"name"`
	Phone               *string `json:"phone,omitempty"`
	PhotoURL            *string `json:"photoUrl,omitempty"`
	WorkStart           string  `json:"workStart"`
	WorkEnd             string  `json:"workEnd"`
	BreakStart          *string `json:"breakStart,omitempty"`
	BreakEnd            *string `json:"breakEnd,omitempty"`
	BreakPaddingMinutes int     `json:"breakPaddingMinutes"`
	WorkDays            []int   `json:"workDays"`
	IsActive            bool    `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BarberListResponse ответ со списком мастеров
type BarberListResponse struct {
	Barbers []BarberResponse `json:"barbers"`
	Total   int              `json:"total"`
}

// FromDomainBarber конвертирует domain модель в response
func FromDomainBarber(b *domain.Barber) *BarberResponse {
	resp := &BarberResponse{
		ID:                  b.ID,
		BusinessID:          b.BusinessID,
		Name:                b.Name,
		Phone:               b.Phone,
		PhotoURL:            b.PhotoURL,
		WorkStart:           b.WorkStart.String(),
		WorkEnd:             b.WorkEnd.String(),
		BreakPaddingMinutes: b.BreakPaddingMinutes,
		WorkDays:            b.WorkDays,
		IsActive:            b.IsActive,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}

	resp.BreakStart = timeStringPtr(b.BreakStart)
	resp.BreakEnd = timeStringPtr(b.BreakEnd)

	return resp
}

// FromDomainBarberList конвертирует список domain моделей в response
func FromDomainBarberList(barbers []*domain.Barber) *BarberListResponse {
	result := make([]BarberResponse, len(barbers))
	for i, b := range barbers {
		result[i] = *FromDomainBarber(b)
	}
	return &BarberListResponse{
		Barbers: result,
		Total:   len(result),
	}
}

func timeStringPtr(t *types.TimeString) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.String()
	return &s
}
