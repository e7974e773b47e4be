package availability

import (
	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

// Schedule эффективное расписание мастера на день:
// персональные поля мастера поверх дефолтов бизнеса.
type Schedule struct {
	WorkStart types.TimeString
	WorkEnd   types.TimeString

	BreakStart          *types.TimeString
	BreakEnd            *types.TimeString
	BreakPaddingMinutes int

	WorkDays []int

	SlotDurationMinutes  int
	MaxConcurrentPerSlot int
}

// Resolve строит эффективное расписание мастера.
// Пустые поля мастера заменяются дефолтами бизнеса, а при их отсутствии - константами.
func Resolve(barber *domain.Barber, cfg *domain.BusinessConfig) Schedule {
	s := Schedule{
		WorkStart:            barber.WorkStart,
		WorkEnd:              barber.WorkEnd,
		BreakStart:           barber.BreakStart,
		BreakEnd:             barber.BreakEnd,
		BreakPaddingMinutes:  barber.BreakPaddingMinutes,
		WorkDays:             barber.WorkDays,
		SlotDurationMinutes:  domain.DefaultSlotDurationMinutes,
		MaxConcurrentPerSlot: domain.DefaultMaxConcurrentPerSlot,
	}

	if cfg != nil {
		if s.WorkStart.IsZero() {
			s.WorkStart = cfg.DefaultWorkStart
		}
		if s.WorkEnd.IsZero() {
			s.WorkEnd = cfg.DefaultWorkEnd
		}
		if len(s.WorkDays) == 0 {
			s.WorkDays = cfg.DefaultWorkDays
		}
		if cfg.SlotDurationMinutes > 0 {
			s.SlotDurationMinutes = cfg.SlotDurationMinutes
		}
		if cfg.MaxConcurrentPerSlot > 0 {
			s.MaxConcurrentPerSlot = cfg.MaxConcurrentPerSlot
		}
	}

	return s
}

// WorksOn возвращает true, если isoWeekday (1..7) входит в рабочие дни
func (s Schedule) WorksOn(isoWeekday int) bool {
	for _, d := range s.WorkDays {
		if d == isoWeekday {
			return true
		}
	}
	return false
}

// breakWindow возвращает окно перерыва [start, end+padding) в минутах от начала дня.
// Окно инертно (ok == false), если перерыв не задан, время невалидно
// или конец не позже начала.
func (s Schedule) breakWindow() (start, end int, ok bool) {
	if s.BreakStart == nil || s.BreakEnd == nil {
		return 0, 0, false
	}

	bs, err := s.BreakStart.Minutes()
	if err != nil {
		return 0, 0, false
	}
	be, err := s.BreakEnd.Minutes()
	if err != nil {
		return 0, 0, false
	}
	if be <= bs {
		return 0, 0, false
	}

	padding := s.BreakPaddingMinutes
	if padding < 0 {
		padding = 0
	}

	return bs, be + padding, true
}

// BreakUnblockTime возвращает время, с которого окно перерыва снова открыто.
// Второй результат false, если перерыва нет или окно инертно.
func (s Schedule) BreakUnblockTime() (types.TimeString, bool) {
	_, end, ok := s.breakWindow()
	if !ok {
		return "", false
	}
	return types.FromMinutes(end), true
}
