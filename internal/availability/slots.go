package availability

import (
	"fmt"

	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

// GenerateSlots генерирует все стартовые времена слотов за рабочий день.
// Слоты идут от начала работы с фиксированным шагом, пока старт слота
// СТРОГО раньше конца рабочего дня. Конец последнего слота может совпадать
// с закрытием: клиент, записанный на последний слот, дообслуживается.
//
// Пример: 09:00 - 19:00, шаг 30 -> 20 слотов от 09:00 до 18:30.
func GenerateSlots(workStart, workEnd types.TimeString, stepMinutes int) ([]types.TimeString, error) {
	if stepMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot step must be positive, got %d", ErrInvalidFormat, stepMinutes)
	}

	start, err := workStart.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: work start: %v", ErrInvalidFormat, err)
	}
	end, err := workEnd.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: work end: %v", ErrInvalidFormat, err)
	}

	if end <= start {
		return []types.TimeString{}, nil
	}

	slots := make([]types.TimeString, 0, (end-start)/stepMinutes+1)
	for t := start; t < end; t += stepMinutes {
		slots = append(slots, types.FromMinutes(t))
	}

	return slots, nil
}

// UsableSlots убирает из списка слоты, попадающие в окно перерыва мастера
// (включая padding после перерыва).
func UsableSlots(slots []types.TimeString, sched Schedule) []types.TimeString {
	bs, be, ok := sched.breakWindow()
	if !ok {
		return slots
	}

	usable := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		m, err := slot.Minutes()
		if err != nil {
			continue
		}
		if m >= bs && m < be {
			continue
		}
		usable = append(usable, slot)
	}

	return usable
}

// CountAtSlot подсчитывает активные записи на точно такое же стартовое время.
// Занятость считается по равенству минут, а не по пересечению интервалов:
// каждый слот закрепляется за одним клиентом на мастера.
func CountAtSlot(slot types.TimeString, taken []types.TimeString) int {
	count := 0
	for _, t := range taken {
		if t.Equal(slot) {
			count++
		}
	}
	return count
}
