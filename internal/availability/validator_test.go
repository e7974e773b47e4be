package availability

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnord/TurnORD-SchedulingService/internal/domain"
	"github.com/turnord/TurnORD-SchedulingService/pkg/ptr"
	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

// Мастер из сквозного сценария: 09:00 - 19:00, перерыв 13:00 - 14:00
// с padding 15 минут, работает понедельник - суббота.
func testSchedule() Schedule {
	return Schedule{
		WorkStart:            "09:00",
		WorkEnd:              "19:00",
		BreakStart:           ptr.Ptr(types.TimeString("13:00")),
		BreakEnd:             ptr.Ptr(types.TimeString("14:00")),
		BreakPaddingMinutes:  15,
		WorkDays:             []int{1, 2, 3, 4, 5, 6},
		SlotDurationMinutes:  30,
		MaxConcurrentPerSlot: 1,
	}
}

func TestValidateStartTime(t *testing.T) {
	sched := testSchedule()
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)

	t.Run("valid slot", func(t *testing.T) {
		assert.NoError(t, ValidateStartTime(sched, monday, "10:00"))
	})

	t.Run("last slot of the day is bookable", func(t *testing.T) {
		assert.NoError(t, ValidateStartTime(sched, monday, "18:30"))
	})

	t.Run("invalid time format", func(t *testing.T) {
		err := ValidateStartTime(sched, monday, "25:99")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("sunday is a non-working day", func(t *testing.T) {
		err := ValidateStartTime(sched, sunday, "10:00")
		require.ErrorIs(t, err, ErrNonWorkingDay)

		var nwd *NonWorkingDayError
		require.True(t, errors.As(err, &nwd))
		assert.Equal(t, 7, nwd.ISOWeekday)
	})

	t.Run("before opening", func(t *testing.T) {
		err := ValidateStartTime(sched, monday, "08:30")
		require.ErrorIs(t, err, ErrOutsideWorkingHours)

		var owh *OutsideWorkingHoursError
		require.True(t, errors.As(err, &owh))
		assert.Equal(t, types.TimeString("09:00"), owh.WorkStart)
		assert.Equal(t, types.TimeString("19:00"), owh.WorkEnd)
	})

	t.Run("closing time itself is rejected", func(t *testing.T) {
		err := ValidateStartTime(sched, monday, "19:00")
		assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	})

	t.Run("during break returns unblock time with padding", func(t *testing.T) {
		err := ValidateStartTime(sched, monday, "13:10")
		require.ErrorIs(t, err, ErrDuringBreak)

		var db *DuringBreakError
		require.True(t, errors.As(err, &db))
		assert.Equal(t, types.TimeString("14:15"), db.UnblockAt)
	})

	t.Run("padding tail still blocked", func(t *testing.T) {
		err := ValidateStartTime(sched, monday, "14:00")
		assert.ErrorIs(t, err, ErrDuringBreak)
	})

	t.Run("first slot after padding is open", func(t *testing.T) {
		assert.NoError(t, ValidateStartTime(sched, monday, "14:15"))
	})

	t.Run("non-working day wins over break window", func(t *testing.T) {
		// Порядок проверок: день недели раньше перерыва
		err := ValidateStartTime(sched, sunday, "13:10")
		assert.ErrorIs(t, err, ErrNonWorkingDay)
	})

	t.Run("outside hours wins over non-working day", func(t *testing.T) {
		// Порядок проверок: рабочие часы раньше дня недели
		err := ValidateStartTime(sched, sunday, "20:00")
		assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	})
}

func TestCheckBarber(t *testing.T) {
	active := &domain.Barber{IsActive: true}
	assert.NoError(t, CheckBarber(active))

	inactive := &domain.Barber{IsActive: false}
	assert.ErrorIs(t, CheckBarber(inactive), ErrBarberUnavailable)
}

func TestCheckCapacity(t *testing.T) {
	assert.NoError(t, CheckCapacity(0, 1))
	assert.ErrorIs(t, CheckCapacity(1, 1), ErrSlotConflict)
	assert.NoError(t, CheckCapacity(1, 2))
	// Невалидная вместимость заменяется дефолтной
	assert.ErrorIs(t, CheckCapacity(1, 0), ErrSlotConflict)
}

func TestValidateClient(t *testing.T) {
	t.Run("valid client", func(t *testing.T) {
		assert.NoError(t, ValidateClient("Juan Pérez", "80912345678", nil))
	})

	t.Run("valid client with email", func(t *testing.T) {
		assert.NoError(t, ValidateClient("Juan Pérez", "80912345678", ptr.Ptr("juan@example.com")))
	})

	t.Run("empty name", func(t *testing.T) {
		assert.ErrorIs(t, ValidateClient("", "80912345678", nil), ErrInvalidFormat)
	})

	t.Run("phone too short", func(t *testing.T) {
		assert.ErrorIs(t, ValidateClient("Juan", "123456", nil), ErrInvalidFormat)
	})

	t.Run("phone too long", func(t *testing.T) {
		assert.ErrorIs(t, ValidateClient("Juan", "1234567890123456", nil), ErrInvalidFormat)
	})

	t.Run("malformed email", func(t *testing.T) {
		assert.ErrorIs(t, ValidateClient("Juan", "80912345678", ptr.Ptr("not-an-email")), ErrInvalidFormat)
	})

	t.Run("empty email pointer is allowed", func(t *testing.T) {
		assert.NoError(t, ValidateClient("Juan", "80912345678", ptr.Ptr("")))
	})
}

// Сквозной сценарий: полный день мастера от генерации слотов до отказов.
func TestFullDayScenario(t *testing.T) {
	sched := testSchedule()
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)

	slots, err := GenerateSlots(sched.WorkStart, sched.WorkEnd, sched.SlotDurationMinutes)
	require.NoError(t, err)
	require.Len(t, slots, 20)

	usable := UsableSlots(slots, sched)
	require.Len(t, usable, 17)

	// Все пригодные слоты проходят валидацию
	for _, slot := range usable {
		assert.NoError(t, ValidateStartTime(sched, monday, slot), "slot %s", slot)
	}

	// Запись в перерыв отклоняется с временем разблокировки 14:15
	err = ValidateStartTime(sched, monday, "13:10")
	var db *DuringBreakError
	require.True(t, errors.As(err, &db))
	assert.Equal(t, types.TimeString("14:15"), db.UnblockAt)

	// Воскресенье - нерабочий день
	assert.ErrorIs(t, ValidateStartTime(sched, sunday, "10:00"), ErrNonWorkingDay)
}
