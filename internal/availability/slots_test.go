package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnord/TurnORD-SchedulingService/pkg/ptr"
	"github.com/turnord/TurnORD-SchedulingService/pkg/types"
)

func TestGenerateSlots(t *testing.T) {
	t.Run("full working day with 30 minute step", func(t *testing.T) {
		slots, err := GenerateSlots("09:00", "19:00", 30)
		require.NoError(t, err)

		// Старт последнего слота строго раньше закрытия: 18:30 входит, 19:00 нет
		require.Len(t, slots, 20)
		assert.Equal(t, types.TimeString("09:00"), slots[0])
		assert.Equal(t, types.TimeString("18:30"), slots[19])
	})

	t.Run("step not dividing the day evenly", func(t *testing.T) {
		slots, err := GenerateSlots("09:00", "10:00", 45)
		require.NoError(t, err)

		// 09:45 < 10:00, поэтому слот генерируется, даже если его конец за закрытием
		require.Len(t, slots, 2)
		assert.Equal(t, types.TimeString("09:45"), slots[1])
	})

	t.Run("end before start yields no slots", func(t *testing.T) {
		slots, err := GenerateSlots("19:00", "09:00", 30)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("invalid step", func(t *testing.T) {
		_, err := GenerateSlots("09:00", "19:00", 0)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("invalid work start format", func(t *testing.T) {
		_, err := GenerateSlots("9am", "19:00", 30)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}

func TestUsableSlots(t *testing.T) {
	sched := Schedule{
		WorkStart:           "09:00",
		WorkEnd:             "19:00",
		BreakStart:          ptr.Ptr(types.TimeString("13:00")),
		BreakEnd:            ptr.Ptr(types.TimeString("14:00")),
		BreakPaddingMinutes: 15,
		WorkDays:            []int{1, 2, 3, 4, 5, 6},
		SlotDurationMinutes: 30,
	}

	t.Run("break window with padding removes covered slots", func(t *testing.T) {
		slots, err := GenerateSlots(sched.WorkStart, sched.WorkEnd, sched.SlotDurationMinutes)
		require.NoError(t, err)
		require.Len(t, slots, 20)

		usable := UsableSlots(slots, sched)

		// Окно перерыва [13:00, 14:15) выбивает 13:00, 13:30 и 14:00
		require.Len(t, usable, 17)
		assert.NotContains(t, usable, types.TimeString("13:00"))
		assert.NotContains(t, usable, types.TimeString("13:30"))
		assert.NotContains(t, usable, types.TimeString("14:00"))
		assert.Contains(t, usable, types.TimeString("12:30"))
		assert.Contains(t, usable, types.TimeString("14:30"))
	})

	t.Run("no break keeps all slots", func(t *testing.T) {
		noBreak := sched
		noBreak.BreakStart = nil
		noBreak.BreakEnd = nil

		slots, err := GenerateSlots(noBreak.WorkStart, noBreak.WorkEnd, noBreak.SlotDurationMinutes)
		require.NoError(t, err)

		assert.Len(t, UsableSlots(slots, noBreak), 20)
	})

	t.Run("malformed break window is inert", func(t *testing.T) {
		malformed := sched
		malformed.BreakStart = ptr.Ptr(types.TimeString("14:00"))
		malformed.BreakEnd = ptr.Ptr(types.TimeString("13:00"))

		slots, err := GenerateSlots(malformed.WorkStart, malformed.WorkEnd, malformed.SlotDurationMinutes)
		require.NoError(t, err)

		assert.Len(t, UsableSlots(slots, malformed), 20)
	})

	t.Run("padding carries over the hour boundary", func(t *testing.T) {
		padded := sched
		padded.BreakStart = ptr.Ptr(types.TimeString("13:00"))
		padded.BreakEnd = ptr.Ptr(types.TimeString("13:50"))
		padded.BreakPaddingMinutes = 20

		unblock, ok := padded.BreakUnblockTime()
		require.True(t, ok)
		assert.Equal(t, types.TimeString("14:10"), unblock)
	})
}

func TestCountAtSlot(t *testing.T) {
	taken := []types.TimeString{"10:00", "10:30", "10:00", "9:00"}

	assert.Equal(t, 2, CountAtSlot("10:00", taken))
	assert.Equal(t, 1, CountAtSlot("10:30", taken))
	// Сравнение нормализует "9:00" и "09:00"
	assert.Equal(t, 1, CountAtSlot("09:00", taken))
	assert.Equal(t, 0, CountAtSlot("11:00", taken))
}
