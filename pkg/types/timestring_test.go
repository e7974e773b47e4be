package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	t.Run("normalizes single digit hour", func(t *testing.T) {
		ts, err := NewTimeStringFromString("9:00")
		require.NoError(t, err)
		assert.Equal(t, TimeString("09:00"), ts)
	})

	t.Run("keeps two digit hour", func(t *testing.T) {
		ts, err := NewTimeStringFromString("18:30")
		require.NoError(t, err)
		assert.Equal(t, TimeString("18:30"), ts)
	})

	for _, bad := range []string{"24:00", "12:60", "noon", "12", "12:5", ""} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := NewTimeStringFromString(bad)
			assert.ErrorIs(t, err, ErrInvalidTimeFormat)
		})
	}
}

func TestMinutesAndBack(t *testing.T) {
	m, err := TimeString("13:45").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 13*60+45, m)

	assert.Equal(t, TimeString("13:45"), FromMinutes(m))
}

func TestFromMinutesOverflow(t *testing.T) {
	// Переполнение минут уходит в часы без обрезки по границе суток
	assert.Equal(t, TimeString("14:10"), FromMinutes(13*60+50+20))
	assert.Equal(t, TimeString("00:00"), FromMinutes(-5))
}

func TestAddMinutes(t *testing.T) {
	ts, err := TimeString("13:50").AddMinutes(25)
	require.NoError(t, err)
	assert.Equal(t, TimeString("14:15"), ts)

	_, err = TimeString("bad").AddMinutes(10)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))
	assert.True(t, TimeString("10:00").IsAfter("09:30"))
	assert.True(t, TimeString("9:00").Equal("09:00"))
}

func TestScan(t *testing.T) {
	t.Run("postgres TIME with seconds", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("14:30:00"))
		assert.Equal(t, TimeString("14:30"), ts)
	})

	t.Run("bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("09:15:00")))
		assert.Equal(t, TimeString("09:15"), ts)
	})

	t.Run("time.Time", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2026, 9, 7, 8, 45, 0, 0, time.UTC)))
		assert.Equal(t, TimeString("08:45"), ts)
	})

	t.Run("nil resets value", func(t *testing.T) {
		ts := TimeString("10:00")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})
}

func TestValue(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}
