package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, TimeString("10:00").Validate())
	assert.NoError(t, TimeString("00:00").Validate())
	assert.NoError(t, TimeString("23:59").Validate())

	assert.ErrorIs(t, TimeString("24:00").Validate(), ErrInvalidTimeString)
	assert.ErrorIs(t, TimeString("10:60").Validate(), ErrInvalidTimeString)
	assert.ErrorIs(t, TimeString("1000").Validate(), ErrInvalidTimeString)
	assert.ErrorIs(t, TimeString("").Validate(), ErrInvalidTimeString)
}

func TestTimeString_TotalMinutes(t *testing.T) {
	minutes, err := TimeString("10:30").TotalMinutes()
	require.NoError(t, err)
	assert.Equal(t, 630, minutes)

	// "24:00" допустим как конец дня
	minutes, err = TimeString("24:00").TotalMinutes()
	require.NoError(t, err)
	assert.Equal(t, 1440, minutes)
}

func TestTimeString_AddMinutes(t *testing.T) {
	t.Run("смещение вперед", func(t *testing.T) {
		result, err := TimeString("10:00").AddMinutes(90)
		require.NoError(t, err)
		assert.Equal(t, TimeString("11:30"), result)
	})

	t.Run("смещение назад", func(t *testing.T) {
		result, err := TimeString("10:00").AddMinutes(-15)
		require.NoError(t, err)
		assert.Equal(t, TimeString("09:45"), result)
	})

	t.Run("ровно полночь представляется как 24:00", func(t *testing.T) {
		result, err := TimeString("23:30").AddMinutes(30)
		require.NoError(t, err)
		assert.Equal(t, TimeString("24:00"), result)
	})

	t.Run("выход за пределы суток", func(t *testing.T) {
		_, err := TimeString("23:30").AddMinutes(45)
		assert.ErrorIs(t, err, ErrTimeOutOfRange)

		_, err = TimeString("00:15").AddMinutes(-30)
		assert.ErrorIs(t, err, ErrTimeOutOfRange)
	})
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("10:00").IsBefore("22:00"))
	assert.False(t, TimeString("22:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))

	assert.True(t, TimeString("22:00").IsAfter("10:00"))
	assert.True(t, TimeString("24:00").IsAfter("23:59"))
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2025, 11, 14, 0, 0, 0, 0, time.UTC)

	result := TimeString("14:30").OnDate(date)
	assert.Equal(t, time.Date(2025, 11, 14, 14, 30, 0, 0, time.UTC), result)

	// "24:00" переходит на начало следующего дня
	result = TimeString("24:00").OnDate(date)
	assert.Equal(t, time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC), result)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, TimeString("10:30"), ts)

	require.NoError(t, ts.Scan([]byte("22:00")))
	assert.Equal(t, TimeString("22:00"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 11, 14, 9, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("09:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
