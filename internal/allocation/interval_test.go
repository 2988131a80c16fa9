package allocation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2025, 11, 14, hour, min, 0, 0, time.UTC)
}

func TestInterval_Overlaps(t *testing.T) {
	slot := Interval{Start: at(t, 11, 30), End: at(t, 12, 0)}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"частичное пересечение в начале", Interval{Start: at(t, 11, 20), End: at(t, 11, 40)}, true},
		{"граничат слева", Interval{Start: at(t, 11, 0), End: at(t, 11, 30)}, false},
		{"граничат справа", Interval{Start: at(t, 12, 0), End: at(t, 12, 30)}, false},
		{"полностью внутри", Interval{Start: at(t, 11, 35), End: at(t, 11, 55)}, true},
		{"полностью накрывает", Interval{Start: at(t, 11, 0), End: at(t, 13, 0)}, true},
		{"целиком раньше", Interval{Start: at(t, 10, 0), End: at(t, 11, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slot.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(slot))
		})
	}
}

func TestInterval_SubSlots(t *testing.T) {
	window := Interval{Start: at(t, 14, 0), End: at(t, 15, 0)}

	slots := window.SubSlots(15)

	require.Len(t, slots, 4)
	assert.Equal(t, at(t, 14, 0), slots[0].Start)
	assert.Equal(t, at(t, 14, 15), slots[0].End)
	assert.Equal(t, at(t, 14, 45), slots[3].Start)
	assert.Equal(t, at(t, 15, 0), slots[3].End)

	// суб-слоты непрерывны
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].End, slots[i].Start)
	}
}

func TestInterval_Minutes(t *testing.T) {
	assert.Equal(t, 30, NewInterval(at(t, 14, 0), 30).Minutes())
	assert.Equal(t, 120, Interval{Start: at(t, 10, 0), End: at(t, 12, 0)}.Minutes())
}
