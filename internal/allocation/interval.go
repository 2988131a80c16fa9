package allocation

import (
	"time"

	"github.com/m04kA/LTA-BookingService/internal/domain"
)

// Interval полуоткрытый временной интервал [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval создает интервал длительностью minutes минут от start
func NewInterval(start time.Time, minutes int) Interval {
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(minutes) * time.Minute),
	}
}

// Overlaps проверяет строгое пересечение интервалов.
// Граничащие интервалы (конец одного == начало другого) НЕ пересекаются:
//   - [11:30,12:00) и [11:20,11:40) -> пересекаются (11:30-11:40)
//   - [11:30,12:00) и [11:00,11:30) -> не пересекаются
//   - [11:30,12:00) и [12:00,12:30) -> не пересекаются
func (i Interval) Overlaps(other Interval) bool {
	return other.Start.Before(i.End) && other.End.After(i.Start)
}

// SubSlots разбивает интервал на непрерывные суб-слоты по minutes минут.
// Последний суб-слот может быть короче, если длительность не кратна шагу.
func (i Interval) SubSlots(minutes int) []Interval {
	step := time.Duration(minutes) * time.Minute
	slots := make([]Interval, 0)

	for cur := i.Start; cur.Before(i.End); cur = cur.Add(step) {
		end := cur.Add(step)
		if end.After(i.End) {
			end = i.End
		}
		slots = append(slots, Interval{Start: cur, End: end})
	}

	return slots
}

// Minutes возвращает длительность интервала в минутах
func (i Interval) Minutes() int {
	return int(i.End.Sub(i.Start) / time.Minute)
}

// sessionInterval возвращает интервал игровой сессии
func sessionInterval(s domain.GameSession) Interval {
	return Interval{Start: s.StartDateTime, End: s.EndDateTime}
}
