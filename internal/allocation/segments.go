package allocation

import (
	"time"

	"github.com/m04kA/LTA-BookingService/internal/domain"
)

// Segment один игровой сегмент бронирования: зона + временное окно
type Segment struct {
	Area   domain.GameArea
	Window Interval
}

// GameSegments раскладывает игры GAME-бронирования в последовательные сегменты
// без пауз. MIX всегда ровно одна игра, разложенная в пару ACTIVE+LASER - та же
// двухсегментная схема, что у праздника event_mix.
func GameSegments(area domain.GameArea, numberOfGames int, start time.Time, gameDurationMinutes int) []Segment {
	var areas []domain.GameArea

	switch area {
	case domain.AreaActive:
		for i := 0; i < numberOfGames; i++ {
			areas = append(areas, domain.AreaActive)
		}
	case domain.AreaLaser:
		for i := 0; i < numberOfGames; i++ {
			areas = append(areas, domain.AreaLaser)
		}
	case domain.AreaMix:
		areas = []domain.GameArea{domain.AreaActive, domain.AreaLaser}
	}

	return chainSegments(areas, start, gameDurationMinutes)
}

// EventSegments раскладывает игровую программу праздника. Первая игра начинается
// через domain.EventSetupBufferMinutes после начала окна комнаты.
func EventSegments(eventType domain.EventType, roomStart time.Time, gameDurationMinutes int) []Segment {
	var areas []domain.GameArea

	switch eventType {
	case domain.EventActive:
		areas = []domain.GameArea{domain.AreaActive, domain.AreaActive}
	case domain.EventLaser:
		areas = []domain.GameArea{domain.AreaLaser, domain.AreaLaser}
	case domain.EventMix:
		areas = []domain.GameArea{domain.AreaActive, domain.AreaLaser}
	}

	firstGame := roomStart.Add(domain.EventSetupBufferMinutes * time.Minute)
	return chainSegments(areas, firstGame, gameDurationMinutes)
}

// EventSpan возвращает полное окно ресурсов праздника: двухчасовое окно
// комнаты, расширенное до конца последнего игрового сегмента. При играх от
// 60 минут сегменты заканчиваются позже окна комнаты, и снапшот бронирований
// обязан покрывать этот хвост.
func EventSpan(eventType domain.EventType, roomStart time.Time, gameDurationMinutes int) Interval {
	span := NewInterval(roomStart, domain.EventDurationMinutes)

	segments := EventSegments(eventType, roomStart, gameDurationMinutes)
	if last := segments[len(segments)-1].Window.End; last.After(span.End) {
		span.End = last
	}

	return span
}

// chainSegments строит сегменты встык, без промежутков
func chainSegments(areas []domain.GameArea, start time.Time, gameDurationMinutes int) []Segment {
	segments := make([]Segment, 0, len(areas))
	cur := start

	for _, area := range areas {
		window := NewInterval(cur, gameDurationMinutes)
		segments = append(segments, Segment{Area: area, Window: window})
		cur = window.End
	}

	return segments
}
