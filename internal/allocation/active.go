package allocation

import "github.com/m04kA/LTA-BookingService/internal/domain"

// ActiveWindowResult результат проверки окна зоны ACTIVE
type ActiveWindowResult struct {
	OK bool

	// PeakObserved максимальная наблюдаемая загрузка (существующие + новая
	// группа) среди всех суб-слотов. Используется для диагностики и поиска
	// альтернатив.
	PeakObserved int

	// FailedSubSlot первый суб-слот, на котором превышен потолок (nil при OK)
	FailedSubSlot *Interval
}

// CheckActiveWindow проверяет, поместится ли группа participants в зону ACTIVE
// на окне window при потолке maxPlayers.
//
// Окно разбивается на суб-слоты по domain.SubSlotMinutes минут. Для каждого
// суб-слота суммируются участники всех активных бронирований, имеющих хотя бы
// одну ACTIVE-сессию, строго пересекающую суб-слот; каждое бронирование
// учитывается не более одного раза на суб-слот. Первое превышение потолка
// завершает проверку.
func CheckActiveWindow(
	participants int,
	window Interval,
	bookings []*domain.Booking,
	maxPlayers int,
	excludeBookingID *int64,
) ActiveWindowResult {
	result := ActiveWindowResult{OK: true}

	for _, subSlot := range window.SubSlots(domain.SubSlotMinutes) {
		existing := 0

		for _, booking := range bookings {
			if !countsAgainstCapacity(booking, excludeBookingID) {
				continue
			}

			for _, session := range booking.Sessions {
				if session.GameArea != domain.AreaActive {
					continue
				}
				if subSlot.Overlaps(sessionInterval(session)) {
					existing += booking.ParticipantsCount
					break // бронирование считается один раз на суб-слот
				}
			}
		}

		load := existing + participants
		if load > result.PeakObserved {
			result.PeakObserved = load
		}

		if load > maxPlayers {
			failed := subSlot
			result.OK = false
			result.FailedSubSlot = &failed
			return result
		}
	}

	return result
}
