package allocation

import (
	"sort"

	"github.com/m04kA/LTA-BookingService/internal/domain"
)

// FindEventRoom подбирает свободную комнату для праздника на окне window или
// возвращает nil, когда подходящей комнаты нет.
//
// Комнаты праздников никогда не делятся: комната свободна, только если ни одно
// активное EVENT-бронирование не держит в ней строго пересекающееся окно.
// Побеждает первая подходящая комната в порядке (вместимость, sortOrder).
func FindEventRoom(
	participants int,
	window Interval,
	rooms []domain.EventRoom,
	bookings []*domain.Booking,
	excludeBookingID *int64,
) *domain.EventRoom {
	candidates := make([]domain.EventRoom, 0, len(rooms))
	for _, room := range rooms {
		if room.IsActive && room.Capacity >= participants {
			candidates = append(candidates, room)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Capacity != candidates[j].Capacity {
			return candidates[i].Capacity < candidates[j].Capacity
		}
		return candidates[i].SortOrder < candidates[j].SortOrder
	})

	for _, room := range candidates {
		if eventRoomFree(room, window, bookings, excludeBookingID) {
			found := room
			return &found
		}
	}

	return nil
}

// eventRoomFree проверяет отсутствие пересекающихся праздников в комнате
func eventRoomFree(room domain.EventRoom, window Interval, bookings []*domain.Booking, excludeBookingID *int64) bool {
	for _, booking := range bookings {
		if !countsAgainstCapacity(booking, excludeBookingID) {
			continue
		}
		if booking.Type != domain.TypeEvent || booking.EventRoomID == nil {
			continue
		}
		if *booking.EventRoomID != room.ID {
			continue
		}
		if booking.EventStart == nil || booking.EventEnd == nil {
			continue
		}

		held := Interval{Start: *booking.EventStart, End: *booking.EventEnd}
		if window.Overlaps(held) {
			return false
		}
	}

	return true
}
