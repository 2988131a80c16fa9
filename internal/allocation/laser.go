package allocation

import (
	"sort"

	"github.com/google/uuid"

	"github.com/m04kA/LTA-BookingService/internal/domain"
)

// LaserMode режим назначения лазертаг-комнат
type LaserMode string

const (
	LaserModeAuto       LaserMode = "auto"       // подбор по общим правилам
	LaserModeForceSmall LaserMode = "forceSmall" // принудительно самая маленькая комната
	LaserModeForceLarge LaserMode = "forceLarge" // принудительно самая большая комната
	LaserModeForceAll   LaserMode = "forceAll"   // принудительно все комнаты разом
)

// LaserAllocation назначенные комнаты для одного игрового сегмента
type LaserAllocation struct {
	RoomIDs          []uuid.UUID
	RequiresTwoRooms bool // группа разбита на несколько комнат ("maxi")
}

// AllocateLaserRooms назначает лазертаг-комнаты для группы participants на окне
// window или возвращает nil, когда выполнимого назначения нет. nil - штатный
// исход "нет емкости", не ошибка: вызывающие обязаны различать его с
// инфраструктурным сбоем.
//
// Правила остаточной емкости комнаты, в порядке старшинства:
//  1. Любое пересекающееся maxi-бронирование (2+ комнаты одновременно)
//     блокирует весь лазертаг филиала.
//  2. Пересекающееся эксклюзивное бронирование в комнате обнуляет её остаток.
//  3. Иначе остаток = вместимость - сумма участников пересекающихся
//     бронирований этой комнаты.
func AllocateLaserRooms(
	participants int,
	window Interval,
	rooms []domain.LaserRoom,
	exclusiveThreshold int,
	bookings []*domain.Booking,
	mode LaserMode,
	excludeBookingID *int64,
) *LaserAllocation {
	active := activeRoomsAscending(rooms)
	if len(active) == 0 {
		return nil
	}

	remaining := remainingCapacity(active, window, exclusiveThreshold, bookings, excludeBookingID)

	switch mode {
	case LaserModeForceSmall:
		room := active[0] // уже отсортированы по возрастанию вместимости
		if remaining[room.ID] >= participants {
			return &LaserAllocation{RoomIDs: []uuid.UUID{room.ID}}
		}
		return nil

	case LaserModeForceLarge:
		room := largestRoom(active)
		if remaining[room.ID] >= participants {
			return &LaserAllocation{RoomIDs: []uuid.UUID{room.ID}}
		}
		return nil

	case LaserModeForceAll:
		// Объединенное назначение использует только полностью свободные
		// комнаты: оно создает maxi-окно, в котором делить комнаты нельзя
		return allocateAllEmpty(active, remaining, participants)
	}

	// auto
	if participants >= exclusiveThreshold {
		return allocateExclusive(active, remaining, participants)
	}
	return allocateShared(active, remaining, participants)
}

// allocateExclusive подбирает комнату для группы, требующей эксклюзивности:
// наименьшая полностью пустая комната достаточной вместимости, иначе все
// пустые комнаты вместе (единственный путь, порождающий maxi-бронирование)
func allocateExclusive(rooms []domain.LaserRoom, remaining map[uuid.UUID]int, participants int) *LaserAllocation {
	for _, room := range rooms {
		if remaining[room.ID] == room.Capacity && room.Capacity >= participants {
			return &LaserAllocation{RoomIDs: []uuid.UUID{room.ID}}
		}
	}
	return allocateAllEmpty(rooms, remaining, participants)
}

// allocateShared подбирает первую комнату с достаточным остатком.
// Жадный проход по возрастанию вместимости не всегда глобально оптимален, но
// детерминирован и оставляет большие комнаты свободными под будущие
// эксклюзивные группы.
func allocateShared(rooms []domain.LaserRoom, remaining map[uuid.UUID]int, participants int) *LaserAllocation {
	for _, room := range rooms {
		if remaining[room.ID] >= participants {
			return &LaserAllocation{RoomIDs: []uuid.UUID{room.ID}}
		}
	}
	return nil
}

// allocateAllEmpty объединяет все полностью пустые комнаты в одно назначение
func allocateAllEmpty(rooms []domain.LaserRoom, remaining map[uuid.UUID]int, participants int) *LaserAllocation {
	var ids []uuid.UUID
	total := 0

	for _, room := range rooms {
		if remaining[room.ID] == room.Capacity {
			ids = append(ids, room.ID)
			total += room.Capacity
		}
	}

	if total < participants || len(ids) == 0 {
		return nil
	}

	return &LaserAllocation{
		RoomIDs:          ids,
		RequiresTwoRooms: len(ids) >= 2,
	}
}

// remainingCapacity вычисляет остаточную емкость каждой комнаты на окне window
func remainingCapacity(
	rooms []domain.LaserRoom,
	window Interval,
	exclusiveThreshold int,
	bookings []*domain.Booking,
	excludeBookingID *int64,
) map[uuid.UUID]int {
	remaining := make(map[uuid.UUID]int, len(rooms))
	for _, room := range rooms {
		remaining[room.ID] = room.Capacity
	}

	// Правило 1: пересекающееся maxi-бронирование блокирует весь лазертаг
	for _, booking := range bookings {
		if !countsAgainstCapacity(booking, excludeBookingID) {
			continue
		}
		if !isMaxi(booking, window) {
			continue
		}
		if len(occupiedRooms(booking, window)) > 0 {
			for id := range remaining {
				remaining[id] = 0
			}
			return remaining
		}
	}

	// Правила 2 и 3: по каждой комнате
	for _, booking := range bookings {
		if !countsAgainstCapacity(booking, excludeBookingID) {
			continue
		}

		for _, roomID := range occupiedRooms(booking, window) {
			if _, ok := remaining[roomID]; !ok {
				continue
			}
			if isExclusive(booking, exclusiveThreshold) {
				remaining[roomID] = 0
				continue
			}
			remaining[roomID] -= booking.ParticipantsCount
			if remaining[roomID] < 0 {
				remaining[roomID] = 0
			}
		}
	}

	return remaining
}

// occupiedRooms возвращает различные лазертаг-комнаты, которые бронирование
// занимает в пределах окна (каждая комната один раз)
func occupiedRooms(booking *domain.Booking, window Interval) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID

	for _, session := range booking.Sessions {
		if session.GameArea != domain.AreaLaser || session.LaserRoomID == nil {
			continue
		}
		if !window.Overlaps(sessionInterval(session)) {
			continue
		}
		if _, ok := seen[*session.LaserRoomID]; ok {
			continue
		}
		seen[*session.LaserRoomID] = struct{}{}
		ids = append(ids, *session.LaserRoomID)
	}

	return ids
}

// isMaxi проверяет, является ли бронирование maxi-назначением на окне.
// Основной источник - явный AllocationMode; для строк, созданных до ввода
// тега, остается проверка по количеству различных комнат.
func isMaxi(booking *domain.Booking, window Interval) bool {
	if booking.Mode == domain.ModeMaxi {
		return true
	}
	return booking.Mode == "" && len(occupiedRooms(booking, window)) >= 2
}

// isExclusive проверяет, держит ли бронирование комнату эксклюзивно
func isExclusive(booking *domain.Booking, exclusiveThreshold int) bool {
	if booking.Mode == domain.ModeExclusive {
		return true
	}
	return booking.Mode == "" && booking.ParticipantsCount >= exclusiveThreshold
}

// activeRoomsAscending возвращает активные комнаты, отсортированные по
// (вместимость, sortOrder) по возрастанию
func activeRoomsAscending(rooms []domain.LaserRoom) []domain.LaserRoom {
	active := make([]domain.LaserRoom, 0, len(rooms))
	for _, room := range rooms {
		if room.IsActive {
			active = append(active, room)
		}
	}

	sort.Slice(active, func(i, j int) bool {
		if active[i].Capacity != active[j].Capacity {
			return active[i].Capacity < active[j].Capacity
		}
		return active[i].SortOrder < active[j].SortOrder
	})

	return active
}

// largestRoom возвращает комнату максимальной вместимости
// (при равенстве побеждает меньший sortOrder)
func largestRoom(roomsAscending []domain.LaserRoom) domain.LaserRoom {
	best := roomsAscending[0]
	for _, room := range roomsAscending[1:] {
		if room.Capacity > best.Capacity {
			best = room
		}
	}
	return best
}
