package allocation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LTA-BookingService/internal/domain"
)

func laserRoom(capacity, sortOrder int) domain.LaserRoom {
	return domain.LaserRoom{
		ID:        uuid.New(),
		BranchID:  uuid.New(),
		Capacity:  capacity,
		SortOrder: sortOrder,
		IsActive:  true,
	}
}

func laserBooking(id int64, participants int, mode domain.AllocationMode, start, end time.Time, roomIDs ...uuid.UUID) *domain.Booking {
	b := &domain.Booking{
		ID:                id,
		Type:              domain.TypeGame,
		ParticipantsCount: participants,
		Status:            domain.StatusConfirmed,
		Mode:              mode,
	}
	for _, roomID := range roomIDs {
		rid := roomID
		b.Sessions = append(b.Sessions, domain.GameSession{
			GameArea:      domain.AreaLaser,
			StartDateTime: start,
			EndDateTime:   end,
			LaserRoomID:   &rid,
			SessionOrder:  1,
		})
	}
	return b
}

// Сценарий: порог эксклюзивности 10, пустые комнаты на 20 и 10 жилетов,
// группа из 12: назначается комната на 20 (наименьшая пустая, куда влезают),
// а не комната на 10.
func TestAllocateLaserRooms_ExclusivePicksSmallestEmptyThatFits(t *testing.T) {
	big := laserRoom(20, 1)
	small := laserRoom(10, 2)
	window := NewInterval(at(t, 14, 0), 30)

	alloc := AllocateLaserRooms(12, window, []domain.LaserRoom{big, small}, 10, nil, LaserModeAuto, nil)

	require.NotNil(t, alloc)
	require.Len(t, alloc.RoomIDs, 1)
	assert.Equal(t, big.ID, alloc.RoomIDs[0])
	assert.False(t, alloc.RequiresTwoRooms)
}

// Сценарий: группа из 25 при пустых комнатах 20+10 и пороге 10 -
// maxi-назначение обеих комнат.
func TestAllocateLaserRooms_MaxiWhenNoSingleRoomFits(t *testing.T) {
	big := laserRoom(20, 1)
	small := laserRoom(10, 2)
	window := NewInterval(at(t, 14, 0), 30)

	alloc := AllocateLaserRooms(25, window, []domain.LaserRoom{big, small}, 10, nil, LaserModeAuto, nil)

	require.NotNil(t, alloc)
	assert.ElementsMatch(t, []uuid.UUID{big.ID, small.ID}, alloc.RoomIDs)
	assert.True(t, alloc.RequiresTwoRooms)
}

func TestAllocateLaserRooms_ExclusiveRejectsWhenTotalInsufficient(t *testing.T) {
	rooms := []domain.LaserRoom{laserRoom(20, 1), laserRoom(10, 2)}
	window := NewInterval(at(t, 14, 0), 30)

	alloc := AllocateLaserRooms(31, window, rooms, 10, nil, LaserModeAuto, nil)

	assert.Nil(t, alloc)
}

func TestAllocateLaserRooms_SharedGreedyAscending(t *testing.T) {
	small := laserRoom(10, 2)
	big := laserRoom(20, 1)
	window := NewInterval(at(t, 14, 0), 30)

	// Группа из 4 ниже порога - первая по возрастанию комната с остатком
	alloc := AllocateLaserRooms(4, window, []domain.LaserRoom{big, small}, 10, nil, LaserModeAuto, nil)

	require.NotNil(t, alloc)
	assert.Equal(t, small.ID, alloc.RoomIDs[0])
}

func TestAllocateLaserRooms_SharedFitsAroundExistingGroup(t *testing.T) {
	small := laserRoom(10, 2)
	big := laserRoom(20, 1)
	window := NewInterval(at(t, 14, 0), 30)

	// В маленькой комнате уже сидит группа из 8 (ниже порога)
	existing := laserBooking(1, 8, domain.ModeShared, at(t, 14, 0), at(t, 14, 30), small.ID)

	alloc := AllocateLaserRooms(4, window, []domain.LaserRoom{big, small}, 10,
		[]*domain.Booking{existing}, LaserModeAuto, nil)

	require.NotNil(t, alloc)
	assert.Equal(t, big.ID, alloc.RoomIDs[0], "остатка маленькой комнаты (2) не хватает, выбирается большая")
}

func TestAllocateLaserRooms_ExclusiveBookingBlocksItsRoom(t *testing.T) {
	small := laserRoom(10, 2)
	big := laserRoom(20, 1)
	window := NewInterval(at(t, 14, 0), 30)

	// Эксклюзивная группа из 11 в большой комнате: остаток комнаты 0,
	// даже если 20 - 11 = 9
	existing := laserBooking(1, 11, domain.ModeExclusive, at(t, 14, 0), at(t, 14, 30), big.ID)

	alloc := AllocateLaserRooms(5, window, []domain.LaserRoom{big, small}, 10,
		[]*domain.Booking{existing}, LaserModeAuto, nil)

	require.NotNil(t, alloc)
	assert.Equal(t, small.ID, alloc.RoomIDs[0])
}

func TestAllocateLaserRooms_MaxiBlocksEntireBranch(t *testing.T) {
	small := laserRoom(10, 2)
	big := laserRoom(20, 1)
	window := NewInterval(at(t, 14, 0), 30)

	// maxi-бронирование держит обе комнаты: весь лазертаг закрыт, даже для
	// группы из 1 человека
	existing := laserBooking(1, 25, domain.ModeMaxi, at(t, 14, 0), at(t, 14, 30), big.ID, small.ID)

	alloc := AllocateLaserRooms(1, window, []domain.LaserRoom{big, small}, 10,
		[]*domain.Booking{existing}, LaserModeAuto, nil)

	assert.Nil(t, alloc)
}

func TestAllocateLaserRooms_MaxiDetectedWithoutModeTag(t *testing.T) {
	small := laserRoom(10, 2)
	big := laserRoom(20, 1)
	window := NewInterval(at(t, 14, 0), 30)

	// Строки, созданные до ввода AllocationMode: maxi выводится из числа
	// различных комнат
	existing := laserBooking(1, 25, "", at(t, 14, 0), at(t, 14, 30), big.ID, small.ID)

	alloc := AllocateLaserRooms(1, window, []domain.LaserRoom{big, small}, 10,
		[]*domain.Booking{existing}, LaserModeAuto, nil)

	assert.Nil(t, alloc)
}

func TestAllocateLaserRooms_NonOverlappingBookingIgnored(t *testing.T) {
	room := laserRoom(10, 1)
	window := NewInterval(at(t, 14, 0), 30)

	// Граничащее бронирование (заканчивается ровно в начале окна) не мешает
	existing := laserBooking(1, 10, domain.ModeExclusive, at(t, 13, 30), at(t, 14, 0), room.ID)

	alloc := AllocateLaserRooms(8, window, []domain.LaserRoom{room}, 10,
		[]*domain.Booking{existing}, LaserModeAuto, nil)

	require.NotNil(t, alloc)
	assert.Equal(t, room.ID, alloc.RoomIDs[0])
}

func TestAllocateLaserRooms_ForceModes(t *testing.T) {
	small := laserRoom(10, 2)
	big := laserRoom(20, 1)
	rooms := []domain.LaserRoom{big, small}
	window := NewInterval(at(t, 14, 0), 30)

	t.Run("forceSmall выбирает наименьшую комнату", func(t *testing.T) {
		alloc := AllocateLaserRooms(8, window, rooms, 10, nil, LaserModeForceSmall, nil)
		require.NotNil(t, alloc)
		assert.Equal(t, small.ID, alloc.RoomIDs[0])
	})

	t.Run("forceSmall отклоняет, когда не влезают", func(t *testing.T) {
		alloc := AllocateLaserRooms(11, window, rooms, 10, nil, LaserModeForceSmall, nil)
		assert.Nil(t, alloc)
	})

	t.Run("forceLarge выбирает наибольшую комнату", func(t *testing.T) {
		alloc := AllocateLaserRooms(15, window, rooms, 10, nil, LaserModeForceLarge, nil)
		require.NotNil(t, alloc)
		assert.Equal(t, big.ID, alloc.RoomIDs[0])
	})

	t.Run("forceAll объединяет только полностью пустые комнаты", func(t *testing.T) {
		// Большая комната частично занята - forceAll может использовать
		// только пустую маленькую
		existing := laserBooking(1, 3, domain.ModeShared, at(t, 14, 0), at(t, 14, 30), big.ID)
		alloc := AllocateLaserRooms(12, window, rooms, 10, []*domain.Booking{existing}, LaserModeForceAll, nil)
		assert.Nil(t, alloc)

		free := AllocateLaserRooms(12, window, rooms, 10, nil, LaserModeForceAll, nil)
		require.NotNil(t, free)
		assert.ElementsMatch(t, []uuid.UUID{big.ID, small.ID}, free.RoomIDs)
	})
}

func TestAllocateLaserRooms_InactiveRoomsIgnored(t *testing.T) {
	inactive := laserRoom(30, 1)
	inactive.IsActive = false
	active := laserRoom(10, 2)
	window := NewInterval(at(t, 14, 0), 30)

	alloc := AllocateLaserRooms(15, window, []domain.LaserRoom{inactive, active}, 20, nil, LaserModeAuto, nil)

	assert.Nil(t, alloc, "неактивная комната не участвует в назначении")
}

// Идемпотентность: одинаковый снапшот - одинаковый результат
func TestAllocateLaserRooms_Deterministic(t *testing.T) {
	small := laserRoom(10, 2)
	big := laserRoom(20, 1)
	rooms := []domain.LaserRoom{big, small}
	window := NewInterval(at(t, 14, 0), 30)
	existing := []*domain.Booking{
		laserBooking(1, 5, domain.ModeShared, at(t, 14, 0), at(t, 14, 30), small.ID),
	}

	first := AllocateLaserRooms(4, window, rooms, 10, existing, LaserModeAuto, nil)
	second := AllocateLaserRooms(4, window, rooms, 10, existing, LaserModeAuto, nil)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first, second)
}
