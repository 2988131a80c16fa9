package allocation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LTA-BookingService/internal/domain"
)

func testSnapshot(laser []domain.LaserRoom, event []domain.EventRoom, bookings []*domain.Booking) Snapshot {
	return Snapshot{
		Capacity: domain.BranchCapacity{
			BranchID:                   uuid.New(),
			GameDurationMinutes:        30,
			MaxConcurrentActivePlayers: 84,
			LaserExclusiveThreshold:    10,
		},
		LaserRooms: laser,
		EventRooms: event,
		Bookings:   bookings,
	}
}

func TestBuildSessions_ActiveChained(t *testing.T) {
	snap := testSnapshot(nil, nil, nil)

	result, err := BuildSessions(BuildRequest{
		BookingType:   domain.TypeGame,
		GameArea:      domain.AreaActive,
		Participants:  8,
		NumberOfGames: 3,
		Start:         at(t, 14, 0),
	}, snap)

	require.NoError(t, err)
	require.Len(t, result.Sessions, 3)
	assert.Equal(t, domain.ModeSingle, result.Mode)

	for i, s := range result.Sessions {
		assert.Equal(t, i+1, s.SessionOrder)
		assert.Equal(t, domain.AreaActive, s.GameArea)
		assert.Nil(t, s.LaserRoomID)
		assert.Equal(t, 0, s.PauseBeforeMinutes)
	}

	// Сессии сцеплены встык, без пауз
	assert.Equal(t, at(t, 14, 0), result.Sessions[0].StartDateTime)
	assert.Equal(t, at(t, 14, 30), result.Sessions[0].EndDateTime)
	assert.Equal(t, at(t, 14, 30), result.Sessions[1].StartDateTime)
	assert.Equal(t, at(t, 15, 0), result.Sessions[2].StartDateTime)
	assert.Equal(t, at(t, 15, 30), result.Sessions[2].EndDateTime)
}

func TestBuildSessions_LaserSharedSingleRoom(t *testing.T) {
	room := laserRoom(20, 1)
	snap := testSnapshot([]domain.LaserRoom{room}, nil, nil)

	result, err := BuildSessions(BuildRequest{
		BookingType:   domain.TypeGame,
		GameArea:      domain.AreaLaser,
		Participants:  6,
		NumberOfGames: 2,
		Start:         at(t, 14, 0),
	}, snap)

	require.NoError(t, err)
	require.Len(t, result.Sessions, 2)
	assert.Equal(t, domain.ModeShared, result.Mode)
	assert.Equal(t, []uuid.UUID{room.ID}, result.LaserRoomIDs)

	for _, s := range result.Sessions {
		require.NotNil(t, s.LaserRoomID)
		assert.Equal(t, room.ID, *s.LaserRoomID)
	}
}

func TestBuildSessions_MaxiSegmentYieldsRowPerRoom(t *testing.T) {
	big := laserRoom(20, 1)
	small := laserRoom(10, 2)
	snap := testSnapshot([]domain.LaserRoom{big, small}, nil, nil)

	result, err := BuildSessions(BuildRequest{
		BookingType:   domain.TypeGame,
		GameArea:      domain.AreaLaser,
		Participants:  25,
		NumberOfGames: 1,
		Start:         at(t, 14, 0),
	}, snap)

	require.NoError(t, err)
	assert.Equal(t, domain.ModeMaxi, result.Mode)

	// Одна игра, две строки: одинаковый SessionOrder и границы времени,
	// разные комнаты
	require.Len(t, result.Sessions, 2)
	assert.Equal(t, 1, result.Sessions[0].SessionOrder)
	assert.Equal(t, 1, result.Sessions[1].SessionOrder)
	assert.Equal(t, result.Sessions[0].StartDateTime, result.Sessions[1].StartDateTime)
	assert.Equal(t, result.Sessions[0].EndDateTime, result.Sessions[1].EndDateTime)
	assert.NotEqual(t, *result.Sessions[0].LaserRoomID, *result.Sessions[1].LaserRoomID)
}

func TestBuildSessions_ExclusiveMode(t *testing.T) {
	room := laserRoom(20, 1)
	snap := testSnapshot([]domain.LaserRoom{room}, nil, nil)

	result, err := BuildSessions(BuildRequest{
		BookingType:   domain.TypeGame,
		GameArea:      domain.AreaLaser,
		Participants:  12, // выше порога 10
		NumberOfGames: 1,
		Start:         at(t, 14, 0),
	}, snap)

	require.NoError(t, err)
	assert.Equal(t, domain.ModeExclusive, result.Mode)
}

func TestBuildSessions_MixIsActiveThenLaser(t *testing.T) {
	room := laserRoom(20, 1)
	snap := testSnapshot([]domain.LaserRoom{room}, nil, nil)

	result, err := BuildSessions(BuildRequest{
		BookingType:   domain.TypeGame,
		GameArea:      domain.AreaMix,
		Participants:  6,
		NumberOfGames: 1,
		Start:         at(t, 14, 0),
	}, snap)

	require.NoError(t, err)
	require.Len(t, result.Sessions, 2)
	assert.Equal(t, domain.AreaActive, result.Sessions[0].GameArea)
	assert.Equal(t, domain.AreaLaser, result.Sessions[1].GameArea)
	assert.Equal(t, at(t, 14, 30), result.Sessions[1].StartDateTime)
}

func TestBuildSessions_EventMixLayout(t *testing.T) {
	laser := laserRoom(20, 1)
	room := eventRoom(30, 1)
	snap := testSnapshot([]domain.LaserRoom{laser}, []domain.EventRoom{room}, nil)

	result, err := BuildSessions(BuildRequest{
		BookingType:  domain.TypeEvent,
		EventType:    domain.EventMix,
		Participants: 16,
		Start:        at(t, 14, 0),
	}, snap)

	require.NoError(t, err)
	require.NotNil(t, result.EventRoomID)
	assert.Equal(t, room.ID, *result.EventRoomID)
	require.NotNil(t, result.EventWindow)
	assert.Equal(t, at(t, 14, 0), result.EventWindow.Start)
	assert.Equal(t, at(t, 16, 0), result.EventWindow.End)

	// Первая игра через 15 минут после начала окна комнаты
	require.Len(t, result.Sessions, 2)
	assert.Equal(t, domain.AreaActive, result.Sessions[0].GameArea)
	assert.Equal(t, at(t, 14, 15), result.Sessions[0].StartDateTime)
	assert.Equal(t, domain.AreaLaser, result.Sessions[1].GameArea)
	assert.Equal(t, at(t, 14, 45), result.Sessions[1].StartDateTime)
	assert.Equal(t, at(t, 15, 15), result.Sessions[1].EndDateTime)
}

func TestBuildSessions_LaserRoomIDsDeterministic(t *testing.T) {
	big := laserRoom(20, 1)
	small := laserRoom(10, 2)
	snap := testSnapshot([]domain.LaserRoom{big, small}, nil, nil)

	req := BuildRequest{
		BookingType:   domain.TypeGame,
		GameArea:      domain.AreaLaser,
		Participants:  25,
		NumberOfGames: 2,
		Start:         at(t, 14, 0),
	}

	first, err := BuildSessions(req, snap)
	require.NoError(t, err)

	// Комнаты идут в порядке назначения: по возрастанию вместимости,
	// без дублей между сегментами
	require.Equal(t, []uuid.UUID{small.ID, big.ID}, first.LaserRoomIDs)

	for i := 0; i < 10; i++ {
		again, err := BuildSessions(req, snap)
		require.NoError(t, err)
		assert.Equal(t, first.LaserRoomIDs, again.LaserRoomIDs)
	}
}

func TestBuildSessions_AbortsWhenLaserCapacityLost(t *testing.T) {
	room := laserRoom(10, 1)
	// Состояние "изменилось": комнату уже держит эксклюзивная группа
	existing := laserBooking(1, 10, domain.ModeExclusive, at(t, 14, 0), at(t, 14, 30), room.ID)
	snap := testSnapshot([]domain.LaserRoom{room}, nil, []*domain.Booking{existing})

	_, err := BuildSessions(BuildRequest{
		BookingType:   domain.TypeGame,
		GameArea:      domain.AreaLaser,
		Participants:  4,
		NumberOfGames: 1,
		Start:         at(t, 14, 0),
	}, snap)

	require.ErrorIs(t, err, ErrCapacityLost)
	assert.Contains(t, err.Error(), "14:00")
}

func TestBuildSessions_AbortsWhenEventRoomLost(t *testing.T) {
	room := eventRoom(30, 1)
	held := eventBooking(1, room.ID, at(t, 13, 0), at(t, 15, 0))
	snap := testSnapshot(nil, []domain.EventRoom{room}, []*domain.Booking{held})

	_, err := BuildSessions(BuildRequest{
		BookingType:  domain.TypeEvent,
		EventType:    domain.EventActive,
		Participants: 16,
		Start:        at(t, 14, 0),
	}, snap)

	require.ErrorIs(t, err, ErrEventRoomLost)
}

// Round-trip: собранные сессии, добавленные в снапшот как новое бронирование,
// не ломают повторную проверку того же исходного снапшота
func TestBuildSessions_RoundTripRevalidates(t *testing.T) {
	room := laserRoom(20, 1)
	snap := testSnapshot([]domain.LaserRoom{room}, nil, nil)

	result, err := BuildSessions(BuildRequest{
		BookingType:   domain.TypeGame,
		GameArea:      domain.AreaLaser,
		Participants:  6,
		NumberOfGames: 2,
		Start:         at(t, 14, 0),
	}, snap)
	require.NoError(t, err)

	// Материализуем бронирование и проверяем, что вторая группа такого же
	// размера все еще помещается рядом (20 - 6 = 14 >= 6)
	booked := &domain.Booking{
		ID:                99,
		Type:              domain.TypeGame,
		ParticipantsCount: 6,
		Status:            domain.StatusConfirmed,
		Mode:              result.Mode,
		Sessions:          result.Sessions,
	}
	snap.Bookings = append(snap.Bookings, booked)

	second, err := BuildSessions(BuildRequest{
		BookingType:   domain.TypeGame,
		GameArea:      domain.AreaLaser,
		Participants:  6,
		NumberOfGames: 2,
		Start:         at(t, 14, 0),
	}, snap)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeShared, second.Mode)
}
