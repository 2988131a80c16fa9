package allocation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LTA-BookingService/internal/domain"
)

func eventRoom(capacity, sortOrder int) domain.EventRoom {
	return domain.EventRoom{
		ID:        uuid.New(),
		BranchID:  uuid.New(),
		Capacity:  capacity,
		SortOrder: sortOrder,
		IsActive:  true,
	}
}

func eventBooking(id int64, roomID uuid.UUID, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		ID:                id,
		Type:              domain.TypeEvent,
		ParticipantsCount: 15,
		Status:            domain.StatusConfirmed,
		Mode:              domain.ModeSingle,
		EventRoomID:       &roomID,
		EventStart:        &start,
		EventEnd:          &end,
	}
}

func TestFindEventRoom_SmallestSufficientFirst(t *testing.T) {
	big := eventRoom(40, 1)
	small := eventRoom(20, 2)
	window := NewInterval(at(t, 14, 0), 120)

	room := FindEventRoom(18, window, []domain.EventRoom{big, small}, nil, nil)

	require.NotNil(t, room)
	assert.Equal(t, small.ID, room.ID)
}

func TestFindEventRoom_CapacityFilter(t *testing.T) {
	small := eventRoom(20, 1)
	window := NewInterval(at(t, 14, 0), 120)

	room := FindEventRoom(25, window, []domain.EventRoom{small}, nil, nil)

	assert.Nil(t, room)
}

func TestFindEventRoom_NoSharingEver(t *testing.T) {
	room := eventRoom(40, 1)
	window := NewInterval(at(t, 14, 0), 120)

	// Пересекающийся праздник в комнате - комната занята целиком,
	// независимо от свободной вместимости
	held := eventBooking(1, room.ID, at(t, 13, 0), at(t, 15, 0))

	found := FindEventRoom(15, window, []domain.EventRoom{room}, []*domain.Booking{held}, nil)
	assert.Nil(t, found)

	// Граничащее окно (заканчивается ровно в начале) не мешает
	adjacent := eventBooking(2, room.ID, at(t, 12, 0), at(t, 14, 0))
	found = FindEventRoom(15, window, []domain.EventRoom{room}, []*domain.Booking{adjacent}, nil)
	require.NotNil(t, found)
	assert.Equal(t, room.ID, found.ID)
}

func TestFindEventRoom_CancelledBookingReleasesRoom(t *testing.T) {
	room := eventRoom(40, 1)
	window := NewInterval(at(t, 14, 0), 120)

	cancelled := eventBooking(1, room.ID, at(t, 13, 0), at(t, 15, 0))
	cancelled.Status = domain.StatusCancelledByCompany

	found := FindEventRoom(15, window, []domain.EventRoom{room}, []*domain.Booking{cancelled}, nil)

	require.NotNil(t, found)
}

func TestFindEventRoom_FallsThroughToNextRoom(t *testing.T) {
	first := eventRoom(20, 1)
	second := eventRoom(20, 2)
	window := NewInterval(at(t, 14, 0), 120)

	held := eventBooking(1, first.ID, at(t, 13, 0), at(t, 15, 0))

	found := FindEventRoom(15, window, []domain.EventRoom{first, second}, []*domain.Booking{held}, nil)

	require.NotNil(t, found)
	assert.Equal(t, second.ID, found.ID)
}
