package allocation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LTA-BookingService/internal/domain"
)

func activeBooking(id int64, participants int, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		ID:                id,
		BranchID:          uuid.New(),
		Type:              domain.TypeGame,
		ParticipantsCount: participants,
		Status:            domain.StatusConfirmed,
		Mode:              domain.ModeSingle,
		Sessions: []domain.GameSession{
			{
				GameArea:      domain.AreaActive,
				StartDateTime: start,
				EndDateTime:   end,
				SessionOrder:  1,
			},
		},
	}
}

// Сценарий: потолок 84, существующие группы 10 и 20 на 14:00-14:30,
// новая группа на 14:10-14:40: 55 участников не влезают (85 > 84), 54 влезают.
func TestCheckActiveWindow_CeilingBoundary(t *testing.T) {
	bookings := []*domain.Booking{
		activeBooking(1, 10, at(t, 14, 0), at(t, 14, 30)),
		activeBooking(2, 20, at(t, 14, 0), at(t, 14, 30)),
	}
	window := Interval{Start: at(t, 14, 10), End: at(t, 14, 40)}

	rejected := CheckActiveWindow(55, window, bookings, 84, nil)
	require.False(t, rejected.OK)
	require.NotNil(t, rejected.FailedSubSlot)
	assert.Equal(t, 85, rejected.PeakObserved)

	accepted := CheckActiveWindow(54, window, bookings, 84, nil)
	require.True(t, accepted.OK)
	assert.Nil(t, accepted.FailedSubSlot)
	assert.Equal(t, 84, accepted.PeakObserved)
}

func TestCheckActiveWindow_BookingCountedOncePerSubSlot(t *testing.T) {
	// Два ACTIVE-сегмента одного бронирования пересекают один суб-слот -
	// участники не должны считаться дважды
	b := activeBooking(1, 30, at(t, 14, 0), at(t, 14, 30))
	b.Sessions = append(b.Sessions, domain.GameSession{
		GameArea:      domain.AreaActive,
		StartDateTime: at(t, 14, 10),
		EndDateTime:   at(t, 14, 40),
		SessionOrder:  2,
	})

	window := Interval{Start: at(t, 14, 0), End: at(t, 14, 30)}
	result := CheckActiveWindow(50, window, []*domain.Booking{b}, 84, nil)

	require.True(t, result.OK)
	assert.Equal(t, 80, result.PeakObserved)
}

func TestCheckActiveWindow_CancelledExcluded(t *testing.T) {
	cancelled := activeBooking(1, 80, at(t, 14, 0), at(t, 15, 0))
	cancelled.Status = domain.StatusCancelledByUser

	noShow := activeBooking(2, 80, at(t, 14, 0), at(t, 15, 0))
	noShow.Status = domain.StatusNoShow

	window := Interval{Start: at(t, 14, 0), End: at(t, 14, 30)}
	result := CheckActiveWindow(84, window, []*domain.Booking{cancelled, noShow}, 84, nil)

	require.True(t, result.OK)
	assert.Equal(t, 84, result.PeakObserved)
}

func TestCheckActiveWindow_ExcludeBookingID(t *testing.T) {
	// Редактируемое бронирование не учитывает само себя
	existing := activeBooking(7, 40, at(t, 14, 0), at(t, 14, 30))
	window := Interval{Start: at(t, 14, 0), End: at(t, 14, 30)}

	withSelf := CheckActiveWindow(50, window, []*domain.Booking{existing}, 84, nil)
	require.False(t, withSelf.OK)

	excludeID := int64(7)
	withoutSelf := CheckActiveWindow(50, window, []*domain.Booking{existing}, 84, &excludeID)
	require.True(t, withoutSelf.OK)
}

func TestCheckActiveWindow_LaserSessionsIgnored(t *testing.T) {
	roomID := uuid.New()
	b := activeBooking(1, 80, at(t, 14, 0), at(t, 14, 30))
	b.Sessions[0].GameArea = domain.AreaLaser
	b.Sessions[0].LaserRoomID = &roomID

	window := Interval{Start: at(t, 14, 0), End: at(t, 14, 30)}
	result := CheckActiveWindow(84, window, []*domain.Booking{b}, 84, nil)

	require.True(t, result.OK)
}

func TestCheckActiveWindow_FailsOnFirstOverloadedSubSlot(t *testing.T) {
	// Перегружен только второй суб-слот окна
	bookings := []*domain.Booking{
		activeBooking(1, 60, at(t, 14, 15), at(t, 14, 45)),
	}
	window := Interval{Start: at(t, 14, 0), End: at(t, 15, 0)}

	result := CheckActiveWindow(30, window, bookings, 84, nil)

	require.False(t, result.OK)
	require.NotNil(t, result.FailedSubSlot)
	assert.Equal(t, at(t, 14, 15), result.FailedSubSlot.Start)
}
