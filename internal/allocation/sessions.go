package allocation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/LTA-BookingService/internal/domain"
)

// BuildRequest подтвержденное назначение, для которого собираются сессии
type BuildRequest struct {
	BookingType   domain.BookingType
	GameArea      domain.GameArea  // для GAME
	EventType     domain.EventType // для EVENT
	Participants  int
	NumberOfGames int
	Start         time.Time // GAME: начало первой игры; EVENT: начало окна комнаты

	// ExcludeBookingID бронирование, не учитывающее само себя (редактирование)
	ExcludeBookingID *int64
}

// BuildResult материализованные сессии и итоговые атрибуты бронирования
type BuildResult struct {
	Sessions     []domain.GameSession
	Mode         domain.AllocationMode
	LaserRoomIDs []uuid.UUID // различные комнаты по всем сегментам, в порядке первого назначения

	// Заполняются только для EVENT
	EventRoomID *uuid.UUID
	EventWindow *Interval
}

// BuildSessions детерминированно собирает упорядоченные, сцепленные по времени
// строки GameSession для подтвержденного назначения. Вызывается только после
// успешной проверки доступности; если какой-то сегмент уже нельзя обеспечить
// (состояние изменилось между проверкой и сборкой), возвращает ошибку с
// указанием времени проблемного сегмента.
func BuildSessions(req BuildRequest, snap Snapshot) (*BuildResult, error) {
	result := &BuildResult{Mode: domain.ModeSingle}

	segments, err := planSegments(req, snap, result)
	if err != nil {
		return nil, err
	}

	laserRooms := make(map[uuid.UUID]struct{})
	anyMulti := false
	anyLaser := false

	for i, segment := range segments {
		order := i + 1

		switch segment.Area {
		case domain.AreaActive:
			check := CheckActiveWindow(
				req.Participants,
				segment.Window,
				snap.Bookings,
				snap.Capacity.MaxConcurrentActivePlayers,
				req.ExcludeBookingID,
			)
			if !check.OK {
				return nil, fmt.Errorf("%w: active area at %s", ErrCapacityLost,
					segment.Window.Start.Format("2006-01-02 15:04"))
			}

			result.Sessions = append(result.Sessions, domain.GameSession{
				GameArea:      domain.AreaActive,
				StartDateTime: segment.Window.Start,
				EndDateTime:   segment.Window.End,
				SessionOrder:  order,
			})

		case domain.AreaLaser:
			anyLaser = true
			alloc := AllocateLaserRooms(
				req.Participants,
				segment.Window,
				snap.LaserRooms,
				snap.Capacity.LaserExclusiveThreshold,
				snap.Bookings,
				LaserModeAuto,
				req.ExcludeBookingID,
			)
			if alloc == nil {
				return nil, fmt.Errorf("%w: laser rooms at %s", ErrCapacityLost,
					segment.Window.Start.Format("2006-01-02 15:04"))
			}

			if alloc.RequiresTwoRooms {
				anyMulti = true
			}

			// Одна строка на каждую назначенную комнату: maxi-сегмент дает
			// несколько строк с одинаковым SessionOrder и границами времени
			for _, roomID := range alloc.RoomIDs {
				id := roomID
				if _, seen := laserRooms[id]; !seen {
					laserRooms[id] = struct{}{}
					result.LaserRoomIDs = append(result.LaserRoomIDs, id)
				}
				result.Sessions = append(result.Sessions, domain.GameSession{
					GameArea:      domain.AreaLaser,
					StartDateTime: segment.Window.Start,
					EndDateTime:   segment.Window.End,
					LaserRoomID:   &id,
					SessionOrder:  order,
				})
			}
		}
	}

	switch {
	case anyMulti:
		result.Mode = domain.ModeMaxi
	case anyLaser && req.Participants >= snap.Capacity.LaserExclusiveThreshold:
		result.Mode = domain.ModeExclusive
	case anyLaser:
		result.Mode = domain.ModeShared
	}

	return result, nil
}

// planSegments строит сегменты и, для EVENT, резервирует комнату праздника
func planSegments(req BuildRequest, snap Snapshot, result *BuildResult) ([]Segment, error) {
	if req.BookingType == domain.TypeGame {
		return GameSegments(req.GameArea, req.NumberOfGames, req.Start, snap.Capacity.GameDurationMinutes), nil
	}

	window := NewInterval(req.Start, domain.EventDurationMinutes)
	room := FindEventRoom(req.Participants, window, snap.EventRooms, snap.Bookings, req.ExcludeBookingID)
	if room == nil {
		return nil, fmt.Errorf("%w: window starting %s", ErrEventRoomLost,
			window.Start.Format("2006-01-02 15:04"))
	}

	result.EventRoomID = &room.ID
	result.EventWindow = &window

	return EventSegments(req.EventType, req.Start, snap.Capacity.GameDurationMinutes), nil
}
