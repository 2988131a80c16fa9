package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/LTA-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BranchID == uuid.Nil {
		return fmt.Errorf("%w: branchID is required", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Participants < 1 {
		return fmt.Errorf("%w: participants must be positive", ErrInvalidInput)
	}

	switch req.Type {
	case domain.TypeGame:
		if err := validateGameParams(req); err != nil {
			return err
		}
	case domain.TypeEvent:
		if req.EventType == nil {
			return fmt.Errorf("%w: eventType is required for EVENT booking", ErrInvalidInput)
		}
		switch *req.EventType {
		case domain.EventActive, domain.EventLaser, domain.EventMix:
		default:
			return fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, *req.EventType)
		}
		if req.Participants < domain.EventMinParticipants {
			return ErrBelowEventMinimum
		}
	default:
		return fmt.Errorf("%w: unknown booking type %q", ErrInvalidInput, req.Type)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateGameParams проверяет параметры GAME-бронирования
func validateGameParams(req *Request) error {
	if req.GameArea == nil {
		return fmt.Errorf("%w: gameArea is required for GAME booking", ErrInvalidInput)
	}

	switch *req.GameArea {
	case domain.AreaActive, domain.AreaLaser:
		if req.NumberOfGames == nil {
			return fmt.Errorf("%w: numberOfGames is required for %s", ErrInvalidInput, *req.GameArea)
		}
		if *req.NumberOfGames < domain.MinNumberOfGames || *req.NumberOfGames > domain.MaxNumberOfGames {
			return fmt.Errorf("%w: numberOfGames must be between %d and %d",
				ErrInvalidInput, domain.MinNumberOfGames, domain.MaxNumberOfGames)
		}
	case domain.AreaMix:
		// MIX всегда ровно одна игра
	default:
		return fmt.Errorf("%w: unknown game area %q", ErrInvalidInput, *req.GameArea)
	}

	return nil
}

// parseStart разбирает дату и время запроса в момент начала в тайзоне площадки
func parseStart(dateStr, timeStr string, location *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrInvalidInput, dateStr)
	}

	clock, err := time.Parse(domain.TimeFormat, timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid time %q, expected HH:MM", ErrInvalidInput, timeStr)
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		location,
	), nil
}

// effectiveNumberOfGames возвращает количество игр (MIX всегда 1)
func effectiveNumberOfGames(req *Request) int {
	if req.GameArea != nil && *req.GameArea == domain.AreaMix {
		return 1
	}
	if req.NumberOfGames != nil {
		return *req.NumberOfGames
	}
	return 1
}
