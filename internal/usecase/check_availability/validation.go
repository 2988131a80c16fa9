package check_availability

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/LTA-BookingService/internal/domain"
)

// validateRequest валидирует жесткие входные данные запроса.
// Ошибки бизнес-таксономии (§ причины отказа) сюда не входят - они
// возвращаются как отрицательный вердикт, а не как ошибка.
func validateRequest(req *Request) error {
	if req.BranchID == uuid.Nil {
		return fmt.Errorf("%w: branchID is required", ErrInvalidInput)
	}

	if req.Participants < 1 {
		return fmt.Errorf("%w: participants must be positive", ErrInvalidInput)
	}

	switch req.Type {
	case domain.TypeGame, domain.TypeEvent:
	default:
		return fmt.Errorf("%w: unknown booking type %q", ErrInvalidInput, req.Type)
	}

	if req.Type == domain.TypeGame && req.GameArea != nil {
		switch *req.GameArea {
		case domain.AreaActive, domain.AreaLaser, domain.AreaMix:
		default:
			return fmt.Errorf("%w: unknown game area %q", ErrInvalidInput, *req.GameArea)
		}
	}

	if req.Type == domain.TypeEvent && req.EventType != nil {
		switch *req.EventType {
		case domain.EventActive, domain.EventLaser, domain.EventMix:
		default:
			return fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, *req.EventType)
		}
	}

	return nil
}

// validateParams проверяет обязательность параметров по типу бронирования.
// Возвращает причину отказа или nil, если параметры в порядке.
func validateParams(req *Request) *domain.Reason {
	if req.Type == domain.TypeGame {
		if req.GameArea == nil {
			return reasonPtr(domain.ReasonMissingGameArea)
		}

		// MIX всегда ровно одна игра, количество не требуется
		if *req.GameArea != domain.AreaMix {
			if req.NumberOfGames == nil ||
				*req.NumberOfGames < domain.MinNumberOfGames ||
				*req.NumberOfGames > domain.MaxNumberOfGames {
				return reasonPtr(domain.ReasonMissingNumberOfGames)
			}
		}
		return nil
	}

	// EVENT
	if req.EventType == nil {
		return reasonPtr(domain.ReasonMissingGameArea)
	}
	if req.Participants < domain.EventMinParticipants {
		return reasonPtr(domain.ReasonEventMinimumParticipants)
	}
	return nil
}

// parseStart разбирает дату и время запроса в момент начала в тайзоне площадки
func parseStart(dateStr, timeStr string, location *time.Location) (time.Time, *domain.Reason) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, location)
	if err != nil {
		return time.Time{}, reasonPtr(domain.ReasonInvalidDate)
	}

	clock, err := time.Parse(domain.TimeFormat, timeStr)
	if err != nil {
		return time.Time{}, reasonPtr(domain.ReasonInvalidTime)
	}

	start := time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		location,
	)
	return start, nil
}

// numberOfGames возвращает эффективное количество игр (MIX всегда 1)
func numberOfGames(req *Request) int {
	if req.GameArea != nil && *req.GameArea == domain.AreaMix {
		return 1
	}
	if req.NumberOfGames != nil {
		return *req.NumberOfGames
	}
	return 1
}

func reasonPtr(r domain.Reason) *domain.Reason {
	return &r
}
