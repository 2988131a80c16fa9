package check_availability

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/LTA-BookingService/internal/domain"
	checkAvailability "github.com/m04kA/LTA-BookingService/internal/usecase/check_availability"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	BranchID      string  `json:"branchId"`
	Date          string  `json:"date"` // YYYY-MM-DD
	Time          string  `json:"time"` // HH:MM
	Participants  int     `json:"participants"`
	Type          string  `json:"type"`                    // GAME | EVENT
	GameArea      *string `json:"gameArea,omitempty"`      // ACTIVE | LASER | MIX
	NumberOfGames *int    `json:"numberOfGames,omitempty"` // 1..6
	EventType     *string `json:"eventType,omitempty"`     // event_active | event_laser | event_mix
}

// SlotResponse альтернативный вариант в ответе
type SlotResponse struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Date  *string `json:"date"`
	Time  *string `json:"time"`
	Type  string  `json:"type"` // slot | custom
}

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	Available    bool           `json:"available"`
	Reason       *string        `json:"reason,omitempty"`
	Message      *string        `json:"message,omitempty"`
	Alternatives []SlotResponse `json:"alternatives,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest() (*checkAvailability.Request, error) {
	branchID, err := uuid.Parse(r.BranchID)
	if err != nil {
		return nil, fmt.Errorf("invalid branchId: %w", err)
	}

	req := &checkAvailability.Request{
		BranchID:      branchID,
		Date:          r.Date,
		Time:          r.Time,
		Participants:  r.Participants,
		Type:          domain.BookingType(r.Type),
		NumberOfGames: r.NumberOfGames,
	}

	if r.GameArea != nil {
		area := domain.GameArea(*r.GameArea)
		req.GameArea = &area
	}
	if r.EventType != nil {
		eventType := domain.EventType(*r.EventType)
		req.EventType = &eventType
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *CheckAvailabilityResponse {
	out := &CheckAvailabilityResponse{
		Available: resp.Available,
		Message:   resp.Message,
	}

	if resp.Reason != nil {
		reason := string(*resp.Reason)
		out.Reason = &reason
	}

	for _, slot := range resp.Alternatives {
		out.Alternatives = append(out.Alternatives, SlotResponse{
			ID:    slot.ID,
			Label: slot.Label,
			Date:  slot.Date,
			Time:  slot.Time,
			Type:  string(slot.Type),
		})
	}

	return out
}
