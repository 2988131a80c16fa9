package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/LTA-BookingService/internal/domain"
	createBooking "github.com/m04kA/LTA-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BranchID      string  `json:"branchId"`
	Date          string  `json:"date"` // YYYY-MM-DD
	Time          string  `json:"time"` // HH:MM
	Participants  int     `json:"participants"`
	Type          string  `json:"type"`                    // GAME | EVENT
	GameArea      *string `json:"gameArea,omitempty"`      // ACTIVE | LASER | MIX
	NumberOfGames *int    `json:"numberOfGames,omitempty"` // 1..6
	EventType     *string `json:"eventType,omitempty"`     // event_active | event_laser | event_mix
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// SessionResponse игровая сессия в ответе
type SessionResponse struct {
	ID            int64   `json:"id"`
	GameArea      string  `json:"gameArea"`
	StartDateTime string  `json:"startDateTime"` // ISO 8601
	EndDateTime   string  `json:"endDateTime"`   // ISO 8601
	LaserRoomID   *string `json:"laserRoomId,omitempty"`
	SessionOrder  int     `json:"sessionOrder"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                int64  `json:"id"`
	BranchID          string `json:"branchId"`
	UserID            int64  `json:"userId"`
	Type              string `json:"type"`
	ParticipantsCount int    `json:"participantsCount"`
	Status            string `json:"status"`
	Mode              string `json:"mode"`

	GameArea      *string `json:"gameArea,omitempty"`
	NumberOfGames *int    `json:"numberOfGames,omitempty"`

	EventType   *string `json:"eventType,omitempty"`
	EventRoomID *string `json:"eventRoomId,omitempty"`
	EventStart  *string `json:"eventStart,omitempty"`
	EventEnd    *string `json:"eventEnd,omitempty"`

	Sessions []SessionResponse `json:"sessions"`

	CustomerName  *string `json:"customerName,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	branchID, err := uuid.Parse(r.BranchID)
	if err != nil {
		return nil, fmt.Errorf("invalid branchId: %w", err)
	}

	req := &createBooking.Request{
		BranchID:      branchID,
		UserID:        userID,
		Date:          r.Date,
		Time:          r.Time,
		Participants:  r.Participants,
		Type:          domain.BookingType(r.Type),
		NumberOfGames: r.NumberOfGames,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Notes:         r.Notes,
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
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:                resp.ID,
		BranchID:          resp.BranchID.String(),
		UserID:            resp.UserID,
		Type:              string(resp.Type),
		ParticipantsCount: resp.ParticipantsCount,
		Status:            resp.Status,
		Mode:              string(resp.Mode),
		NumberOfGames:     resp.NumberOfGames,
		CustomerName:      resp.CustomerName,
		CustomerPhone:     resp.CustomerPhone,
		Notes:             resp.Notes,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.GameArea != nil {
		area := string(*resp.GameArea)
		out.GameArea = &area
	}
	if resp.EventType != nil {
		eventType := string(*resp.EventType)
		out.EventType = &eventType
	}
	if resp.EventRoomID != nil {
		roomID := resp.EventRoomID.String()
		out.EventRoomID = &roomID
	}
	if resp.EventStart != nil {
		start := resp.EventStart.Format(time.RFC3339)
		out.EventStart = &start
	}
	if resp.EventEnd != nil {
		end := resp.EventEnd.Format(time.RFC3339)
		out.EventEnd = &end
	}

	out.Sessions = make([]SessionResponse, 0, len(resp.Sessions))
	for _, s := range resp.Sessions {
		session := SessionResponse{
			ID:            s.ID,
			GameArea:      string(s.GameArea),
			StartDateTime: s.StartDateTime.Format(time.RFC3339),
			EndDateTime:   s.EndDateTime.Format(time.RFC3339),
			SessionOrder:  s.SessionOrder,
		}
		if s.LaserRoomID != nil {
			roomID := s.LaserRoomID.String()
			session.LaserRoomID = &roomID
		}
		out.Sessions = append(out.Sessions, session)
	}

	return out
}
