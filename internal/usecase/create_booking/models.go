package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/LTA-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	BranchID      uuid.UUID
	UserID        int64
	Date          string // YYYY-MM-DD
	Time          string // HH:MM
	Participants  int
	Type          domain.BookingType
	GameArea      *domain.GameArea  // обязателен для GAME
	NumberOfGames *int              // обязателен для GAME ACTIVE|LASER
	EventType     *domain.EventType // обязателен для EVENT

	CustomerName  *string
	CustomerPhone *string
	Notes         *string
}

// Response созданное бронирование
type Response struct {
	ID                int64
	BranchID          uuid.UUID
	UserID            int64
	Type              domain.BookingType
	ParticipantsCount int
	Status            string
	Mode              domain.AllocationMode

	GameArea      *domain.GameArea
	NumberOfGames *int

	EventType   *domain.EventType
	EventRoomID *uuid.UUID
	EventStart  *time.Time
	EventEnd    *time.Time

	Sessions []SessionResponse

	CustomerName  *string
	CustomerPhone *string
	Notes         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionResponse одна игровая сессия созданного бронирования
type SessionResponse struct {
	ID            int64
	GameArea      domain.GameArea
	StartDateTime time.Time
	EndDateTime   time.Time
	LaserRoomID   *uuid.UUID
	SessionOrder  int
}

// toResponse конвертирует доменное бронирование в ответ usecase
func toResponse(b *domain.Booking) *Response {
	sessions := make([]SessionResponse, 0, len(b.Sessions))
	for _, s := range b.Sessions {
		sessions = append(sessions, SessionResponse{
			ID:            s.ID,
			GameArea:      s.GameArea,
			StartDateTime: s.StartDateTime,
			EndDateTime:   s.EndDateTime,
			LaserRoomID:   s.LaserRoomID,
			SessionOrder:  s.SessionOrder,
		})
	}

	return &Response{
		ID:                b.ID,
		BranchID:          b.BranchID,
		UserID:            b.UserID,
		Type:              b.Type,
		ParticipantsCount: b.ParticipantsCount,
		Status:            string(b.Status),
		Mode:              b.Mode,
		GameArea:          b.GameArea,
		NumberOfGames:     b.NumberOfGames,
		EventType:         b.EventType,
		EventRoomID:       b.EventRoomID,
		EventStart:        b.EventStart,
		EventEnd:          b.EventEnd,
		Sessions:          sessions,
		CustomerName:      b.CustomerName,
		CustomerPhone:     b.CustomerPhone,
		Notes:             b.Notes,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}
