package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/LTA-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	IsManager          bool   `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID    int64  `json:"userId"`
	IsManager bool   `json:"-"`
	Status    string `json:"status"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetBranchBookingsRequest запрос на получение бронирований филиала
type GetBranchBookingsRequest struct {
	UserID          int64      `json:"userId"`
	IsManager       bool       `json:"-"`
	BranchID        uuid.UUID  `json:"branchId"`
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	Type            *string    `json:"type,omitempty"`            // GAME | EVENT (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отмененные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBranchBookingsRequest) ToDomainFilter() (domain.BranchBookingsFilter, error) {
	filter := domain.BranchBookingsFilter{
		BranchID:        r.BranchID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.Type != nil {
		switch domain.BookingType(*r.Type) {
		case domain.TypeGame, domain.TypeEvent:
			bookingType := domain.BookingType(*r.Type)
			filter.Type = &bookingType
		default:
			return filter, ErrInvalidStatus
		}
	}

	return filter, nil
}

// Response модели

// SessionResponse одна игровая сессия бронирования
type SessionResponse struct {
	ID            int64      `json:"id"`
	GameArea      string     `json:"gameArea"`
	StartDateTime time.Time  `json:"startDateTime"`
	EndDateTime   time.Time  `json:"endDateTime"`
	LaserRoomID   *uuid.UUID `json:"laserRoomId,omitempty"`
	SessionOrder  int        `json:"sessionOrder"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                int64     `json:"id"`
	BranchID          uuid.UUID `json:"branchId"`
	UserID            int64     `json:"userId"`
	Type              string    `json:"type"`
	ParticipantsCount int       `json:"participantsCount"`
	Status            string    `json:"status"`
	Mode              string    `json:"mode"`

	GameArea      *string `json:"gameArea,omitempty"`
	NumberOfGames *int    `json:"numberOfGames,omitempty"`

	EventType   *string    `json:"eventType,omitempty"`
	EventRoomID *uuid.UUID `json:"eventRoomId,omitempty"`
	EventStart  *time.Time `json:"eventStart,omitempty"`
	EventEnd    *time.Time `json:"eventEnd,omitempty"`

	Sessions []SessionResponse `json:"sessions"`

	CustomerName  *string `json:"customerName,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                b.ID,
		BranchID:          b.BranchID,
		UserID:            b.UserID,
		Type:              string(b.Type),
		ParticipantsCount:  b.ParticipantsCount,
		Status:             string(b.Status),
		Mode:               string(b.Mode),
		NumberOfGames:      b.NumberOfGames,
		EventRoomID:        b.EventRoomID,
		EventStart:         b.EventStart,
		EventEnd:           b.EventEnd,
		CustomerName:       b.CustomerName,
		CustomerPhone:      b.CustomerPhone,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.GameArea != nil {
		area := string(*b.GameArea)
		resp.GameArea = &area
	}
	if b.EventType != nil {
		eventType := string(*b.EventType)
		resp.EventType = &eventType
	}
	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	resp.Sessions = make([]SessionResponse, 0, len(b.Sessions))
	for _, s := range b.Sessions {
		resp.Sessions = append(resp.Sessions, SessionResponse{
			ID:            s.ID,
			GameArea:      string(s.GameArea),
			StartDateTime: s.StartDateTime,
			EndDateTime:   s.EndDateTime,
			LaserRoomID:   s.LaserRoomID,
			SessionOrder:  s.SessionOrder,
		})
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	switch s {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusInProgress,
		domain.StatusCompleted, domain.StatusCancelledByUser,
		domain.StatusCancelledByCompany, domain.StatusNoShow:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}
