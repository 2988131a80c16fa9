package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingType represents the shape of a booking
type BookingType string

const (
	TypeGame  BookingType = "GAME"  // разовый визит без отдельной комнаты
	TypeEvent BookingType = "EVENT" // праздник: отдельная комната + игровые сегменты
)

// GameArea represents the physical game area of a session
type GameArea string

const (
	AreaActive GameArea = "ACTIVE" // активная арена с общим потолком игроков
	AreaLaser  GameArea = "LASER"  // лазертаг-комнаты с жилетами
	AreaMix    GameArea = "MIX"    // комбинированный визит: сегмент ACTIVE + сегмент LASER
)

// EventType represents the game program of an EVENT booking
type EventType string

const (
	EventActive EventType = "event_active" // [ACTIVE, ACTIVE]
	EventLaser  EventType = "event_laser"  // [LASER, LASER]
	EventMix    EventType = "event_mix"    // [ACTIVE, LASER]
)

// AllocationMode describes how laser capacity was assigned to a booking.
// Хранится явно на бронировании, а не выводится из session-строк при
// каждой проверке.
type AllocationMode string

const (
	ModeSingle    AllocationMode = "single"    // нет лазерных комнат (ACTIVE-визит)
	ModeShared    AllocationMode = "shared"    // делит комнату с другими группами
	ModeExclusive AllocationMode = "exclusive" // держит свою комнату эксклюзивно
	ModeMaxi      AllocationMode = "maxi"      // занимает 2+ комнаты, блокирует весь лазертаг
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending            BookingStatus = "pending"
	StatusConfirmed          BookingStatus = "confirmed"
	StatusInProgress         BookingStatus = "in_progress"
	StatusCompleted          BookingStatus = "completed"
	StatusCancelledByUser    BookingStatus = "cancelled_by_user"
	StatusCancelledByCompany BookingStatus = "cancelled_by_company"
	StatusNoShow             BookingStatus = "no_show"
)

// Booking represents a visit or an event reservation at a branch
type Booking struct {
	ID                int64
	BranchID          uuid.UUID
	UserID            int64
	Type              BookingType
	ParticipantsCount int
	Status            BookingStatus
	Mode              AllocationMode

	// GAME fields
	GameArea      *GameArea
	NumberOfGames *int

	// EVENT fields: отдельная комната удерживается на все окно праздника
	EventType   *EventType
	EventRoomID *uuid.UUID
	EventStart  *time.Time
	EventEnd    *time.Time

	// Denormalized customer data for history
	CustomerName  *string
	CustomerPhone *string
	Notes         *string

	CancellationReason *string
	CancelledAt        *time.Time

	Sessions []GameSession

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies capacity.
// Отмененные и no-show бронирования исключаются из всех расчетов емкости.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByUser &&
		b.Status != StatusCancelledByCompany &&
		b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByUser || b.Status == StatusCancelledByCompany
}

// GameSession represents one timed occupation of a game area within a booking.
// Одна "игра" с номером N может породить две строки с одинаковым SessionOrder,
// когда группа разбита на две лазерные комнаты (maxi) - это не дубликат.
type GameSession struct {
	ID                 int64
	BookingID          int64
	GameArea           GameArea
	StartDateTime      time.Time
	EndDateTime        time.Time
	LaserRoomID        *uuid.UUID // заполняется только для LASER
	SessionOrder       int        // 1-based номер игры внутри бронирования
	PauseBeforeMinutes int
}

// BranchBookingsFilter фильтр для получения бронирований филиала
type BranchBookingsFilter struct {
	BranchID        uuid.UUID      // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	Type            *BookingType   // Фильтр по типу (опционально)
	IncludeInactive bool           // Включать ли отмененные и no-show
}
