package events

import "time"

// Имена очередей. Очереди durable, сообщения persistent.
const (
	QueueBookingConfirmed = "booking.confirmed"
	QueueBookingCancelled = "booking.cancelled"
)

// BookingConfirmedEvent событие подтверждения бронирования
type BookingConfirmedEvent struct {
	BookingID         int64     `json:"booking_id"`
	BranchID          string    `json:"branch_id"`
	UserID            int64     `json:"user_id"`
	Type              string    `json:"type"`
	ParticipantsCount int       `json:"participants_count"`
	StartsAt          time.Time `json:"starts_at"`
	ConfirmedAt       time.Time `json:"confirmed_at"`
}

// BookingCancelledEvent событие отмены бронирования
type BookingCancelledEvent struct {
	BookingID   int64     `json:"booking_id"`
	BranchID    string    `json:"branch_id"`
	UserID      int64     `json:"user_id"`
	Reason      string    `json:"reason"`
	CancelledBy string    `json:"cancelled_by"` // user | company
	CancelledAt time.Time `json:"cancelled_at"`
}
