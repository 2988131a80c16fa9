package check_availability

import (
	"github.com/google/uuid"

	"github.com/m04kA/LTA-BookingService/internal/domain"
)

// Request модель запроса проверки доступности
type Request struct {
	BranchID      uuid.UUID
	Date          string // YYYY-MM-DD
	Time          string // HH:MM
	Participants  int
	Type          domain.BookingType
	GameArea      *domain.GameArea  // обязателен для GAME
	NumberOfGames *int              // обязателен для GAME ACTIVE|LASER; MIX всегда 1
	EventType     *domain.EventType // обязателен для EVENT

	// ExcludeBookingID бронирование, не учитывающее само себя (редактирование)
	ExcludeBookingID *int64
}

// Response вердикт проверки доступности
type Response struct {
	Available    bool
	Reason       *domain.Reason
	Message      *string
	Alternatives []domain.Slot
}

// reasonMessages сообщения для пользователя по причинам отказа
var reasonMessages = map[domain.Reason]string{
	domain.ReasonInvalidDate:              "Некорректный формат даты, ожидается ГГГГ-ММ-ДД",
	domain.ReasonInvalidTime:              "Некорректный формат времени, ожидается ЧЧ:ММ",
	domain.ReasonDatePast:                 "Нельзя проверить доступность на прошедшую дату",
	domain.ReasonClosedDay:                "Филиал не работает в этот день",
	domain.ReasonOutsideHours:             "Запрошенное время выходит за часы работы филиала",
	domain.ReasonMissingGameArea:          "Для игрового бронирования нужно указать игровую зону",
	domain.ReasonMissingNumberOfGames:     "Для игрового бронирования нужно указать количество игр",
	domain.ReasonEventMinimumParticipants: "Праздник можно забронировать от 15 участников",
	domain.ReasonEventRoomUnavailable:     "Нет свободной комнаты для праздника на это время",
	domain.ReasonEventActiveCapacity:      "Активная зона занята в одно из игровых окон праздника",
	domain.ReasonEventLaserUnavailable:    "Лазертаг-комнаты заняты в одно из игровых окон праздника",
	domain.ReasonNotAvailable:             "На выбранное время нет свободных мест",
}

// unavailable собирает отрицательный вердикт с сообщением для пользователя
func unavailable(reason domain.Reason, alternatives []domain.Slot) *Response {
	message := reasonMessages[reason]
	return &Response{
		Available:    false,
		Reason:       &reason,
		Message:      &message,
		Alternatives: alternatives,
	}
}
