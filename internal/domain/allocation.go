package domain

// Reason типизированная причина отказа в доступности.
// Возвращается наружу как строка, никогда не как ошибка: отсутствие емкости -
// нормальный исход, в отличие от инфраструктурного сбоя.
type Reason string

const (
	ReasonInvalidDate              Reason = "invalid_date"
	ReasonInvalidTime              Reason = "invalid_time"
	ReasonDatePast                 Reason = "date_past"
	ReasonClosedDay                Reason = "closed_day"
	ReasonOutsideHours             Reason = "outside_hours"
	ReasonMissingGameArea          Reason = "missing_game_area"
	ReasonMissingNumberOfGames     Reason = "missing_number_of_games"
	ReasonEventMinimumParticipants Reason = "event_minimum_participants"
	ReasonEventRoomUnavailable     Reason = "event_room_unavailable"
	ReasonEventActiveCapacity      Reason = "event_active_capacity"
	ReasonEventLaserUnavailable    Reason = "event_laser_unavailable"
	ReasonNotAvailable             Reason = "not_available"
)

// SlotType тип альтернативного варианта
type SlotType string

const (
	SlotTypeSlot   SlotType = "slot"   // конкретный альтернативный слот
	SlotTypeCustom SlotType = "custom" // синтетический вариант "предложить другую дату"
)

// Slot альтернативный вариант, предлагаемый при отказе
type Slot struct {
	ID    string
	Label string
	Date  *string // YYYY-MM-DD, nil для custom
	Time  *string // HH:MM, nil для custom
	Type  SlotType
}
