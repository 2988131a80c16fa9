package create_booking

import "errors"

var (
	// ErrBranchNotFound возвращается, когда конфигурация филиала не найдена
	ErrBranchNotFound = errors.New("branch not found")

	// ErrBranchClosed возвращается, когда филиал не работает в выбранный день
	ErrBranchClosed = errors.New("branch is closed on this date")

	// ErrOutsideHours возвращается, когда окно выходит за часы работы филиала
	ErrOutsideHours = errors.New("requested time is outside working hours")

	// ErrDateInPast возвращается при попытке бронирования на прошедшее время
	ErrDateInPast = errors.New("booking date is in the past")

	// ErrBelowEventMinimum возвращается для праздника с группой меньше минимума
	ErrBelowEventMinimum = errors.New("event requires at least 15 participants")

	// ErrNotAvailable возвращается, когда емкости на запрошенное окно нет.
	// В том числе когда она исчезла между проверкой доступности и
	// подтверждением - сериализуемая транзакция превращает гонку в этот отказ.
	ErrNotAvailable = errors.New("requested window is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
