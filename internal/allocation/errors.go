package allocation

import "errors"

var (
	// ErrCapacityLost возвращается сборщиком сессий, когда сегмент, прошедший
	// проверку доступности, больше не может быть обеспечен ресурсами
	// (состояние изменилось между проверкой и сборкой)
	ErrCapacityLost = errors.New("allocation: capacity lost since availability check")

	// ErrEventRoomLost возвращается, когда комната праздника больше недоступна
	ErrEventRoomLost = errors.New("allocation: event room lost since availability check")
)
