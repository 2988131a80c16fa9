// Package allocation содержит движок распределения ресурсов филиала:
// проверку потолка зоны ACTIVE, назначение лазертаг-комнат, подбор комнаты
// для праздника и сборку игровых сессий подтвержденного бронирования.
//
// Движок полностью чистый: каждая функция получает снапшот существующих
// бронирований и настроек явным аргументом и не держит внутреннего состояния,
// поэтому безопасна для конкурентных вызовов. Сериализацию read-then-write
// обеспечивает вызывающий слой (сериализуемая транзакция + FOR UPDATE).
package allocation

import "github.com/m04kA/LTA-BookingService/internal/domain"

// Snapshot снимок состояния филиала на момент принятия решения
type Snapshot struct {
	Capacity   domain.BranchCapacity
	LaserRooms []domain.LaserRoom
	EventRooms []domain.EventRoom

	// Bookings активные бронирования, пересекающие интересующее окно,
	// с предзагруженными игровыми сессиями
	Bookings []*domain.Booking
}

// countsAgainstCapacity проверяет, участвует ли бронирование в расчетах емкости
func countsAgainstCapacity(b *domain.Booking, excludeBookingID *int64) bool {
	if !b.IsActive() {
		return false
	}
	// При редактировании бронирование не учитывает само себя
	if excludeBookingID != nil && b.ID == *excludeBookingID {
		return false
	}
	return true
}
