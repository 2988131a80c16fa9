package check_availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/LTA-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListActiveInWindow получает активные бронирования филиала,
	// пересекающие окно, с предзагруженными сессиями
	ListActiveInWindow(ctx context.Context, branchID uuid.UUID, windowStart, windowEnd time.Time, excludeBookingID *int64) ([]*domain.Booking, error)
}

// BranchRepository интерфейс репозитория конфигурации филиалов
type BranchRepository interface {
	GetCapacity(ctx context.Context, branchID uuid.UUID) (*domain.BranchCapacity, error)
	ListActiveLaserRooms(ctx context.Context, branchID uuid.UUID) ([]domain.LaserRoom, error)
	ListActiveEventRooms(ctx context.Context, branchID uuid.UUID) ([]domain.EventRoom, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
