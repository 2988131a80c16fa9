package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/LTA-BookingService/internal/domain"
	"github.com/m04kA/LTA-BookingService/internal/infra/events"
	"github.com/m04kA/LTA-BookingService/internal/integrations/crmservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// ListActiveInWindow внутри транзакции блокирует строки (FOR UPDATE)
	ListActiveInWindow(ctx context.Context, branchID uuid.UUID, windowStart, windowEnd time.Time, excludeBookingID *int64) ([]*domain.Booking, error)
}

// BranchRepository интерфейс репозитория конфигурации филиалов
type BranchRepository interface {
	GetCapacity(ctx context.Context, branchID uuid.UUID) (*domain.BranchCapacity, error)
	ListActiveLaserRooms(ctx context.Context, branchID uuid.UUID) ([]domain.LaserRoom, error)
	ListActiveEventRooms(ctx context.Context, branchID uuid.UUID) ([]domain.EventRoom, error)
}

// CRMClient интерфейс клиента CRM
type CRMClient interface {
	GetCustomerWithGracefulDegradation(ctx context.Context, userID int64) (*crmservice.Customer, error)
}

// EventPublisher интерфейс издателя доменных событий
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event events.BookingConfirmedEvent) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
