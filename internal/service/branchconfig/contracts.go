package branchconfig

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/LTA-BookingService/internal/domain"
)

// BranchRepository интерфейс репозитория конфигурации филиалов
type BranchRepository interface {
	GetCapacity(ctx context.Context, branchID uuid.UUID) (*domain.BranchCapacity, error)
	UpdateCapacity(ctx context.Context, capacity *domain.BranchCapacity) (*domain.BranchCapacity, error)
	ListActiveLaserRooms(ctx context.Context, branchID uuid.UUID) ([]domain.LaserRoom, error)
	ListActiveEventRooms(ctx context.Context, branchID uuid.UUID) ([]domain.EventRoom, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
