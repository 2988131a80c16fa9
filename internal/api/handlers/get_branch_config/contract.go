package get_branch_config

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/LTA-BookingService/internal/service/branchconfig/models"
)

type ConfigService interface {
	Get(ctx context.Context, branchID uuid.UUID) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
