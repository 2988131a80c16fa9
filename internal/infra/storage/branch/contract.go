package branch

import (
	"github.com/m04kA/LTA-BookingService/pkg/dbmetrics"
)

// DBExecutor интерфейс для выполнения запросов (может быть *sql.DB, *sql.Tx или обертка с метриками)
type DBExecutor = dbmetrics.DBExecutor
