package get_branch_config

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/LTA-BookingService/internal/api/handlers"
	"github.com/m04kA/LTA-BookingService/internal/service/branchconfig"
)

const (
	msgInvalidBranchID = "некорректный идентификатор филиала"
	msgBranchNotFound  = "филиал не найден"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает GET /api/v1/branches/{branchId}/config
// Конфигурация филиала публична: виджет бронирования читает расписание
// и емкости без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vars := mux.Vars(r)
	branchID, err := uuid.Parse(vars["branchId"])
	if err != nil {
		h.logger.Warn("GET /api/v1/branches/{branchId}/config - некорректный идентификатор %q: %v", vars["branchId"], err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	resp, err := h.service.Get(ctx, branchID)
	if err != nil {
		switch {
		case errors.Is(err, branchconfig.ErrBranchNotFound):
			h.logger.Warn("GET /api/v1/branches/%s/config - филиал не найден", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)
		default:
			h.logger.Error("GET /api/v1/branches/%s/config - внутренняя ошибка: %v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
