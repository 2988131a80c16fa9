package update_branch_config

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/LTA-BookingService/internal/api/handlers"
	"github.com/m04kA/LTA-BookingService/internal/api/middleware"
	"github.com/m04kA/LTA-BookingService/internal/service/branchconfig"
	"github.com/m04kA/LTA-BookingService/internal/service/branchconfig/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBranchID    = "некорректный идентификатор филиала"
	msgBranchNotFound     = "филиал не найден"
	msgAccessDenied       = "изменение конфигурации доступно только менеджеру"
	msgUnauthorized       = "не передан идентификатор пользователя"
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

// Handle обрабатывает PUT /api/v1/branches/{branchId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	branchID, err := uuid.Parse(vars["branchId"])
	if err != nil {
		h.logger.Warn("PUT /api/v1/branches/{branchId}/config - некорректный идентификатор %q: %v", vars["branchId"], err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /api/v1/branches/%s/config - невалидное тело запроса: %v", branchID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req.UserID = userID
	req.IsManager = middleware.IsManager(ctx)
	req.BranchID = branchID

	resp, err := h.service.Update(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, branchconfig.ErrAccessDenied):
			h.logger.Warn("PUT /api/v1/branches/%s/config - доступ запрещен для user=%d", branchID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, branchconfig.ErrBranchNotFound):
			h.logger.Warn("PUT /api/v1/branches/%s/config - филиал не найден", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)
		case errors.Is(err, branchconfig.ErrInvalidInput):
			h.logger.Warn("PUT /api/v1/branches/%s/config - ошибка валидации: %v", branchID, err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PUT /api/v1/branches/%s/config - внутренняя ошибка: %v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /api/v1/branches/%s/config - конфигурация обновлена user=%d", branchID, userID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
