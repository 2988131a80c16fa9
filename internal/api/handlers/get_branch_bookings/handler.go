package get_branch_bookings

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/LTA-BookingService/internal/api/handlers"
	"github.com/m04kA/LTA-BookingService/internal/api/middleware"
	"github.com/m04kA/LTA-BookingService/internal/service/bookings"
)

const (
	msgInvalidBranchID = "некорректный идентификатор филиала"
	msgInvalidFilter   = "некорректные параметры фильтрации"
	msgAccessDenied    = "просмотр бронирований филиала доступен только менеджеру"
	msgUnauthorized    = "не передан идентификатор пользователя"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает GET /api/v1/branches/{branchId}/bookings
// с фильтрами startDate, endDate, status, type, includeInactive
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
		h.logger.Warn("GET /api/v1/branches/{branchId}/bookings - некорректный идентификатор %q: %v", vars["branchId"], err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	req, err := parseQuery(branchID, userID, middleware.IsManager(ctx), r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /api/v1/branches/%s/bookings - некорректные параметры: %v", branchID, err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	resp, err := h.service.GetBranchBookings(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /api/v1/branches/%s/bookings - доступ запрещен для user=%d", branchID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /api/v1/branches/%s/bookings - ошибка валидации: %v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
		default:
			h.logger.Error("GET /api/v1/branches/%s/bookings - внутренняя ошибка: %v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
