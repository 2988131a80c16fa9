package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/LTA-BookingService/internal/api/handlers"
	"github.com/m04kA/LTA-BookingService/internal/api/middleware"
	"github.com/m04kA/LTA-BookingService/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgBookingNotFound    = "бронирование не найдено"
	msgAccessDenied       = "доступ к бронированию запрещен"
	msgCannotCancel       = "бронирование нельзя отменить в текущем статусе"
	msgUnauthorized       = "не передан идентификатор пользователя"
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

// Handle обрабатывает PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /api/v1/bookings/{bookingId}/cancel - некорректный идентификатор %q: %v", vars["bookingId"], err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /api/v1/bookings/%d/cancel - невалидное тело запроса: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.Cancel(ctx, bookingID, req.ToServiceRequest(userID, middleware.IsManager(ctx)))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /api/v1/bookings/%d/cancel - бронирование не найдено", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /api/v1/bookings/%d/cancel - доступ запрещен для user=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("PATCH /api/v1/bookings/%d/cancel - отмена невозможна", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /api/v1/bookings/%d/cancel - ошибка валидации: %v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("PATCH /api/v1/bookings/%d/cancel - внутренняя ошибка: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /api/v1/bookings/%d/cancel - бронирование отменено user=%d", bookingID, userID)
	w.WriteHeader(http.StatusNoContent)
}
