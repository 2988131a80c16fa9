package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/LTA-BookingService/internal/api/handlers"
	"github.com/m04kA/LTA-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/LTA-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBranchID    = "некорректный идентификатор филиала"
	msgBranchNotFound     = "филиал не найден"
	msgNotAvailable       = "выбранное время недоступно для бронирования"
	msgUnauthorized       = "не передан идентификатор пользователя"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle обрабатывает POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /api/v1/bookings - невалидное тело запроса: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /api/v1/bookings - некорректный branchId %q: %v", req.BranchID, err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	resp, err := h.useCase.Execute(ctx, ucReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrBranchNotFound):
			h.logger.Warn("POST /api/v1/bookings - филиал %s не найден", req.BranchID)
			handlers.RespondNotFound(w, msgBranchNotFound)
		case errors.Is(err, createBooking.ErrNotAvailable):
			h.logger.Info("POST /api/v1/bookings - слот занят: branch=%s date=%s time=%s: %v", req.BranchID, req.Date, req.Time, err)
			handlers.RespondError(w, http.StatusConflict, msgNotAvailable)
		case errors.Is(err, createBooking.ErrBranchClosed),
			errors.Is(err, createBooking.ErrOutsideHours),
			errors.Is(err, createBooking.ErrDateInPast),
			errors.Is(err, createBooking.ErrBelowEventMinimum),
			errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /api/v1/bookings - ошибка валидации: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /api/v1/bookings - внутренняя ошибка: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /api/v1/bookings - бронирование %d создано: user=%d branch=%s", resp.ID, userID, req.BranchID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
