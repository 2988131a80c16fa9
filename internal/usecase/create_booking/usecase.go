package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/LTA-BookingService/internal/allocation"
	"github.com/m04kA/LTA-BookingService/internal/domain"
	"github.com/m04kA/LTA-BookingService/internal/infra/events"
	branchRepo "github.com/m04kA/LTA-BookingService/internal/infra/storage/branch"
)

// UseCase use case создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	branchRepo     BranchRepository
	crmClient      CRMClient
	eventPublisher EventPublisher
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	branchRepo BranchRepository,
	crmClient CRMClient,
	eventPublisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		branchRepo:     branchRepo,
		crmClient:      crmClient,
		eventPublisher: eventPublisher,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет создание бронирования.
// Проверка доступности и запись выполняются в одной сериализуемой транзакции
// с блокировкой пересекающихся бронирований (FOR UPDATE) - два конкурентных
// запроса на одно окно не могут оба увидеть "свободно" и оба записаться.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, branch=%s, date=%s, time=%s, type=%s, participants=%d",
		req.UserID, req.BranchID, req.Date, req.Time, req.Type, req.Participants)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Разбор даты и времени
	start, err := parseStart(req.Date, req.Time, now.Location())
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}
	if start.Before(now) {
		return nil, ErrDateInPast
	}

	// 3. Обогащаем контактные данные из CRM (graceful degradation:
	// недоступность CRM не блокирует бронирование)
	uc.enrichFromCRM(ctx, req)

	var result *domain.Booking

	// 4. Проверка и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		capacity, err := uc.branchRepo.GetCapacity(txCtx, req.BranchID)
		if err != nil {
			if errors.Is(err, branchRepo.ErrBranchNotFound) {
				uc.logger.Warn("CreateBooking: branch %s not found", req.BranchID)
				return ErrBranchNotFound
			}
			uc.logger.Error("CreateBooking: failed to get branch capacity: %v", err)
			return fmt.Errorf("%w: failed to get branch capacity: %v", ErrInternal, err)
		}

		// 4.1. Часы работы
		window, err := uc.validateWorkingHours(req, start, capacity)
		if err != nil {
			return err
		}

		// 4.2. Снапшот состояния с блокировкой пересекающихся бронирований
		snap, err := uc.loadSnapshot(txCtx, req, *capacity, window)
		if err != nil {
			return err
		}

		// 4.3. Сборка сессий: заново проверяет каждый сегмент против снапшота
		buildReq := allocation.BuildRequest{
			BookingType:   req.Type,
			Participants:  req.Participants,
			NumberOfGames: effectiveNumberOfGames(req),
			Start:         start,
		}
		if req.GameArea != nil {
			buildReq.GameArea = *req.GameArea
		}
		if req.EventType != nil {
			buildReq.EventType = *req.EventType
		}

		build, err := allocation.BuildSessions(buildReq, snap)
		if err != nil {
			if errors.Is(err, allocation.ErrCapacityLost) || errors.Is(err, allocation.ErrEventRoomLost) {
				uc.logger.Warn("CreateBooking: window not available: %v", err)
				return fmt.Errorf("%w: %v", ErrNotAvailable, err)
			}
			uc.logger.Error("CreateBooking: failed to build sessions: %v", err)
			return fmt.Errorf("%w: failed to build sessions: %v", ErrInternal, err)
		}

		// 4.4. Сохраняем бронирование вместе с сессиями
		booking := &domain.Booking{
			BranchID:          req.BranchID,
			UserID:            req.UserID,
			Type:              req.Type,
			ParticipantsCount: req.Participants,
			Status:            domain.StatusConfirmed,
			Mode:              build.Mode,
			GameArea:          req.GameArea,
			EventType:         req.EventType,
			EventRoomID:       build.EventRoomID,
			Sessions:          build.Sessions,
			CustomerName:      req.CustomerName,
			CustomerPhone:     req.CustomerPhone,
			Notes:             req.Notes,
		}
		if req.Type == domain.TypeGame {
			games := effectiveNumberOfGames(req)
			booking.NumberOfGames = &games
		}
		if build.EventWindow != nil {
			booking.EventStart = &build.EventWindow.Start
			booking.EventEnd = &build.EventWindow.End
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, mode=%s", result.ID, result.Mode)

	// 5. Событие публикуется после коммита, best-effort
	uc.publishConfirmed(ctx, result, start, now)

	return toResponse(result), nil
}

// validateWorkingHours проверяет день и часы работы, возвращая полное окно запроса
func (uc *UseCase) validateWorkingHours(req *Request, start time.Time, capacity *domain.BranchCapacity) (allocation.Interval, error) {
	day := capacity.OpeningHours.ForDay(start.Weekday())
	if !day.IsOpen {
		uc.logger.Warn("CreateBooking: branch %s is closed on %s", req.BranchID, start.Format(domain.DateFormat))
		return allocation.Interval{}, ErrBranchClosed
	}

	var window allocation.Interval
	if req.Type == domain.TypeEvent {
		window = allocation.EventSpan(*req.EventType, start, capacity.GameDurationMinutes)
	} else {
		segments := allocation.GameSegments(*req.GameArea, effectiveNumberOfGames(req), start, capacity.GameDurationMinutes)
		window = allocation.Interval{
			Start: segments[0].Window.Start,
			End:   segments[len(segments)-1].Window.End,
		}
	}

	open := day.OpenTime.OnDate(start)
	close := day.CloseTime.OnDate(start)
	if start.Before(open) || window.End.After(close) {
		uc.logger.Warn("CreateBooking: window %s-%s is outside working hours %s-%s",
			start.Format(domain.TimeFormat), window.End.Format(domain.TimeFormat),
			day.OpenTime, day.CloseTime)
		return allocation.Interval{}, ErrOutsideHours
	}

	return window, nil
}

// loadSnapshot собирает снапшот филиала внутри транзакции
func (uc *UseCase) loadSnapshot(ctx context.Context, req *Request, capacity domain.BranchCapacity, window allocation.Interval) (allocation.Snapshot, error) {
	snap := allocation.Snapshot{Capacity: capacity}

	laserRooms, err := uc.branchRepo.ListActiveLaserRooms(ctx, req.BranchID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list laser rooms: %v", err)
		return snap, fmt.Errorf("%w: failed to list laser rooms: %v", ErrInternal, err)
	}
	snap.LaserRooms = laserRooms

	if req.Type == domain.TypeEvent {
		eventRooms, err := uc.branchRepo.ListActiveEventRooms(ctx, req.BranchID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list event rooms: %v", err)
			return snap, fmt.Errorf("%w: failed to list event rooms: %v", ErrInternal, err)
		}
		snap.EventRooms = eventRooms
	}

	bookings, err := uc.bookingRepo.ListActiveInWindow(ctx, req.BranchID, window.Start, window.End, nil)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list bookings: %v", err)
		return snap, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}
	snap.Bookings = bookings

	return snap, nil
}

// enrichFromCRM подставляет контактные данные из карточки CRM, если они
// не переданы в запросе. Любая ошибка CRM не прерывает создание.
func (uc *UseCase) enrichFromCRM(ctx context.Context, req *Request) {
	if req.CustomerName != nil && req.CustomerPhone != nil {
		return
	}

	customer, err := uc.crmClient.GetCustomerWithGracefulDegradation(ctx, req.UserID)
	if err != nil {
		return
	}

	if req.CustomerName == nil && customer.DisplayName != "" {
		name := customer.DisplayName
		req.CustomerName = &name
	}
	if req.CustomerPhone == nil && customer.Phone != "" {
		phone := customer.Phone
		req.CustomerPhone = &phone
	}
}

// publishConfirmed отправляет событие подтверждения, не влияя на результат
func (uc *UseCase) publishConfirmed(ctx context.Context, booking *domain.Booking, start, now time.Time) {
	event := events.BookingConfirmedEvent{
		BookingID:         booking.ID,
		BranchID:          booking.BranchID.String(),
		UserID:            booking.UserID,
		Type:              string(booking.Type),
		ParticipantsCount: booking.ParticipantsCount,
		StartsAt:          start,
		ConfirmedAt:       now,
	}

	if err := uc.eventPublisher.PublishBookingConfirmed(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: booking id=%d confirmed event not published: %v", booking.ID, err)
	}
}
