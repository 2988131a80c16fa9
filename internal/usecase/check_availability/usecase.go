package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/LTA-BookingService/internal/allocation"
	"github.com/m04kA/LTA-BookingService/internal/domain"
	branchRepo "github.com/m04kA/LTA-BookingService/internal/infra/storage/branch"
)

// UseCase use case проверки доступности запрошенного окна
type UseCase struct {
	bookingRepo  BookingRepository
	branchRepo   BranchRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	branchRepo BranchRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		branchRepo:   branchRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет проверку доступности. Отсутствие мест - нормальный вердикт
// с причиной и альтернативами; ошибкой возвращаются только некорректный ввод и
// инфраструктурные сбои.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: branch=%s, date=%s, time=%s, participants=%d, type=%s",
		req.BranchID, req.Date, req.Time, req.Participants, req.Type)

	// 1. Жесткая валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Параметры по типу бронирования (зона, количество игр, тип праздника)
	if reason := validateParams(req); reason != nil {
		uc.logger.Info("CheckAvailability: rejected before resource scan: %s", *reason)
		return unavailable(*reason, nil), nil
	}

	now := uc.timeProvider.Now()

	// 3. Разбор даты и времени - до обращения к хранилищу
	start, reason := parseStart(req.Date, req.Time, now.Location())
	if reason != nil {
		uc.logger.Info("CheckAvailability: rejected before resource scan: %s", *reason)
		return unavailable(*reason, nil), nil
	}

	if start.Before(now) {
		return unavailable(domain.ReasonDatePast, nil), nil
	}

	// 4. Полная проверка запрошенного окна
	verdict, err := uc.evaluate(ctx, req, start)
	if err != nil {
		return nil, err
	}

	if verdict == nil {
		uc.logger.Info("CheckAvailability: available, branch=%s, start=%s",
			req.BranchID, start.Format(domain.DateFormat+" "+domain.TimeFormat))
		return &Response{Available: true}, nil
	}

	// 5. На отказе ищем до 7 альтернативных вариантов
	alternatives := uc.searchAlternatives(ctx, req, start, now)

	uc.logger.Info("CheckAvailability: unavailable (%s), %d alternatives, branch=%s",
		*verdict, len(alternatives), req.BranchID)

	return unavailable(*verdict, alternatives), nil
}

// evaluate проверяет одно конкретное окно. Возвращает nil при доступности,
// причину отказа при отсутствии емкости, ошибку при инфраструктурном сбое.
func (uc *UseCase) evaluate(ctx context.Context, req *Request, start time.Time) (*domain.Reason, error) {
	capacity, err := uc.branchRepo.GetCapacity(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			uc.logger.Warn("CheckAvailability: branch %s not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get branch capacity: %v", err)
		return nil, fmt.Errorf("%w: failed to get branch capacity: %v", ErrInternal, err)
	}

	// Часы работы: день открыт и все окно внутри [open, close)
	day := capacity.OpeningHours.ForDay(start.Weekday())
	if !day.IsOpen {
		return reasonPtr(domain.ReasonClosedDay), nil
	}

	window := uc.requestWindow(req, start, capacity.GameDurationMinutes)

	open := day.OpenTime.OnDate(start)
	close := day.CloseTime.OnDate(start)
	if start.Before(open) || window.End.After(close) {
		return reasonPtr(domain.ReasonOutsideHours), nil
	}

	snap, err := uc.loadSnapshot(ctx, req, *capacity, window)
	if err != nil {
		return nil, err
	}

	if req.Type == domain.TypeEvent {
		return uc.evaluateEvent(req, start, snap), nil
	}
	return uc.evaluateGame(req, start, snap), nil
}

// evaluateGame проверяет игровые сегменты GAME-бронирования.
// Отказ любого сегмента валит весь запрос - частичного успеха нет.
func (uc *UseCase) evaluateGame(req *Request, start time.Time, snap allocation.Snapshot) *domain.Reason {
	segments := allocation.GameSegments(*req.GameArea, numberOfGames(req), start, snap.Capacity.GameDurationMinutes)

	for _, segment := range segments {
		if !uc.segmentFits(req, segment, snap) {
			return reasonPtr(domain.ReasonNotAvailable)
		}
	}
	return nil
}

// evaluateEvent проверяет праздник: сначала комната на 2 часа, затем игровые
// сегменты через 15 минут после начала окна
func (uc *UseCase) evaluateEvent(req *Request, start time.Time, snap allocation.Snapshot) *domain.Reason {
	window := allocation.NewInterval(start, domain.EventDurationMinutes)

	room := allocation.FindEventRoom(req.Participants, window, snap.EventRooms, snap.Bookings, req.ExcludeBookingID)
	if room == nil {
		return reasonPtr(domain.ReasonEventRoomUnavailable)
	}

	segments := allocation.EventSegments(*req.EventType, start, snap.Capacity.GameDurationMinutes)
	for _, segment := range segments {
		if uc.segmentFits(req, segment, snap) {
			continue
		}
		if segment.Area == domain.AreaActive {
			return reasonPtr(domain.ReasonEventActiveCapacity)
		}
		return reasonPtr(domain.ReasonEventLaserUnavailable)
	}
	return nil
}

// segmentFits проверяет один игровой сегмент против снапшота
func (uc *UseCase) segmentFits(req *Request, segment allocation.Segment, snap allocation.Snapshot) bool {
	if segment.Area == domain.AreaActive {
		check := allocation.CheckActiveWindow(
			req.Participants,
			segment.Window,
			snap.Bookings,
			snap.Capacity.MaxConcurrentActivePlayers,
			req.ExcludeBookingID,
		)
		return check.OK
	}

	alloc := allocation.AllocateLaserRooms(
		req.Participants,
		segment.Window,
		snap.LaserRooms,
		snap.Capacity.LaserExclusiveThreshold,
		snap.Bookings,
		allocation.LaserModeAuto,
		req.ExcludeBookingID,
	)
	return alloc != nil
}

// requestWindow возвращает полное окно запроса: для GAME - все игры встык,
// для EVENT - окно комнаты вместе с хвостом игровых сегментов
func (uc *UseCase) requestWindow(req *Request, start time.Time, gameDurationMinutes int) allocation.Interval {
	if req.Type == domain.TypeEvent {
		return allocation.EventSpan(*req.EventType, start, gameDurationMinutes)
	}

	segments := allocation.GameSegments(*req.GameArea, numberOfGames(req), start, gameDurationMinutes)
	return allocation.Interval{
		Start: segments[0].Window.Start,
		End:   segments[len(segments)-1].Window.End,
	}
}

// loadSnapshot собирает снапшот состояния филиала для окна запроса
func (uc *UseCase) loadSnapshot(ctx context.Context, req *Request, capacity domain.BranchCapacity, window allocation.Interval) (allocation.Snapshot, error) {
	var snap allocation.Snapshot
	snap.Capacity = capacity

	laserRooms, err := uc.branchRepo.ListActiveLaserRooms(ctx, req.BranchID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to list laser rooms: %v", err)
		return snap, fmt.Errorf("%w: failed to list laser rooms: %v", ErrInternal, err)
	}
	snap.LaserRooms = laserRooms

	if req.Type == domain.TypeEvent {
		eventRooms, err := uc.branchRepo.ListActiveEventRooms(ctx, req.BranchID)
		if err != nil {
			uc.logger.Error("CheckAvailability: failed to list event rooms: %v", err)
			return snap, fmt.Errorf("%w: failed to list event rooms: %v", ErrInternal, err)
		}
		snap.EventRooms = eventRooms
	}

	bookings, err := uc.bookingRepo.ListActiveInWindow(ctx, req.BranchID, window.Start, window.End, req.ExcludeBookingID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to list bookings: %v", err)
		return snap, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}
	snap.Bookings = bookings

	return snap, nil
}
