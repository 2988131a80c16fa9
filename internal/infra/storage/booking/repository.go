package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/LTA-BookingService/internal/domain"
	"github.com/m04kA/LTA-BookingService/pkg/dbmetrics"
	"github.com/m04kA/LTA-BookingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"b.id",
	"b.branch_id",
	"b.user_id",
	"b.type",
	"b.participants_count",
	"b.status",
	"b.mode",
	"b.game_area",
	"b.number_of_games",
	"b.event_type",
	"b.event_room_id",
	"b.event_start",
	"b.event_end",
	"b.customer_name",
	"b.customer_phone",
	"b.notes",
	"b.cancellation_reason",
	"b.cancelled_at",
	"b.created_at",
	"b.updated_at",
}

// Repository репозиторий для работы с бронированиями и их игровыми сессиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе с его игровыми сессиями.
// Если в контексте передана активная транзакция (через context.Value),
// использует её - путь подтверждения бронирования всегда вызывает Create
// внутри сериализуемой транзакции вместе с проверкой доступности.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"branch_id",
			"user_id",
			"type",
			"participants_count",
			"status",
			"mode",
			"game_area",
			"number_of_games",
			"event_type",
			"event_room_id",
			"event_start",
			"event_end",
			"starts_at",
			"customer_name",
			"customer_phone",
			"notes",
		).
		Values(
			booking.BranchID,
			booking.UserID,
			booking.Type,
			booking.ParticipantsCount,
			booking.Status,
			booking.Mode,
			gameAreaValue(booking.GameArea),
			booking.NumberOfGames,
			eventTypeValue(booking.EventType),
			nullUUID(booking.EventRoomID),
			booking.EventStart,
			booking.EventEnd,
			bookingStartsAt(booking),
			booking.CustomerName,
			booking.CustomerPhone,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	for i := range booking.Sessions {
		session := &booking.Sessions[i]
		session.BookingID = booking.ID
		if err := r.createSession(ctx, executor, session); err != nil {
			return nil, err
		}
	}

	return booking, nil
}

// createSession вставляет одну игровую сессию
func (r *Repository) createSession(ctx context.Context, executor DBExecutor, session *domain.GameSession) error {
	query, args, err := psqlbuilder.Insert("game_sessions").
		Columns(
			"booking_id",
			"game_area",
			"start_datetime",
			"end_datetime",
			"laser_room_id",
			"session_order",
			"pause_before_minutes",
		).
		Values(
			session.BookingID,
			session.GameArea,
			session.StartDateTime,
			session.EndDateTime,
			nullUUID(session.LaserRoomID),
			session.SessionOrder,
			session.PauseBeforeMinutes,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: createSession - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&session.ID); err != nil {
		return fmt.Errorf("%w: createSession - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID вместе с игровыми сессиями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}

	if err := r.loadSessions(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings[0], nil
}

// ListActiveInWindow получает активные бронирования филиала, чьи игровые сессии
// или окно праздника строго пересекают [windowStart, windowEnd).
// Это снапшот для движка аллокации: сессии предзагружены.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельные
// подтверждения одного окна сериализовались.
func (r *Repository) ListActiveInWindow(
	ctx context.Context,
	branchID uuid.UUID,
	windowStart, windowEnd time.Time,
	excludeBookingID *int64,
) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.branch_id": branchID}).
		Where(squirrel.NotEq{"b.status": inactiveStatusStrings()}).
		Where(squirrel.Or{
			squirrel.Expr(
				"EXISTS (SELECT 1 FROM game_sessions gs WHERE gs.booking_id = b.id AND gs.start_datetime < ? AND gs.end_datetime > ?)",
				windowEnd, windowStart,
			),
			squirrel.Expr(
				"(b.event_start IS NOT NULL AND b.event_start < ? AND b.event_end > ?)",
				windowEnd, windowStart,
			),
		}).
		OrderBy("b.id ASC")

	if excludeBookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"b.id": *excludeBookingID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveInWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveInWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadSessions(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.user_id": userID}).
		OrderBy("b.starts_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadSessions(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// GetByBranchWithFilter получает бронирования филиала с гибкой фильтрацией
// по периоду, статусу, типу и включению неактивных бронирований
func (r *Repository) GetByBranchWithFilter(ctx context.Context, filter domain.BranchBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.branch_id": filter.BranchID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"b.starts_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		// EndDate включительно: берем все до конца дня
		selectBuilder = selectBuilder.Where(squirrel.Lt{"b.starts_at": filter.EndDate.AddDate(0, 0, 1)})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"b.status": inactiveStatusStrings()})
	}

	if filter.Type != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.type": *filter.Type})
	}

	selectBuilder = selectBuilder.OrderBy("b.starts_at ASC, b.id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBranchWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadSessions(ctx, executor, bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины.
// Строки сессий физически не удаляются: отмененное бронирование просто
// перестает участвовать в расчетах емкости.
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// loadSessions загружает игровые сессии и раскладывает их по бронированиям
func (r *Repository) loadSessions(ctx context.Context, executor DBExecutor, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]int64, len(bookings))
	byID := make(map[int64]*domain.Booking, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
		byID[b.ID] = b
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"game_area",
		"start_datetime",
		"end_datetime",
		"laser_room_id",
		"session_order",
		"pause_before_minutes",
	).
		From("game_sessions").
		Where(squirrel.Eq{"booking_id": ids}).
		OrderBy("booking_id ASC, session_order ASC, id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadSessions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadSessions - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var session domain.GameSession
		var laserRoomID uuid.NullUUID

		err := rows.Scan(
			&session.ID,
			&session.BookingID,
			&session.GameArea,
			&session.StartDateTime,
			&session.EndDateTime,
			&laserRoomID,
			&session.SessionOrder,
			&session.PauseBeforeMinutes,
		)
		if err != nil {
			return fmt.Errorf("%w: loadSessions - scan row: %v", ErrScanRow, err)
		}

		if laserRoomID.Valid {
			id := laserRoomID.UUID
			session.LaserRoomID = &id
		}

		if b, ok := byID[session.BookingID]; ok {
			b.Sessions = append(b.Sessions, session)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadSessions - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований (без сессий)
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var gameArea, eventType sql.NullString
		var numberOfGames sql.NullInt64
		var eventRoomID uuid.NullUUID
		var eventStart, eventEnd sql.NullTime
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.BranchID,
			&booking.UserID,
			&booking.Type,
			&booking.ParticipantsCount,
			&booking.Status,
			&booking.Mode,
			&gameArea,
			&numberOfGames,
			&eventType,
			&eventRoomID,
			&eventStart,
			&eventEnd,
			&booking.CustomerName,
			&booking.CustomerPhone,
			&booking.Notes,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		if gameArea.Valid {
			area := domain.GameArea(gameArea.String)
			booking.GameArea = &area
		}
		if numberOfGames.Valid {
			n := int(numberOfGames.Int64)
			booking.NumberOfGames = &n
		}
		if eventType.Valid {
			et := domain.EventType(eventType.String)
			booking.EventType = &et
		}
		if eventRoomID.Valid {
			id := eventRoomID.UUID
			booking.EventRoomID = &id
		}
		if eventStart.Valid {
			t := eventStart.Time
			booking.EventStart = &t
		}
		if eventEnd.Valid {
			t := eventEnd.Time
			booking.EventEnd = &t
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// bookingStartsAt возвращает денормализованное начало бронирования для
// сортировки и фильтрации по датам
func bookingStartsAt(b *domain.Booking) time.Time {
	if b.EventStart != nil {
		return *b.EventStart
	}
	if len(b.Sessions) > 0 {
		return b.Sessions[0].StartDateTime
	}
	return b.CreatedAt
}

func inactiveStatusStrings() []string {
	statuses := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

func gameAreaValue(a *domain.GameArea) interface{} {
	if a == nil {
		return nil
	}
	return string(*a)
}

func eventTypeValue(e *domain.EventType) interface{} {
	if e == nil {
		return nil
	}
	return string(*e)
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
