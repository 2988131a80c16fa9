package branch

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

// Repository репозиторий конфигурации филиалов: емкости, расписание, комнаты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория филиалов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetCapacity получает конфигурацию емкости филиала вместе с расписанием работы
func (r *Repository) GetCapacity(ctx context.Context, branchID uuid.UUID) (*domain.BranchCapacity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"branch_id",
		"game_duration_minutes",
		"max_concurrent_active_players",
		"laser_total_vests",
		"laser_spare_vests",
		"laser_exclusive_threshold",
		"created_at",
		"updated_at",
	).
		From("branch_capacity").
		Where(squirrel.Eq{"branch_id": branchID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCapacity - build select query: %v", ErrBuildQuery, err)
	}

	var capacity domain.BranchCapacity
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&capacity.BranchID,
		&capacity.GameDurationMinutes,
		&capacity.MaxConcurrentActivePlayers,
		&capacity.LaserTotalVests,
		&capacity.LaserSpareVests,
		&capacity.LaserExclusiveThreshold,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("%w: GetCapacity - execute query: %v", ErrExecQuery, err)
	}

	capacity.CreatedAt = createdAt.Time
	capacity.UpdatedAt = updatedAt.Time

	schedule, err := r.loadOpeningHours(ctx, executor, branchID)
	if err != nil {
		return nil, err
	}
	capacity.OpeningHours = schedule

	return &capacity, nil
}

// UpdateCapacity обновляет конфигурацию емкости филиала и его расписание.
// Upsert: филиал, у которого конфигурации еще нет, получает новую запись.
func (r *Repository) UpdateCapacity(ctx context.Context, capacity *domain.BranchCapacity) (*domain.BranchCapacity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("branch_capacity").
		Columns(
			"branch_id",
			"game_duration_minutes",
			"max_concurrent_active_players",
			"laser_total_vests",
			"laser_spare_vests",
			"laser_exclusive_threshold",
		).
		Values(
			capacity.BranchID,
			capacity.GameDurationMinutes,
			capacity.MaxConcurrentActivePlayers,
			capacity.LaserTotalVests,
			capacity.LaserSpareVests,
			capacity.LaserExclusiveThreshold,
		).
		Suffix(`ON CONFLICT (branch_id) DO UPDATE SET
			game_duration_minutes = EXCLUDED.game_duration_minutes,
			max_concurrent_active_players = EXCLUDED.max_concurrent_active_players,
			laser_total_vests = EXCLUDED.laser_total_vests,
			laser_spare_vests = EXCLUDED.laser_spare_vests,
			laser_exclusive_threshold = EXCLUDED.laser_exclusive_threshold,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateCapacity - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateCapacity - execute upsert: %v", ErrExecQuery, err)
	}

	capacity.CreatedAt = createdAt.Time
	capacity.UpdatedAt = updatedAt.Time

	if err := r.replaceOpeningHours(ctx, executor, capacity.BranchID, capacity.OpeningHours); err != nil {
		return nil, err
	}

	return capacity, nil
}

// ListActiveLaserRooms получает активные лазертаг-комнаты филиала
// в порядке возрастания емкости (при равенстве - по sort_order)
func (r *Repository) ListActiveLaserRooms(ctx context.Context, branchID uuid.UUID) ([]domain.LaserRoom, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"branch_id",
		"name",
		"capacity",
		"sort_order",
		"is_active",
	).
		From("laser_rooms").
		Where(squirrel.Eq{"branch_id": branchID, "is_active": true}).
		OrderBy("capacity ASC, sort_order ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveLaserRooms - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveLaserRooms - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]domain.LaserRoom, 0)
	for rows.Next() {
		var room domain.LaserRoom
		err := rows.Scan(
			&room.ID,
			&room.BranchID,
			&room.Name,
			&room.Capacity,
			&room.SortOrder,
			&room.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveLaserRooms - scan row: %v", ErrScanRow, err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveLaserRooms - rows error: %v", ErrScanRow, err)
	}

	return rooms, nil
}

// ListActiveEventRooms получает активные комнаты для праздников филиала
// в порядке возрастания емкости (при равенстве - по sort_order)
func (r *Repository) ListActiveEventRooms(ctx context.Context, branchID uuid.UUID) ([]domain.EventRoom, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"branch_id",
		"name",
		"capacity",
		"sort_order",
		"is_active",
	).
		From("event_rooms").
		Where(squirrel.Eq{"branch_id": branchID, "is_active": true}).
		OrderBy("capacity ASC, sort_order ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveEventRooms - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveEventRooms - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]domain.EventRoom, 0)
	for rows.Next() {
		var room domain.EventRoom
		err := rows.Scan(
			&room.ID,
			&room.BranchID,
			&room.Name,
			&room.Capacity,
			&room.SortOrder,
			&room.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveEventRooms - scan row: %v", ErrScanRow, err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveEventRooms - rows error: %v", ErrScanRow, err)
	}

	return rooms, nil
}

// loadOpeningHours загружает расписание работы филиала (7 строк, по одной на день недели)
func (r *Repository) loadOpeningHours(ctx context.Context, executor DBExecutor, branchID uuid.UUID) (domain.WeekSchedule, error) {
	var schedule domain.WeekSchedule

	query, args, err := psqlbuilder.Select(
		"weekday",
		"is_open",
		"open_time",
		"close_time",
	).
		From("branch_opening_hours").
		Where(squirrel.Eq{"branch_id": branchID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return schedule, fmt.Errorf("%w: loadOpeningHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return schedule, fmt.Errorf("%w: loadOpeningHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var weekday int
		var day domain.DaySchedule

		err := rows.Scan(&weekday, &day.IsOpen, &day.OpenTime, &day.CloseTime)
		if err != nil {
			return schedule, fmt.Errorf("%w: loadOpeningHours - scan row: %v", ErrScanRow, err)
		}

		setDaySchedule(&schedule, time.Weekday(weekday), day)
	}
	if err := rows.Err(); err != nil {
		return schedule, fmt.Errorf("%w: loadOpeningHours - rows error: %v", ErrScanRow, err)
	}

	return schedule, nil
}

// replaceOpeningHours перезаписывает расписание работы филиала
func (r *Repository) replaceOpeningHours(ctx context.Context, executor DBExecutor, branchID uuid.UUID, schedule domain.WeekSchedule) error {
	deleteQuery, deleteArgs, err := psqlbuilder.Delete("branch_opening_hours").
		Where(squirrel.Eq{"branch_id": branchID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceOpeningHours - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: replaceOpeningHours - execute delete: %v", ErrExecQuery, err)
	}

	insertBuilder := psqlbuilder.Insert("branch_opening_hours").
		Columns("branch_id", "weekday", "is_open", "open_time", "close_time")

	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		day := schedule.ForDay(weekday)
		insertBuilder = insertBuilder.Values(branchID, int(weekday), day.IsOpen, day.OpenTime, day.CloseTime)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceOpeningHours - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: replaceOpeningHours - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func setDaySchedule(schedule *domain.WeekSchedule, weekday time.Weekday, day domain.DaySchedule) {
	switch weekday {
	case time.Monday:
		schedule.Monday = day
	case time.Tuesday:
		schedule.Tuesday = day
	case time.Wednesday:
		schedule.Wednesday = day
	case time.Thursday:
		schedule.Thursday = day
	case time.Friday:
		schedule.Friday = day
	case time.Saturday:
		schedule.Saturday = day
	case time.Sunday:
		schedule.Sunday = day
	}
}
