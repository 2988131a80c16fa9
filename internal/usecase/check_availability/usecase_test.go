package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LTA-BookingService/internal/domain"
	branchRepo "github.com/m04kA/LTA-BookingService/internal/infra/storage/branch"
	"github.com/m04kA/LTA-BookingService/pkg/ptr"
	"github.com/m04kA/LTA-BookingService/pkg/types"
)

// Пятница 2025-11-14; now фиксируется на утро этого дня
var (
	testBranchID = uuid.MustParse("7b75dc4c-5011-4d34-a39e-75f1d1df97d1")
	testNow      = time.Date(2025, 11, 14, 9, 0, 0, 0, time.UTC)
)

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBranchRepo struct {
	capacity   *domain.BranchCapacity
	laserRooms []domain.LaserRoom
	eventRooms []domain.EventRoom
	err        error
}

func (f *fakeBranchRepo) GetCapacity(_ context.Context, _ uuid.UUID) (*domain.BranchCapacity, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.capacity == nil {
		return nil, branchRepo.ErrBranchNotFound
	}
	return f.capacity, nil
}

func (f *fakeBranchRepo) ListActiveLaserRooms(_ context.Context, _ uuid.UUID) ([]domain.LaserRoom, error) {
	return f.laserRooms, f.err
}

func (f *fakeBranchRepo) ListActiveEventRooms(_ context.Context, _ uuid.UUID) ([]domain.EventRoom, error) {
	return f.eventRooms, f.err
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) ListActiveInWindow(_ context.Context, _ uuid.UUID, windowStart, windowEnd time.Time, _ *int64) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	// Снимается только пересекающее окно, как делает настоящий репозиторий
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if bookingOverlaps(b, windowStart, windowEnd) {
			result = append(result, b)
		}
	}
	return result, nil
}

func bookingOverlaps(b *domain.Booking, start, end time.Time) bool {
	if b.EventStart != nil && b.EventStart.Before(end) && b.EventEnd.After(start) {
		return true
	}
	for _, s := range b.Sessions {
		if s.StartDateTime.Before(end) && s.EndDateTime.After(start) {
			return true
		}
	}
	return false
}

func openDay(open, close string) domain.DaySchedule {
	return domain.DaySchedule{
		IsOpen:    true,
		OpenTime:  types.TimeString(open),
		CloseTime: types.TimeString(close),
	}
}

func weekOpen(open, close string) domain.WeekSchedule {
	day := openDay(open, close)
	return domain.WeekSchedule{
		Monday: day, Tuesday: day, Wednesday: day, Thursday: day,
		Friday: day, Saturday: day, Sunday: day,
	}
}

func testCapacity() *domain.BranchCapacity {
	return &domain.BranchCapacity{
		BranchID:                   testBranchID,
		OpeningHours:               weekOpen("10:00", "22:00"),
		GameDurationMinutes:        30,
		MaxConcurrentActivePlayers: 84,
		LaserTotalVests:            30,
		LaserSpareVests:            3,
		LaserExclusiveThreshold:    10,
	}
}

func newTestUseCase(branch *fakeBranchRepo, bookings *fakeBookingRepo) *UseCase {
	uc := NewUseCase(bookings, branch, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}
	return uc
}

func activeRequest(date, clock string, participants, games int) *Request {
	return &Request{
		BranchID:      testBranchID,
		Date:          date,
		Time:          clock,
		Participants:  participants,
		Type:          domain.TypeGame,
		GameArea:      ptr.Ptr(domain.AreaActive),
		NumberOfGames: ptr.Ptr(games),
	}
}

func existingActive(id int64, participants int, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		ID:                id,
		BranchID:          testBranchID,
		Type:              domain.TypeGame,
		ParticipantsCount: participants,
		Status:            domain.StatusConfirmed,
		Mode:              domain.ModeSingle,
		Sessions: []domain.GameSession{
			{GameArea: domain.AreaActive, StartDateTime: start, EndDateTime: end, SessionOrder: 1},
		},
	}
}

func day(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2025, 11, 14, hour, min, 0, 0, time.UTC)
}

func TestExecute_ValidationVerdicts(t *testing.T) {
	uc := newTestUseCase(&fakeBranchRepo{capacity: testCapacity()}, &fakeBookingRepo{})

	tests := []struct {
		name   string
		req    *Request
		reason domain.Reason
	}{
		{
			name:   "некорректная дата",
			req:    activeRequest("14-11-2025", "14:00", 10, 1),
			reason: domain.ReasonInvalidDate,
		},
		{
			name:   "некорректное время",
			req:    activeRequest("2025-11-14", "25:99", 10, 1),
			reason: domain.ReasonInvalidTime,
		},
		{
			name:   "прошедшая дата",
			req:    activeRequest("2025-11-13", "14:00", 10, 1),
			reason: domain.ReasonDatePast,
		},
		{
			name: "не указана игровая зона",
			req: &Request{
				BranchID: testBranchID, Date: "2025-11-14", Time: "14:00",
				Participants: 10, Type: domain.TypeGame,
			},
			reason: domain.ReasonMissingGameArea,
		},
		{
			name: "не указано количество игр",
			req: &Request{
				BranchID: testBranchID, Date: "2025-11-14", Time: "14:00",
				Participants: 10, Type: domain.TypeGame, GameArea: ptr.Ptr(domain.AreaLaser),
			},
			reason: domain.ReasonMissingNumberOfGames,
		},
		{
			name: "праздник меньше минимума участников",
			req: &Request{
				BranchID: testBranchID, Date: "2025-11-14", Time: "14:00",
				Participants: 10, Type: domain.TypeEvent, EventType: ptr.Ptr(domain.EventMix),
			},
			reason: domain.ReasonEventMinimumParticipants,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), tt.req)
			require.NoError(t, err)
			require.False(t, resp.Available)
			require.NotNil(t, resp.Reason)
			assert.Equal(t, tt.reason, *resp.Reason)
			assert.NotNil(t, resp.Message)
		})
	}
}

func TestExecute_OpeningHoursBoundary(t *testing.T) {
	uc := newTestUseCase(&fakeBranchRepo{capacity: testCapacity()}, &fakeBookingRepo{})
	ctx := context.Background()

	// Ровно на закрытии - отказ
	atClose, err := uc.Execute(ctx, activeRequest("2025-11-14", "22:00", 10, 1))
	require.NoError(t, err)
	require.False(t, atClose.Available)
	assert.Equal(t, domain.ReasonOutsideHours, *atClose.Reason)

	// За одну игру до закрытия - принимается
	lastGame, err := uc.Execute(ctx, activeRequest("2025-11-14", "21:30", 10, 1))
	require.NoError(t, err)
	assert.True(t, lastGame.Available)

	// До открытия - отказ
	beforeOpen, err := uc.Execute(ctx, activeRequest("2025-11-14", "09:30", 10, 1))
	require.NoError(t, err)
	require.False(t, beforeOpen.Available)
	assert.Equal(t, domain.ReasonOutsideHours, *beforeOpen.Reason)

	// Две игры, хвост вылезает за закрытие - отказ
	tooLong, err := uc.Execute(ctx, activeRequest("2025-11-14", "21:30", 10, 2))
	require.NoError(t, err)
	require.False(t, tooLong.Available)
	assert.Equal(t, domain.ReasonOutsideHours, *tooLong.Reason)
}

func TestExecute_ClosedDay(t *testing.T) {
	capacity := testCapacity()
	capacity.OpeningHours.Friday = domain.DaySchedule{IsOpen: false}

	uc := newTestUseCase(&fakeBranchRepo{capacity: capacity}, &fakeBookingRepo{})

	resp, err := uc.Execute(context.Background(), activeRequest("2025-11-14", "14:00", 10, 1))
	require.NoError(t, err)
	require.False(t, resp.Available)
	assert.Equal(t, domain.ReasonClosedDay, *resp.Reason)
	// Соседние дни открыты - альтернативы должны найтись
	assert.Greater(t, len(resp.Alternatives), 1)
}

func TestExecute_ActiveCapacityAvailable(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		existingActive(1, 10, day(t, 14, 0), day(t, 14, 30)),
		existingActive(2, 20, day(t, 14, 0), day(t, 14, 30)),
	}}
	uc := newTestUseCase(&fakeBranchRepo{capacity: testCapacity()}, bookings)

	resp, err := uc.Execute(context.Background(), activeRequest("2025-11-14", "14:10", 54, 1))
	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Nil(t, resp.Reason)
	assert.Empty(t, resp.Alternatives)
}

func TestExecute_ActiveCapacityExceeded_WithAlternatives(t *testing.T) {
	// 84 человека занимают 20:00-20:30; запрос на 30 человек в 20:00 не влезает
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		existingActive(1, 84, day(t, 20, 0), day(t, 20, 30)),
	}}
	uc := newTestUseCase(&fakeBranchRepo{capacity: testCapacity()}, bookings)

	resp, err := uc.Execute(context.Background(), activeRequest("2025-11-14", "20:00", 30, 1))
	require.NoError(t, err)
	require.False(t, resp.Available)
	assert.Equal(t, domain.ReasonNotAvailable, *resp.Reason)

	require.NotEmpty(t, resp.Alternatives)
	require.LessOrEqual(t, len(resp.Alternatives), domain.MaxAlternatives)

	// Назад: 19:45 пересекает занятое окно, первым проходит 19:30
	first := resp.Alternatives[0]
	require.NotNil(t, first.Time)
	assert.Equal(t, "19:30", *first.Time)
	assert.Equal(t, domain.SlotTypeSlot, first.Type)

	// Вперед: 20:15 пересекает, первым проходит 20:30
	second := resp.Alternatives[1]
	require.NotNil(t, second.Time)
	assert.Equal(t, "20:30", *second.Time)

	// Смещения по дням: -2 и -1 в прошлом и пропущены, +1 и +2 доступны
	dates := make([]string, 0)
	for _, slot := range resp.Alternatives[2:] {
		if slot.Type == domain.SlotTypeSlot {
			require.NotNil(t, slot.Date)
			dates = append(dates, *slot.Date)
		}
	}
	assert.Equal(t, []string{"2025-11-15", "2025-11-16"}, dates)

	// Последний вариант всегда синтетический
	last := resp.Alternatives[len(resp.Alternatives)-1]
	assert.Equal(t, domain.SlotTypeCustom, last.Type)
	assert.Nil(t, last.Date)
	assert.Nil(t, last.Time)
}

func TestExecute_FullyBlocked_OnlyCustomAlternative(t *testing.T) {
	capacity := testCapacity()
	capacity.MaxConcurrentActivePlayers = 5

	uc := newTestUseCase(&fakeBranchRepo{capacity: capacity}, &fakeBookingRepo{})

	// Группа больше потолка не влезет ни в одно окно
	resp, err := uc.Execute(context.Background(), activeRequest("2025-11-14", "14:00", 10, 1))
	require.NoError(t, err)
	require.False(t, resp.Available)
	require.Len(t, resp.Alternatives, 1)
	assert.Equal(t, domain.SlotTypeCustom, resp.Alternatives[0].Type)
}

func TestExecute_EventMix_ActiveSegmentFails(t *testing.T) {
	// Сценарий: комната свободна, но ACTIVE-сегмент праздника упирается в потолок
	room := domain.EventRoom{ID: uuid.New(), BranchID: testBranchID, Name: "Banket", Capacity: 20, SortOrder: 1, IsActive: true}
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		existingActive(1, 80, day(t, 14, 0), day(t, 15, 0)),
	}}

	branch := &fakeBranchRepo{
		capacity:   testCapacity(),
		eventRooms: []domain.EventRoom{room},
		laserRooms: []domain.LaserRoom{
			{ID: uuid.New(), BranchID: testBranchID, Name: "Laser", Capacity: 27, SortOrder: 1, IsActive: true},
		},
	}
	uc := newTestUseCase(branch, bookings)

	req := &Request{
		BranchID: testBranchID, Date: "2025-11-14", Time: "14:00",
		Participants: 15, Type: domain.TypeEvent, EventType: ptr.Ptr(domain.EventMix),
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.False(t, resp.Available)
	assert.Equal(t, domain.ReasonEventActiveCapacity, *resp.Reason)
}

func TestExecute_EventRoomUnavailable(t *testing.T) {
	room := domain.EventRoom{ID: uuid.New(), BranchID: testBranchID, Name: "Banket", Capacity: 20, SortOrder: 1, IsActive: true}

	// Другой праздник уже держит комнату на пересекающемся окне
	other := &domain.Booking{
		ID: 7, BranchID: testBranchID, Type: domain.TypeEvent,
		ParticipantsCount: 16, Status: domain.StatusConfirmed,
		EventRoomID: &room.ID,
		EventStart:  ptr.Ptr(day(t, 13, 0)),
		EventEnd:    ptr.Ptr(day(t, 15, 0)),
	}

	branch := &fakeBranchRepo{capacity: testCapacity(), eventRooms: []domain.EventRoom{room}}
	uc := newTestUseCase(branch, &fakeBookingRepo{bookings: []*domain.Booking{other}})

	req := &Request{
		BranchID: testBranchID, Date: "2025-11-14", Time: "14:00",
		Participants: 15, Type: domain.TypeEvent, EventType: ptr.Ptr(domain.EventActive),
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.False(t, resp.Available)
	assert.Equal(t, domain.ReasonEventRoomUnavailable, *resp.Reason)
}

func TestExecute_EventLongGames_SegmentTailConflict(t *testing.T) {
	// При играх по 60 минут сегменты праздника заканчиваются в start+135,
	// позже двухчасового окна комнаты. Конфликт в этом хвосте обязан попадать
	// в снапшот и ронять проверку.
	capacity := testCapacity()
	capacity.GameDurationMinutes = 60

	room := domain.EventRoom{ID: uuid.New(), BranchID: testBranchID, Name: "Banket", Capacity: 20, SortOrder: 1, IsActive: true}
	laser := domain.LaserRoom{ID: uuid.New(), BranchID: testBranchID, Name: "Laser", Capacity: 27, SortOrder: 1, IsActive: true}

	// Эксклюзивная группа держит единственную комнату 16:00-16:30: вне окна
	// комнаты [14:00, 16:00), но внутри второго сегмента [15:15, 16:15)
	holder := &domain.Booking{
		ID: 9, BranchID: testBranchID, Type: domain.TypeGame,
		ParticipantsCount: 12, Status: domain.StatusConfirmed,
		Mode: domain.ModeExclusive,
		Sessions: []domain.GameSession{
			{GameArea: domain.AreaLaser, StartDateTime: day(t, 16, 0), EndDateTime: day(t, 16, 30), LaserRoomID: &laser.ID, SessionOrder: 1},
		},
	}

	branch := &fakeBranchRepo{
		capacity:   capacity,
		eventRooms: []domain.EventRoom{room},
		laserRooms: []domain.LaserRoom{laser},
	}
	uc := newTestUseCase(branch, &fakeBookingRepo{bookings: []*domain.Booking{holder}})

	req := &Request{
		BranchID: testBranchID, Date: "2025-11-14", Time: "14:00",
		Participants: 15, Type: domain.TypeEvent, EventType: ptr.Ptr(domain.EventLaser),
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.False(t, resp.Available)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, domain.ReasonEventLaserUnavailable, *resp.Reason)
}

func TestExecute_EventLongGames_TailPastClosing(t *testing.T) {
	// Окно комнаты [21:00, 23:00) помещается в расписание, но последний
	// сегмент заканчивается в 23:15, уже после закрытия
	capacity := testCapacity()
	capacity.GameDurationMinutes = 60
	capacity.OpeningHours = weekOpen("10:00", "23:00")

	room := domain.EventRoom{ID: uuid.New(), BranchID: testBranchID, Name: "Banket", Capacity: 20, SortOrder: 1, IsActive: true}
	laser := domain.LaserRoom{ID: uuid.New(), BranchID: testBranchID, Name: "Laser", Capacity: 27, SortOrder: 1, IsActive: true}

	branch := &fakeBranchRepo{
		capacity:   capacity,
		eventRooms: []domain.EventRoom{room},
		laserRooms: []domain.LaserRoom{laser},
	}
	uc := newTestUseCase(branch, &fakeBookingRepo{})

	req := &Request{
		BranchID: testBranchID, Date: "2025-11-14", Time: "21:00",
		Participants: 15, Type: domain.TypeEvent, EventType: ptr.Ptr(domain.EventLaser),
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.False(t, resp.Available)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, domain.ReasonOutsideHours, *resp.Reason)
}

func TestExecute_BranchNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBranchRepo{}, &fakeBookingRepo{})

	_, err := uc.Execute(context.Background(), activeRequest("2025-11-14", "14:00", 10, 1))
	require.ErrorIs(t, err, ErrBranchNotFound)
}

func TestExecute_InfraErrorNotMaskedAsUnavailable(t *testing.T) {
	branch := &fakeBranchRepo{capacity: testCapacity()}
	bookings := &fakeBookingRepo{err: context.DeadlineExceeded}
	uc := newTestUseCase(branch, bookings)

	_, err := uc.Execute(context.Background(), activeRequest("2025-11-14", "14:00", 10, 1))
	require.ErrorIs(t, err, ErrInternal)
}
