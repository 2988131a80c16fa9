package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/LTA-BookingService/pkg/types"
)

// DaySchedule расписание работы филиала на один день недели
type DaySchedule struct {
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// WeekSchedule расписание работы филиала по дням недели
type WeekSchedule struct {
	Monday    DaySchedule
	Tuesday   DaySchedule
	Wednesday DaySchedule
	Thursday  DaySchedule
	Friday    DaySchedule
	Saturday  DaySchedule
	Sunday    DaySchedule
}

// ForDay возвращает расписание на указанный день недели
func (w WeekSchedule) ForDay(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// BranchCapacity represents the configured physical limits of a branch.
// Read-only для движка аллокации: снапшот загружается на каждый запрос и
// передается явно, меняется только через админский surface.
type BranchCapacity struct {
	BranchID                   uuid.UUID
	OpeningHours               WeekSchedule
	GameDurationMinutes        int // длительность одной игры
	MaxConcurrentActivePlayers int // потолок одновременных игроков зоны ACTIVE
	LaserTotalVests            int // всего жилетов в филиале
	LaserSpareVests            int // запасные жилеты (не участвуют в емкости комнат)
	LaserExclusiveThreshold    int // размер группы, с которого комната становится эксклюзивной
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}
