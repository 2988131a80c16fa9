package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/LTA-BookingService/internal/domain"
	"github.com/m04kA/LTA-BookingService/pkg/types"
)

// DaySchedule расписание одного дня недели
type DaySchedule struct {
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime,omitempty"`  // HH:MM
	CloseTime string `json:"closeTime,omitempty"` // HH:MM
}

// WeekSchedule расписание по дням недели
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// UpdateConfigRequest запрос на обновление конфигурации филиала
type UpdateConfigRequest struct {
	UserID    int64     `json:"-"`
	IsManager bool      `json:"-"`
	BranchID  uuid.UUID `json:"-"`

	OpeningHours               WeekSchedule `json:"openingHours"`
	GameDurationMinutes        int          `json:"gameDurationMinutes"`
	MaxConcurrentActivePlayers int          `json:"maxConcurrentActivePlayers"`
	LaserTotalVests            int          `json:"laserTotalVests"`
	LaserSpareVests            int          `json:"laserSpareVests"`
	LaserExclusiveThreshold    int          `json:"laserExclusiveThreshold"`
}

// RoomResponse комната филиала
type RoomResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	SortOrder int       `json:"sortOrder"`
}

// ConfigResponse конфигурация филиала
type ConfigResponse struct {
	BranchID                   uuid.UUID    `json:"branchId"`
	OpeningHours               WeekSchedule `json:"openingHours"`
	GameDurationMinutes        int          `json:"gameDurationMinutes"`
	MaxConcurrentActivePlayers int          `json:"maxConcurrentActivePlayers"`
	LaserTotalVests            int          `json:"laserTotalVests"`
	LaserSpareVests            int          `json:"laserSpareVests"`
	LaserExclusiveThreshold    int          `json:"laserExclusiveThreshold"`

	LaserRooms []RoomResponse `json:"laserRooms"`
	EventRooms []RoomResponse `json:"eventRooms"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Методы конвертации

// FromDomainCapacity конвертирует domain модель в DTO
func FromDomainCapacity(c *domain.BranchCapacity, laserRooms []domain.LaserRoom, eventRooms []domain.EventRoom) *ConfigResponse {
	resp := &ConfigResponse{
		BranchID:                   c.BranchID,
		OpeningHours:               fromDomainWeek(c.OpeningHours),
		GameDurationMinutes:        c.GameDurationMinutes,
		MaxConcurrentActivePlayers: c.MaxConcurrentActivePlayers,
		LaserTotalVests:            c.LaserTotalVests,
		LaserSpareVests:            c.LaserSpareVests,
		LaserExclusiveThreshold:    c.LaserExclusiveThreshold,
		LaserRooms:                 make([]RoomResponse, 0, len(laserRooms)),
		EventRooms:                 make([]RoomResponse, 0, len(eventRooms)),
		CreatedAt:                  c.CreatedAt,
		UpdatedAt:                  c.UpdatedAt,
	}

	for _, room := range laserRooms {
		resp.LaserRooms = append(resp.LaserRooms, RoomResponse{
			ID: room.ID, Name: room.Name, Capacity: room.Capacity, SortOrder: room.SortOrder,
		})
	}
	for _, room := range eventRooms {
		resp.EventRooms = append(resp.EventRooms, RoomResponse{
			ID: room.ID, Name: room.Name, Capacity: room.Capacity, SortOrder: room.SortOrder,
		})
	}

	return resp
}

// ToDomainWeek конвертирует расписание DTO в domain модель
func (w WeekSchedule) ToDomainWeek() domain.WeekSchedule {
	return domain.WeekSchedule{
		Monday:    w.Monday.toDomain(),
		Tuesday:   w.Tuesday.toDomain(),
		Wednesday: w.Wednesday.toDomain(),
		Thursday:  w.Thursday.toDomain(),
		Friday:    w.Friday.toDomain(),
		Saturday:  w.Saturday.toDomain(),
		Sunday:    w.Sunday.toDomain(),
	}
}

func (d DaySchedule) toDomain() domain.DaySchedule {
	return domain.DaySchedule{
		IsOpen:    d.IsOpen,
		OpenTime:  types.TimeString(d.OpenTime),
		CloseTime: types.TimeString(d.CloseTime),
	}
}

func fromDomainWeek(w domain.WeekSchedule) WeekSchedule {
	return WeekSchedule{
		Monday:    fromDomainDay(w.Monday),
		Tuesday:   fromDomainDay(w.Tuesday),
		Wednesday: fromDomainDay(w.Wednesday),
		Thursday:  fromDomainDay(w.Thursday),
		Friday:    fromDomainDay(w.Friday),
		Saturday:  fromDomainDay(w.Saturday),
		Sunday:    fromDomainDay(w.Sunday),
	}
}

func fromDomainDay(d domain.DaySchedule) DaySchedule {
	return DaySchedule{
		IsOpen:    d.IsOpen,
		OpenTime:  d.OpenTime.String(),
		CloseTime: d.CloseTime.String(),
	}
}
