package branchconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/LTA-BookingService/internal/domain"
	branchRepo "github.com/m04kA/LTA-BookingService/internal/infra/storage/branch"
	"github.com/m04kA/LTA-BookingService/internal/service/branchconfig/models"
)

// Service сервис конфигурации филиалов: емкости, расписание, комнаты.
// Движок распределения читает эти настройки как снапшот; менять их можно
// только через этот сервис.
type Service struct {
	branchRepo BranchRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(branchRepo BranchRepository, logger Logger) *Service {
	return &Service{
		branchRepo: branchRepo,
		logger:     logger,
	}
}

// Get получает конфигурацию филиала вместе со списком комнат
func (s *Service) Get(ctx context.Context, branchID uuid.UUID) (*models.ConfigResponse, error) {
	s.logger.Info("Get: fetching config for branch=%s", branchID)

	capacity, err := s.branchRepo.GetCapacity(ctx, branchID)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			s.logger.Warn("Get: branch %s not found", branchID)
			return nil, ErrBranchNotFound
		}
		s.logger.Error("Get: repository error for branch=%s: %v", branchID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	laserRooms, err := s.branchRepo.ListActiveLaserRooms(ctx, branchID)
	if err != nil {
		s.logger.Error("Get: failed to list laser rooms for branch=%s: %v", branchID, err)
		return nil, fmt.Errorf("%w: Get - failed to list laser rooms: %v", ErrInternal, err)
	}

	eventRooms, err := s.branchRepo.ListActiveEventRooms(ctx, branchID)
	if err != nil {
		s.logger.Error("Get: failed to list event rooms for branch=%s: %v", branchID, err)
		return nil, fmt.Errorf("%w: Get - failed to list event rooms: %v", ErrInternal, err)
	}

	return models.FromDomainCapacity(capacity, laserRooms, eventRooms), nil
}

// Update обновляет конфигурацию филиала
// Доступно только менеджерам
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating config for branch=%s by user=%d", req.BranchID, req.UserID)

	if !req.IsManager {
		s.logger.Warn("Update: user=%d is not a manager", req.UserID)
		return nil, ErrAccessDenied
	}

	if err := validateUpdateRequest(req); err != nil {
		s.logger.Warn("Update: validation failed for branch=%s: %v", req.BranchID, err)
		return nil, err
	}

	capacity := &domain.BranchCapacity{
		BranchID:                   req.BranchID,
		OpeningHours:               req.OpeningHours.ToDomainWeek(),
		GameDurationMinutes:        req.GameDurationMinutes,
		MaxConcurrentActivePlayers: req.MaxConcurrentActivePlayers,
		LaserTotalVests:            req.LaserTotalVests,
		LaserSpareVests:            req.LaserSpareVests,
		LaserExclusiveThreshold:    req.LaserExclusiveThreshold,
	}

	updated, err := s.branchRepo.UpdateCapacity(ctx, capacity)
	if err != nil {
		s.logger.Error("Update: repository error for branch=%s: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	laserRooms, err := s.branchRepo.ListActiveLaserRooms(ctx, req.BranchID)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - failed to list laser rooms: %v", ErrInternal, err)
	}
	eventRooms, err := s.branchRepo.ListActiveEventRooms(ctx, req.BranchID)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - failed to list event rooms: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated config for branch=%s", req.BranchID)
	return models.FromDomainCapacity(updated, laserRooms, eventRooms), nil
}

// validateUpdateRequest проверяет бизнес-границы значений конфигурации
func validateUpdateRequest(req *models.UpdateConfigRequest) error {
	if !isSupportedDuration(req.GameDurationMinutes) {
		return fmt.Errorf("%w: gameDurationMinutes must be one of %v",
			ErrInvalidInput, domain.SupportedGameDurations)
	}

	if req.MaxConcurrentActivePlayers < domain.MinActivePlayersCeiling ||
		req.MaxConcurrentActivePlayers > domain.MaxActivePlayersCeiling {
		return fmt.Errorf("%w: maxConcurrentActivePlayers must be between %d and %d",
			ErrInvalidInput, domain.MinActivePlayersCeiling, domain.MaxActivePlayersCeiling)
	}

	if req.LaserTotalVests < 0 || req.LaserSpareVests < 0 {
		return fmt.Errorf("%w: vest counts must be non-negative", ErrInvalidInput)
	}
	if req.LaserSpareVests > req.LaserTotalVests {
		return fmt.Errorf("%w: spare vests cannot exceed total vests", ErrInvalidInput)
	}

	if req.LaserExclusiveThreshold < domain.MinExclusiveThreshold ||
		req.LaserExclusiveThreshold > domain.MaxExclusiveThreshold {
		return fmt.Errorf("%w: laserExclusiveThreshold must be between %d and %d",
			ErrInvalidInput, domain.MinExclusiveThreshold, domain.MaxExclusiveThreshold)
	}

	return validateWeekSchedule(req.OpeningHours)
}

// validateWeekSchedule проверяет расписание: для открытых дней время валидно
// и открытие строго раньше закрытия
func validateWeekSchedule(week models.WeekSchedule) error {
	days := map[string]models.DaySchedule{
		"monday":    week.Monday,
		"tuesday":   week.Tuesday,
		"wednesday": week.Wednesday,
		"thursday":  week.Thursday,
		"friday":    week.Friday,
		"saturday":  week.Saturday,
		"sunday":    week.Sunday,
	}

	for name, day := range days {
		if !day.IsOpen {
			continue
		}

		domainDay := models.WeekSchedule{Monday: day}.ToDomainWeek().Monday
		if err := domainDay.OpenTime.Validate(); err != nil {
			return fmt.Errorf("%w: %s openTime: %v", ErrInvalidInput, name, err)
		}
		if domainDay.CloseTime != "24:00" {
			if err := domainDay.CloseTime.Validate(); err != nil {
				return fmt.Errorf("%w: %s closeTime: %v", ErrInvalidInput, name, err)
			}
		}
		if !domainDay.OpenTime.IsBefore(domainDay.CloseTime) {
			return fmt.Errorf("%w: %s openTime must be before closeTime", ErrInvalidInput, name)
		}
	}

	return nil
}

func isSupportedDuration(minutes int) bool {
	for _, d := range domain.SupportedGameDurations {
		if d == minutes {
			return true
		}
	}
	return false
}
