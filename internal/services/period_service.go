package services

import (
	"errors"
	"fmt"

	"group_order_tracker/internal/models"
	"group_order_tracker/internal/repository"

	"gorm.io/gorm"
)

type PeriodService interface {
	CurrentOpenPeriod() (*models.OrderPeriod, error)
	OpenNewPeriod(month, year int) (*models.OrderPeriod, error)
	TogglePeriod(id uint) (*models.OrderPeriod, error)
	GetPeriod(id uint) (*models.OrderPeriod, error)
	GetPeriodByMonthYear(month, year int) (*models.OrderPeriod, error)
	ListPeriods() ([]models.OrderPeriod, error)
}

type periodService struct {
	periodRepo repository.OrderPeriodRepository
}

func NewPeriodService(periodRepo repository.OrderPeriodRepository) PeriodService {
	return &periodService{periodRepo: periodRepo}
}

// CurrentOpenPeriod returns the open period, or nil when none is open.
// Absence is a valid state, not an error.
func (s *periodService) CurrentOpenPeriod() (*models.OrderPeriod, error) {
	period, err := s.periodRepo.GetOpen()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up open period: %w", err)
	}
	return period, nil
}

// OpenNewPeriod creates the month/year period and opens it, closing whatever
// period was open before. Creation and closing commit together.
func (s *periodService) OpenNewPeriod(month, year int) (*models.OrderPeriod, error) {
	if month < 1 || month > 12 || year == 0 {
		return nil, fmt.Errorf("%w: invalid month or year", ErrInvalidInput)
	}

	_, err := s.periodRepo.GetByMonthYear(month, year)
	if err == nil {
		return nil, ErrDuplicatePeriod
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing period: %w", err)
	}

	period := &models.OrderPeriod{Month: month, Year: year}
	if err := s.periodRepo.CreateExclusive(period); err != nil {
		// A concurrent open of the same month surfaces here as a
		// unique-constraint violation rather than in the pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicatePeriod
		}
		return nil, fmt.Errorf("failed to create period: %w", err)
	}
	return period, nil
}

// TogglePeriod closes an open period, or opens a closed one and closes every
// other open period so at most one remains open.
func (s *periodService) TogglePeriod(id uint) (*models.OrderPeriod, error) {
	period, err := s.periodRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up period: %w", err)
	}

	if period.IsOpen {
		period.IsOpen = false
		if err := s.periodRepo.Update(period); err != nil {
			return nil, fmt.Errorf("failed to close period: %w", err)
		}
		return period, nil
	}

	if err := s.periodRepo.OpenExclusive(period); err != nil {
		return nil, fmt.Errorf("failed to open period: %w", err)
	}
	return period, nil
}

func (s *periodService) GetPeriod(id uint) (*models.OrderPeriod, error) {
	period, err := s.periodRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up period: %w", err)
	}
	return period, nil
}

func (s *periodService) GetPeriodByMonthYear(month, year int) (*models.OrderPeriod, error) {
	period, err := s.periodRepo.GetByMonthYear(month, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up period: %w", err)
	}
	return period, nil
}

// ListPeriods returns all periods, newest first.
func (s *periodService) ListPeriods() ([]models.OrderPeriod, error) {
	return s.periodRepo.GetAll()
}
