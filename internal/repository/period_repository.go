package repository

import (
	"group_order_tracker/internal/models"

	"gorm.io/gorm"
)

type OrderPeriodRepository interface {
	GetOpen() (*models.OrderPeriod, error)
	GetByID(id uint) (*models.OrderPeriod, error)
	GetByMonthYear(month, year int) (*models.OrderPeriod, error)
	GetAll() ([]models.OrderPeriod, error)
	CreateExclusive(period *models.OrderPeriod) error
	OpenExclusive(period *models.OrderPeriod) error
	Update(period *models.OrderPeriod) error
}

type orderPeriodRepository struct {
	db *gorm.DB
}

func NewOrderPeriodRepository(db *gorm.DB) OrderPeriodRepository {
	return &orderPeriodRepository{db: db}
}

func (r *orderPeriodRepository) GetOpen() (*models.OrderPeriod, error) {
	var period models.OrderPeriod
	err := r.db.Where("is_open = ?", true).First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *orderPeriodRepository) GetByID(id uint) (*models.OrderPeriod, error) {
	var period models.OrderPeriod
	err := r.db.First(&period, id).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *orderPeriodRepository) GetByMonthYear(month, year int) (*models.OrderPeriod, error) {
	var period models.OrderPeriod
	err := r.db.Where("month = ? AND year = ?", month, year).First(&period).Error
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (r *orderPeriodRepository) GetAll() ([]models.OrderPeriod, error) {
	var periods []models.OrderPeriod
	err := r.db.Order("year desc, month desc").Find(&periods).Error
	return periods, err
}

// CreateExclusive closes every open period and creates the new one open, in
// one transaction. Closing is a bulk update so a corrupted multi-open state
// is repaired in passing.
func (r *orderPeriodRepository) CreateExclusive(period *models.OrderPeriod) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.OrderPeriod{}).Where("is_open = ?", true).
			Update("is_open", false).Error; err != nil {
			return err
		}
		period.IsOpen = true
		return tx.Create(period).Error
	})
}

// OpenExclusive closes every other open period and opens the target, in one
// transaction.
func (r *orderPeriodRepository) OpenExclusive(period *models.OrderPeriod) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.OrderPeriod{}).
			Where("is_open = ? AND id <> ?", true, period.ID).
			Update("is_open", false).Error; err != nil {
			return err
		}
		period.IsOpen = true
		return tx.Model(period).Update("is_open", true).Error
	})
}

func (r *orderPeriodRepository) Update(period *models.OrderPeriod) error {
	return r.db.Save(period).Error
}
