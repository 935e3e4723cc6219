package repository

import (
	"group_order_tracker/internal/models"

	"gorm.io/gorm"
)

type OrderRepository interface {
	GetByID(id uint) (*models.Order, error)
	GetByUserAndPeriod(userID string, periodID uint) (*models.Order, error)
	GetByPeriod(periodID uint) ([]models.Order, error)
	SaveWithItems(order *models.Order, items []models.OrderItem) error
	DeleteWithItems(id uint) error
	Update(order *models.Order) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items.Product").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByUserAndPeriod(userID string, periodID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items.Product").
		Where("user_id = ? AND order_period_id = ?", userID, periodID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByPeriod(periodID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items.Product").
		Where("order_period_id = ?", periodID).
		Order("id").
		Find(&orders).Error
	return orders, err
}

// SaveWithItems persists an order and its full item set in one transaction.
// For an existing order the previous items are removed first, so the item
// set always equals the latest submission. A new order is created before its
// items so the generated id can be attached to them.
func (r *orderRepository) SaveWithItems(order *models.Order, items []models.OrderItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if order.ID == 0 {
			if err := tx.Omit("Items").Create(order).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Omit("Items").Save(order).Error; err != nil {
				return err
			}
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		order.Items = items
		return nil
	})
}

func (r *orderRepository) DeleteWithItems(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
}

func (r *orderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}
