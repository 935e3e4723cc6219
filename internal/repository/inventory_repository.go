package repository

import (
	"group_order_tracker/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository interface {
	GetAll() ([]models.Inventory, error)
	GetByProductID(productID uint) (*models.Inventory, error)
	Upsert(inventory *models.Inventory) error
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

// GetAll returns one record per product that has ever been counted. Products
// never counted have no row; callers join against the catalog if they want
// zeroes for those.
func (r *inventoryRepository) GetAll() ([]models.Inventory, error) {
	var records []models.Inventory
	err := r.db.Preload("Product").Order("product_id").Find(&records).Error
	return records, err
}

func (r *inventoryRepository) GetByProductID(productID uint) (*models.Inventory, error) {
	var record models.Inventory
	err := r.db.Where("product_id = ?", productID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *inventoryRepository) Upsert(inventory *models.Inventory) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
	}).Create(inventory).Error
}
