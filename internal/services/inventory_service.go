package services

import (
	"errors"
	"fmt"

	"group_order_tracker/internal/models"
	"group_order_tracker/internal/repository"

	"gorm.io/gorm"
)

type InventoryService interface {
	ListAll() ([]models.Inventory, error)
	SetQuantity(productID uint, quantity int) (*models.Inventory, error)
}

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	productRepo   repository.ProductRepository
}

func NewInventoryService(inventoryRepo repository.InventoryRepository, productRepo repository.ProductRepository) InventoryService {
	return &inventoryService{inventoryRepo: inventoryRepo, productRepo: productRepo}
}

// ListAll returns records only for products that have been counted at least
// once. Front ends join against the catalog to show zero for the rest.
func (s *inventoryService) ListAll() ([]models.Inventory, error) {
	return s.inventoryRepo.GetAll()
}

// SetQuantity overwrites the on-hand count for a product, creating the
// record if this is the first count. Setting the same quantity twice is a
// no-op the second time.
func (s *inventoryService) SetQuantity(productID uint, quantity int) (*models.Inventory, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrInvalidInput)
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	record := &models.Inventory{ProductID: productID, Quantity: quantity}
	if err := s.inventoryRepo.Upsert(record); err != nil {
		return nil, fmt.Errorf("failed to update inventory: %w", err)
	}
	record.Product = *product
	return record, nil
}
