package services

import (
	"errors"
	"fmt"
	"strings"

	"group_order_tracker/internal/models"
	"group_order_tracker/internal/repository"

	"gorm.io/gorm"
)

type CatalogService interface {
	AddProduct(name, description string) (*models.Product, error)
	UpdateProduct(id uint, name, description string) (*models.Product, error)
	DeleteProduct(id uint) (*models.Product, error)
	GetProduct(id uint) (*models.Product, error)
	ListProducts() ([]models.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

func (s *catalogService) AddProduct(name, description string) (*models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}

	if _, err := s.productRepo.GetByName(name); err == nil {
		return nil, ErrDuplicateName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check product name: %w", err)
	}

	product := &models.Product{Name: name, Description: description}
	if err := s.productRepo.Create(product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *catalogService) UpdateProduct(id uint, name, description string) (*models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}

	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	if existing, err := s.productRepo.GetByName(name); err == nil {
		if existing.ID != id {
			return nil, ErrDuplicateName
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check product name: %w", err)
	}

	product.Name = name
	product.Description = description
	if err := s.productRepo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// DeleteProduct removes the product along with its inventory record and any
// order items referencing it, including lines in closed historical orders.
// The removed product is returned so callers can name it in their message.
func (s *catalogService) DeleteProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	if err := s.productRepo.DeleteCascade(id); err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}
	return product, nil
}

func (s *catalogService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	return product, nil
}

func (s *catalogService) ListProducts() ([]models.Product, error) {
	return s.productRepo.GetAll()
}
