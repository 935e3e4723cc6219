package services

import (
	"errors"
	"fmt"
	"strings"

	"group_order_tracker/internal/models"
	"group_order_tracker/internal/repository"

	"gorm.io/gorm"
)

// OrderLine is one product/quantity pair submitted by a caller. Lines with
// an unknown product id or a non-positive quantity are dropped silently.
type OrderLine struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type OrderService interface {
	PlaceOrder(userID, userName string, lines []OrderLine) (*models.Order, error)
	RemoveOrder(orderID uint, requireUserID string) error
	ToggleDelivery(orderID uint) (*models.Order, error)
	OrdersForPeriod(periodID uint) ([]models.Order, error)
	OrderForUser(userID string, periodID uint) (*models.Order, error)
}

type orderService struct {
	orderRepo  repository.OrderRepository
	periodRepo repository.OrderPeriodRepository
}

func NewOrderService(orderRepo repository.OrderRepository, periodRepo repository.OrderPeriodRepository) OrderService {
	return &orderService{orderRepo: orderRepo, periodRepo: periodRepo}
}

// PlaceOrder creates the user's order for the open period, or amends it if
// one already exists. An amend is a full replace: every previous line is
// discarded and the surviving submitted lines become the order. Lines whose
// quantity is zero or negative are skipped without error; if nothing
// survives the order is still kept, with zero items.
func (s *orderService) PlaceOrder(userID, userName string, lines []OrderLine) (*models.Order, error) {
	if strings.TrimSpace(userName) == "" || len(lines) == 0 {
		return nil, fmt.Errorf("%w: user name and items are required", ErrInvalidInput)
	}
	if userID == "" {
		userID = userName
	}

	period, err := s.currentOpenPeriod()
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByUserAndPeriod(userID, period.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up existing order: %w", err)
		}
		order = &models.Order{
			UserID:        userID,
			UserName:      userName,
			OrderPeriodID: period.ID,
		}
	} else {
		order.UserName = userName
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == 0 || line.Quantity <= 0 {
			continue
		}
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	if err := s.orderRepo.SaveWithItems(order, items); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	return order, nil
}

// RemoveOrder deletes an order from the currently open period. Orders in
// closed periods are immutable history and report NotFound. When
// requireUserID is set, an ownership mismatch also reports NotFound so the
// caller cannot probe for other users' orders.
func (s *orderService) RemoveOrder(orderID uint, requireUserID string) error {
	period, err := s.currentOpenPeriod()
	if err != nil {
		return err
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to look up order: %w", err)
	}

	if order.OrderPeriodID != period.ID {
		return ErrNotFound
	}
	if requireUserID != "" && order.UserID != requireUserID {
		return ErrNotFound
	}

	if err := s.orderRepo.DeleteWithItems(order.ID); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

// ToggleDelivery flips the delivered flag. Historical orders may be marked
// too; delivery often happens after the period has closed.
func (s *orderService) ToggleDelivery(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up order: %w", err)
	}

	order.IsDelivered = !order.IsDelivered
	if err := s.orderRepo.Update(order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return order, nil
}

func (s *orderService) OrdersForPeriod(periodID uint) ([]models.Order, error) {
	return s.orderRepo.GetByPeriod(periodID)
}

func (s *orderService) OrderForUser(userID string, periodID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByUserAndPeriod(userID, periodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up order: %w", err)
	}
	return order, nil
}

func (s *orderService) currentOpenPeriod() (*models.OrderPeriod, error) {
	period, err := s.periodRepo.GetOpen()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoOpenPeriod
		}
		return nil, fmt.Errorf("failed to look up open period: %w", err)
	}
	return period, nil
}
