package models

import (
	"time"
)

// Order is one member's submission for an order period. The user_id is an
// external identity (Discord ID or username), so a user may hold at most
// one order per period.
type Order struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	UserID        string      `json:"user_id" gorm:"size:100;not null;uniqueIndex:idx_order_user_period"`
	UserName      string      `json:"user_name" gorm:"size:100;not null"`
	OrderPeriodID uint        `json:"order_period_id" gorm:"not null;uniqueIndex:idx_order_user_period"`
	IsDelivered   bool        `json:"is_delivered" gorm:"default:false"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}
