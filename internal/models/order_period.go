package models

import (
	"fmt"
	"time"
)

// OrderPeriod is a month/year window during which orders are accepted.
// At most one period is open at any time.
type OrderPeriod struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Month     int       `json:"month" gorm:"not null;uniqueIndex:idx_period_month_year"`
	Year      int       `json:"year" gorm:"not null;uniqueIndex:idx_period_month_year"`
	IsOpen    bool      `json:"is_open" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *OrderPeriod) Label() string {
	return fmt.Sprintf("%d/%d", p.Month, p.Year)
}
