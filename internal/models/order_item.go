package models

// OrderItem is one product line inside an order. Lines are owned by their
// order and replaced wholesale when the order is amended.
type OrderItem struct {
	OrderID   uint    `json:"order_id" gorm:"primaryKey"`
	ProductID uint    `json:"product_id" gorm:"primaryKey"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Product   Product `json:"-" gorm:"foreignKey:ProductID"`
}
