package models

// Inventory tracks the on-hand quantity per product. A product without a
// row has never been counted; readers treat that as zero.
type Inventory struct {
	ProductID uint    `json:"product_id" gorm:"primaryKey"`
	Quantity  int     `json:"quantity" gorm:"not null;default:0"`
	Product   Product `json:"-" gorm:"foreignKey:ProductID"`
}

func (Inventory) TableName() string {
	return "inventories"
}
