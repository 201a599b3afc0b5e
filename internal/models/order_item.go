package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem is a single order line. ProductName and Price are catalog
// snapshots taken at order creation.
type OrderItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // primary key
	OrderID     uint           `gorm:"index;not null" json:"order_id"`                            // owning order id
	ProductID   string         `gorm:"index;not null" json:"product_id"`                          // opaque product id
	ProductName string         `gorm:"not null" json:"product_name"`                              // product name snapshot
	Quantity    int            `gorm:"not null" json:"quantity"`                                  // quantity (> 0)
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`        // unit price snapshot
	TotalPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`  // price * quantity
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // creation time
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                                   // update time
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // soft delete time
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
