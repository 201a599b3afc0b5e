package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is an order aggregate root. PromoCode stores the code text as it was
// at creation time; later promo edits never touch existing orders.
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                         // primary key
	OrderNo         string         `gorm:"uniqueIndex;not null" json:"order_no"`                         // order number
	CustomerID      string         `gorm:"index;not null" json:"customer_id"`                            // opaque customer id
	StatusID        uint           `gorm:"index;not null" json:"status_id"`                              // status id
	PromoCode       string         `gorm:"type:varchar(100)" json:"promo_code,omitempty"`                // applied code snapshot
	TotalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`    // subtotal before discount
	DiscountAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // applied discount
	FinalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"final_amount"`    // amount due
	DeliveryAddress string         `gorm:"type:text;not null" json:"delivery_address"`                   // delivery address
	Notes           string         `gorm:"type:text" json:"notes,omitempty"`                             // free-form notes
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                      // creation time
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                      // update time
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                               // soft delete time

	Items  []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // line items
	Status *Status     `gorm:"foreignKey:StatusID" json:"status,omitempty"` // status relation
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
