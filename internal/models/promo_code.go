package models

import (
	"time"

	"gorm.io/gorm"
)

// PromoCode is a discount code. Exactly one of DiscountPercentage or
// DiscountAmount is expected to be positive; percentage wins when both are.
type PromoCode struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                          // primary key
	Code               string         `gorm:"uniqueIndex;not null" json:"code"`                              // code text (case-sensitive)
	DiscountPercentage Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_percentage"` // percent discount (0 = unset)
	DiscountAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`  // fixed discount (0 = unset)
	MinOrderAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_order_amount"` // eligibility threshold
	MaxUses            int            `gorm:"not null;default:0" json:"max_uses"`                            // usage cap (0 = unlimited)
	CurrentUses        int            `gorm:"not null;default:0" json:"current_uses"`                        // recorded uses
	IsActive           bool           `gorm:"not null;default:true" json:"is_active"`                        // enabled flag
	ExpiresAt          *time.Time     `gorm:"index" json:"expires_at"`                                       // expiry (nil = never)
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                       // creation time
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`                                       // update time
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                                // soft delete time
}

// TableName sets the table name.
func (PromoCode) TableName() string {
	return "promo_codes"
}
