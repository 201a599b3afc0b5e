package models

import "time"

// Status is an order status row. The known set is seeded at startup and
// treated as read-only by the order workflow.
type Status struct {
	ID          uint      `gorm:"primarykey" json:"id"`               // primary key
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`   // status name (pending, shipped, ...)
	Description string    `gorm:"type:text" json:"description"`       // human-readable description
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"` // whether selectable
	CreatedAt   time.Time `gorm:"index" json:"created_at"`            // creation time
	UpdatedAt   time.Time `gorm:"index" json:"updated_at"`            // update time
}

// TableName sets the table name.
func (Status) TableName() string {
	return "statuses"
}
