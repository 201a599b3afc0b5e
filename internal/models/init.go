package models

import (
	"errors"

	"github.com/orders-next/internal/constants"
	"github.com/orders-next/internal/logger"

	"gorm.io/gorm"
)

// defaultStatuses is the seed set for the statuses table.
var defaultStatuses = []Status{
	{Name: constants.OrderStatusPending, Description: "Order is pending", IsActive: true},
	{Name: constants.OrderStatusConfirmed, Description: "Order is confirmed", IsActive: true},
	{Name: constants.OrderStatusProcessing, Description: "Order is being processed", IsActive: true},
	{Name: constants.OrderStatusShipped, Description: "Order has been shipped", IsActive: true},
	{Name: constants.OrderStatusDelivered, Description: "Order has been delivered", IsActive: true},
	{Name: constants.OrderStatusCancelled, Description: "Order has been cancelled", IsActive: true},
}

// SeedStatuses inserts the known order statuses. Safe to call repeatedly.
func SeedStatuses() error {
	return SeedStatusesWith(DB)
}

// SeedStatusesWith seeds statuses through the given connection.
func SeedStatusesWith(db *gorm.DB) error {
	if db == nil {
		return errors.New("db is nil")
	}
	for _, status := range defaultStatuses {
		var existing Status
		err := db.Where("name = ?", status.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		record := status
		if err := db.Create(&record).Error; err != nil {
			return err
		}
		logger.Infow("status_seeded", "name", record.Name)
	}
	return nil
}
