package main

import (
	"fmt"
	"time"

	"github.com/orders-next/internal/config"
	"github.com/orders-next/internal/logger"
	"github.com/orders-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.SeedStatuses(); err != nil {
		stdLog.Fatalf("Failed to seed statuses: %v", err)
	}
	stdLog.Println("Seeded order statuses")

	welcomeExpiry := time.Now().AddDate(0, 3, 0)
	promoCodes := []models.PromoCode{
		{
			Code:               "WELCOME10",
			DiscountPercentage: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
			MinOrderAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
			IsActive:           true,
			ExpiresAt:          &welcomeExpiry,
		},
		{
			Code:           "SAVE20",
			DiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
			MinOrderAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
			MaxUses:        500,
			IsActive:       true,
		},
		{
			Code:               "FLASH5",
			DiscountPercentage: models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
			MaxUses:            100,
			IsActive:           true,
		},
	}

	for _, promo := range promoCodes {
		var existing models.PromoCode
		if err := models.DB.Where("code = ?", promo.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&promo).Error; err != nil {
				stdLog.Printf("Failed to create promo code %s: %v", promo.Code, err)
			} else {
				stdLog.Printf("Created promo code: %s", promo.Code)
			}
		} else {
			existing.DiscountPercentage = promo.DiscountPercentage
			existing.DiscountAmount = promo.DiscountAmount
			existing.MinOrderAmount = promo.MinOrderAmount
			existing.MaxUses = promo.MaxUses
			existing.IsActive = promo.IsActive
			existing.ExpiresAt = promo.ExpiresAt
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update promo code %s: %v", promo.Code, err)
			} else {
				stdLog.Printf("Updated promo code: %s", promo.Code)
			}
		}
	}

	fmt.Println("\nSeed data ready:")
	fmt.Println("- 6 order statuses")
	fmt.Println("- 3 promo codes (WELCOME10, SAVE20, FLASH5)")
}
