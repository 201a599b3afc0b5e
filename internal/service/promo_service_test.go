package service

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/orders-next/internal/models"
	"github.com/orders-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var testDBSeq uint64

// newTestDB opens a fresh in-memory database with the order schema migrated
// and statuses seeded. models.DB is pointed at it for the test's duration.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", atomic.AddUint64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&models.Status{}, &models.PromoCode{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	if err := models.SeedStatusesWith(db); err != nil {
		t.Fatalf("seed statuses failed: %v", err)
	}

	prev := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = prev })
	return db
}

func money(t *testing.T, value string) models.Money {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse decimal %q failed: %v", value, err)
	}
	return models.NewMoneyFromDecimal(d)
}

func newPromoService(t *testing.T) (*PromoService, repository.PromoCodeRepository) {
	t.Helper()
	db := newTestDB(t)
	repo := repository.NewPromoCodeRepository(db)
	return NewPromoService(repo), repo
}

func mustCreatePromo(t *testing.T, repo repository.PromoCodeRepository, promo models.PromoCode) *models.PromoCode {
	t.Helper()
	if err := repo.Create(&promo); err != nil {
		t.Fatalf("create promo code failed: %v", err)
	}
	return &promo
}

func TestApplyPercentageDiscount(t *testing.T) {
	svc, repo := newPromoService(t)
	mustCreatePromo(t, repo, models.PromoCode{
		Code:               "SAVE10",
		DiscountPercentage: money(t, "10"),
		IsActive:           true,
	})

	discount, promo, err := svc.Apply(money(t, "200"), "SAVE10")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if promo == nil || promo.Code != "SAVE10" {
		t.Fatalf("unexpected promo: %+v", promo)
	}
	if !discount.Decimal.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected discount 20, got %s", discount.Decimal.String())
	}
}

func TestApplyPercentageWinsOverFixedAmount(t *testing.T) {
	svc, repo := newPromoService(t)
	mustCreatePromo(t, repo, models.PromoCode{
		Code:               "BOTH",
		DiscountPercentage: money(t, "10"),
		DiscountAmount:     money(t, "50"),
		IsActive:           true,
	})

	discount, _, err := svc.Apply(money(t, "100"), "BOTH")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !discount.Decimal.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected percentage discount 10, got %s", discount.Decimal.String())
	}
}

func TestApplyFixedDiscountCappedAtSubtotal(t *testing.T) {
	svc, repo := newPromoService(t)
	mustCreatePromo(t, repo, models.PromoCode{
		Code:           "BIG50",
		DiscountAmount: money(t, "50"),
		IsActive:       true,
	})

	discount, _, err := svc.Apply(money(t, "30"), "BIG50")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !discount.Decimal.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("expected capped discount 30, got %s", discount.Decimal.String())
	}
}

func TestApplyEligibilityChecks(t *testing.T) {
	svc, repo := newPromoService(t)
	expired := time.Now().Add(-time.Hour)
	mustCreatePromo(t, repo, models.PromoCode{
		Code:           "INACTIVE",
		DiscountAmount: money(t, "5"),
		IsActive:       false,
	})
	mustCreatePromo(t, repo, models.PromoCode{
		Code:           "EXPIRED",
		DiscountAmount: money(t, "5"),
		IsActive:       true,
		ExpiresAt:      &expired,
	})
	mustCreatePromo(t, repo, models.PromoCode{
		Code:           "USEDUP",
		DiscountAmount: money(t, "5"),
		IsActive:       true,
		MaxUses:        3,
		CurrentUses:    3,
	})
	mustCreatePromo(t, repo, models.PromoCode{
		Code:           "MIN100",
		DiscountAmount: money(t, "5"),
		MinOrderAmount: money(t, "100"),
		IsActive:       true,
	})

	cases := []struct {
		code string
		want error
	}{
		{"MISSING", ErrPromoCodeNotFound},
		{"INACTIVE", ErrPromoCodeInactive},
		{"EXPIRED", ErrPromoCodeExpired},
		{"USEDUP", ErrPromoCodeUsageLimit},
		{"MIN100", ErrPromoCodeMinAmount},
		{"", ErrPromoCodeInvalid},
	}
	for _, tc := range cases {
		_, _, err := svc.Apply(money(t, "50"), tc.code)
		if !errors.Is(err, tc.want) {
			t.Fatalf("code %q: expected %v, got %v", tc.code, tc.want, err)
		}
	}
}

func TestValidateReportsFinalAmount(t *testing.T) {
	svc, repo := newPromoService(t)
	mustCreatePromo(t, repo, models.PromoCode{
		Code:               "SAVE25",
		DiscountPercentage: money(t, "25"),
		IsActive:           true,
	})

	result, err := svc.Validate("SAVE25", money(t, "80"))
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !result.DiscountAmount.Decimal.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected discount 20, got %s", result.DiscountAmount.Decimal.String())
	}
	if !result.FinalAmount.Decimal.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected final 60, got %s", result.FinalAmount.Decimal.String())
	}
}

func TestIncrementUsageStopsAtCap(t *testing.T) {
	svc, repo := newPromoService(t)
	promo := mustCreatePromo(t, repo, models.PromoCode{
		Code:           "LIMIT2",
		DiscountAmount: money(t, "5"),
		IsActive:       true,
		MaxUses:        2,
	})

	for i := 0; i < 3; i++ {
		if err := svc.IncrementUsage(promo.ID); err != nil {
			t.Fatalf("increment usage failed: %v", err)
		}
	}

	got, err := repo.GetByID(promo.ID)
	if err != nil {
		t.Fatalf("get promo failed: %v", err)
	}
	if got.CurrentUses != 2 {
		t.Fatalf("expected current_uses 2, got %d", got.CurrentUses)
	}
}

func TestCreatePromoCodeRejectsDuplicates(t *testing.T) {
	svc, _ := newPromoService(t)
	input := CreatePromoCodeInput{
		Code:           "ONCE",
		DiscountAmount: money(t, "5"),
	}
	if _, err := svc.CreatePromoCode(input); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.CreatePromoCode(input); !errors.Is(err, ErrPromoCodeExists) {
		t.Fatalf("expected ErrPromoCodeExists, got %v", err)
	}
}

func TestCreatePromoCodeRequiresDiscount(t *testing.T) {
	svc, _ := newPromoService(t)
	_, err := svc.CreatePromoCode(CreatePromoCodeInput{Code: "EMPTY"})
	if !errors.Is(err, ErrPromoCodeInvalid) {
		t.Fatalf("expected ErrPromoCodeInvalid, got %v", err)
	}
}

func TestUpdatePromoCodePatch(t *testing.T) {
	svc, repo := newPromoService(t)
	expiry := time.Now().Add(24 * time.Hour)
	promo := mustCreatePromo(t, repo, models.PromoCode{
		Code:           "PATCHME",
		DiscountAmount: money(t, "5"),
		IsActive:       true,
		ExpiresAt:      &expiry,
	})

	inactive := false
	maxUses := 10
	minAmount := money(t, "25")
	updated, err := svc.UpdatePromoCode(promo.ID, PromoCodePatch{
		IsActive:       &inactive,
		MaxUses:        &maxUses,
		MinOrderAmount: &minAmount,
		ClearExpiresAt: true,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.IsActive {
		t.Fatalf("expected inactive")
	}
	if updated.MaxUses != 10 {
		t.Fatalf("expected max_uses 10, got %d", updated.MaxUses)
	}
	if !updated.MinOrderAmount.Decimal.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected min amount 25, got %s", updated.MinOrderAmount.Decimal.String())
	}
	if updated.ExpiresAt != nil {
		t.Fatalf("expected expiry cleared")
	}
	if updated.Code != "PATCHME" {
		t.Fatalf("code should be untouched, got %s", updated.Code)
	}
}

func TestUpdatePromoCodeDuplicateCode(t *testing.T) {
	svc, repo := newPromoService(t)
	mustCreatePromo(t, repo, models.PromoCode{
		Code:           "TAKEN",
		DiscountAmount: money(t, "5"),
		IsActive:       true,
	})
	promo := mustCreatePromo(t, repo, models.PromoCode{
		Code:           "RENAME",
		DiscountAmount: money(t, "5"),
		IsActive:       true,
	})

	taken := "TAKEN"
	if _, err := svc.UpdatePromoCode(promo.ID, PromoCodePatch{Code: &taken}); !errors.Is(err, ErrPromoCodeExists) {
		t.Fatalf("expected ErrPromoCodeExists, got %v", err)
	}
}

func TestDeletePromoCodeNotFound(t *testing.T) {
	svc, _ := newPromoService(t)
	if err := svc.DeletePromoCode(9999); !errors.Is(err, ErrPromoCodeNotFound) {
		t.Fatalf("expected ErrPromoCodeNotFound, got %v", err)
	}
}
