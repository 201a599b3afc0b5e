package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/orders-next/internal/models"
	"github.com/orders-next/internal/provider"
	"github.com/orders-next/internal/queue"
	"github.com/orders-next/internal/repository"
	"github.com/orders-next/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var workerTestDBSeq uint64

func newWorkerTestEnv(t *testing.T) (*Consumer, repository.PromoCodeRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:worker_test_%d?mode=memory&cache=shared", atomic.AddUint64(&workerTestDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.PromoCode{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	promoRepo := repository.NewPromoCodeRepository(db)
	consumer := NewConsumer(&provider.Container{
		PromoCodeRepo: promoRepo,
		PromoService:  service.NewPromoService(promoRepo),
	})
	return consumer, promoRepo
}

func TestHandlePromoUsageIncrement(t *testing.T) {
	consumer, promoRepo := newWorkerTestEnv(t)

	promo := models.PromoCode{
		Code:           "WORKER5",
		DiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		IsActive:       true,
	}
	if err := promoRepo.Create(&promo); err != nil {
		t.Fatalf("create promo failed: %v", err)
	}

	task, err := queue.NewPromoUsageIncrementTask(queue.PromoUsageIncrementPayload{
		PromoCodeID: promo.ID,
		OrderNo:     "ORD-1",
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handlePromoUsageIncrement(context.Background(), task); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}

	got, err := promoRepo.GetByID(promo.ID)
	if err != nil {
		t.Fatalf("get promo failed: %v", err)
	}
	if got.CurrentUses != 1 {
		t.Fatalf("expected current_uses 1, got %d", got.CurrentUses)
	}
}

func TestHandlePromoUsageIncrementSkipsZeroID(t *testing.T) {
	consumer, _ := newWorkerTestEnv(t)

	task, err := queue.NewPromoUsageIncrementTask(queue.PromoUsageIncrementPayload{OrderNo: "ORD-1"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handlePromoUsageIncrement(context.Background(), task); err != nil {
		t.Fatalf("expected zero id to be skipped, got: %v", err)
	}
}

func TestHandlePromoUsageIncrementBadPayload(t *testing.T) {
	consumer, _ := newWorkerTestEnv(t)

	task := asynq.NewTask(queue.TaskPromoUsageIncrement, []byte("not-json"))
	if err := consumer.handlePromoUsageIncrement(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}
