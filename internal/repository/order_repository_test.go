package repository

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/orders-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var repoTestDBSeq uint64

func newRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repo_test_%d?mode=memory&cache=shared", atomic.AddUint64(&repoTestDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Status{}, &models.PromoCode{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func seedStatus(t *testing.T, db *gorm.DB, name string) *models.Status {
	t.Helper()
	status := models.Status{Name: name, IsActive: true}
	if err := db.Create(&status).Error; err != nil {
		t.Fatalf("create status failed: %v", err)
	}
	return &status
}

func newTestOrder(customerID, orderNo string, statusID uint, total string) (*models.Order, []models.OrderItem) {
	amount := models.NewMoneyFromDecimal(decimal.RequireFromString(total))
	order := &models.Order{
		OrderNo:         orderNo,
		CustomerID:      customerID,
		StatusID:        statusID,
		TotalAmount:     amount,
		FinalAmount:     amount,
		DeliveryAddress: "1 Main St",
	}
	items := []models.OrderItem{
		{
			ProductID:   "prod-1",
			ProductName: "Widget",
			Quantity:    1,
			Price:       amount,
			TotalPrice:  amount,
		},
	}
	return order, items
}

func TestOrderRepositoryCreateAndGet(t *testing.T) {
	db := newRepoTestDB(t)
	status := seedStatus(t, db, "pending")
	repo := NewOrderRepository(db)

	order, items := newTestOrder("cust-1", "ORD-1", status.ID, "42.50")
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.ID == 0 {
		t.Fatalf("expected order id to be set")
	}

	got, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got == nil {
		t.Fatalf("expected order, got nil")
	}
	if len(got.Items) != 1 || got.Items[0].OrderID != order.ID {
		t.Fatalf("expected preloaded item bound to order, got %+v", got.Items)
	}
	if got.Status == nil || got.Status.Name != "pending" {
		t.Fatalf("expected preloaded status, got %+v", got.Status)
	}

	byNo, err := repo.GetByOrderNo("ORD-1")
	if err != nil {
		t.Fatalf("get by order no failed: %v", err)
	}
	if byNo == nil || byNo.ID != order.ID {
		t.Fatalf("expected same order by number")
	}
}

func TestOrderRepositoryGetMissingReturnsNil(t *testing.T) {
	db := newRepoTestDB(t)
	repo := NewOrderRepository(db)

	got, err := repo.GetByID(12345)
	if err != nil {
		t.Fatalf("expected nil error for missing order, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil order, got %+v", got)
	}
}

func TestOrderRepositoryListByCustomerAscending(t *testing.T) {
	db := newRepoTestDB(t)
	status := seedStatus(t, db, "pending")
	repo := NewOrderRepository(db)

	for i := 1; i <= 3; i++ {
		order, items := newTestOrder("cust-1", fmt.Sprintf("ORD-%d", i), status.ID, "10")
		if err := repo.Create(order, items); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}
	other, otherItems := newTestOrder("cust-2", "ORD-X", status.ID, "10")
	if err := repo.Create(other, otherItems); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	orders, total, err := repo.ListByCustomer("cust-1", 1, 2)
	if err != nil {
		t.Fatalf("list by customer failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if len(orders) != 2 {
		t.Fatalf("expected page of 2, got %d", len(orders))
	}
	if orders[0].OrderNo != "ORD-1" || orders[1].OrderNo != "ORD-2" {
		t.Fatalf("expected oldest first, got %s then %s", orders[0].OrderNo, orders[1].OrderNo)
	}
}

func TestOrderRepositoryListFilters(t *testing.T) {
	db := newRepoTestDB(t)
	pending := seedStatus(t, db, "pending")
	shipped := seedStatus(t, db, "shipped")
	repo := NewOrderRepository(db)

	first, firstItems := newTestOrder("cust-1", "ORD-A", pending.ID, "10")
	if err := repo.Create(first, firstItems); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	second, secondItems := newTestOrder("cust-2", "ORD-B", shipped.ID, "20")
	if err := repo.Create(second, secondItems); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	orders, total, err := repo.List(OrderListFilter{Page: 1, PageSize: 10, StatusID: shipped.ID})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(orders) != 1 || orders[0].OrderNo != "ORD-B" {
		t.Fatalf("expected only ORD-B, got total=%d orders=%+v", total, orders)
	}

	orders, total, err = repo.List(OrderListFilter{Page: 1, PageSize: 10, CustomerID: "cust-1"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || orders[0].OrderNo != "ORD-A" {
		t.Fatalf("expected only ORD-A, got total=%d", total)
	}

	orders, total, err = repo.List(OrderListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected total 2, got %d", total)
	}
	if orders[0].OrderNo != "ORD-B" {
		t.Fatalf("expected newest first, got %s", orders[0].OrderNo)
	}
}

func TestOrderRepositoryUpdatesAndDelete(t *testing.T) {
	db := newRepoTestDB(t)
	pending := seedStatus(t, db, "pending")
	confirmed := seedStatus(t, db, "confirmed")
	repo := NewOrderRepository(db)

	order, items := newTestOrder("cust-1", "ORD-1", pending.ID, "10")
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	err := repo.Updates(order.ID, map[string]interface{}{
		"status_id": confirmed.ID,
		"notes":     "left at door",
	})
	if err != nil {
		t.Fatalf("updates failed: %v", err)
	}
	got, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got.StatusID != confirmed.ID || got.Notes != "left at door" {
		t.Fatalf("unexpected updated order: %+v", got)
	}

	if err := repo.Delete(order.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	gone, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get after delete failed: %v", err)
	}
	if gone != nil {
		t.Fatalf("expected order gone, got %+v", gone)
	}
	var itemCount int64
	if err := db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error; err != nil {
		t.Fatalf("count items failed: %v", err)
	}
	if itemCount != 0 {
		t.Fatalf("expected items removed, got %d", itemCount)
	}
}

func TestPromoCodeRepositoryIncrementCurrentUses(t *testing.T) {
	db := newRepoTestDB(t)
	repo := NewPromoCodeRepository(db)

	promo := models.PromoCode{
		Code:           "CAP1",
		DiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
		IsActive:       true,
		MaxUses:        1,
	}
	if err := repo.Create(&promo); err != nil {
		t.Fatalf("create promo failed: %v", err)
	}

	applied, err := repo.IncrementCurrentUses(promo.ID)
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if !applied {
		t.Fatalf("expected first increment to apply")
	}
	applied, err = repo.IncrementCurrentUses(promo.ID)
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if applied {
		t.Fatalf("expected increment blocked at cap")
	}

	got, err := repo.GetByID(promo.ID)
	if err != nil {
		t.Fatalf("get promo failed: %v", err)
	}
	if got.CurrentUses != 1 {
		t.Fatalf("expected current_uses 1, got %d", got.CurrentUses)
	}
}

func TestStatusRepositoryGetByName(t *testing.T) {
	db := newRepoTestDB(t)
	seedStatus(t, db, "pending")
	repo := NewStatusRepository(db)

	got, err := repo.GetByName("pending")
	if err != nil {
		t.Fatalf("get by name failed: %v", err)
	}
	if got == nil || got.Name != "pending" {
		t.Fatalf("expected pending status, got %+v", got)
	}

	missing, err := repo.GetByName("vanished")
	if err != nil {
		t.Fatalf("expected nil error for missing status, got %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil status, got %+v", missing)
	}
}
