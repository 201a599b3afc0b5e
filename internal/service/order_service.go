package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/orders-next/internal/catalog"
	"github.com/orders-next/internal/constants"
	"github.com/orders-next/internal/logger"
	"github.com/orders-next/internal/models"
	"github.com/orders-next/internal/queue"
	"github.com/orders-next/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService creates and manages orders.
type OrderService struct {
	orderRepo     repository.OrderRepository
	statusRepo    repository.StatusRepository
	catalogClient catalog.Client
	promoService  *PromoService
	queueClient   *queue.Client
}

// NewOrderService creates an order service.
func NewOrderService(orderRepo repository.OrderRepository, statusRepo repository.StatusRepository, catalogClient catalog.Client, promoService *PromoService, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		statusRepo:    statusRepo,
		catalogClient: catalogClient,
		promoService:  promoService,
		queueClient:   queueClient,
	}
}

// CreateOrderInput is the input for creating an order.
type CreateOrderInput struct {
	CustomerID      string
	Items           []CreateOrderItem
	PromoCode       string
	DeliveryAddress string
	Notes           string
}

// CreateOrderItem is a single requested line.
type CreateOrderItem struct {
	ProductID string
	Quantity  int
}

// OrderPreview is the priced order before persistence.
type OrderPreview struct {
	TotalAmount    models.Money       `json:"total_amount"`
	DiscountAmount models.Money       `json:"discount_amount"`
	FinalAmount    models.Money       `json:"final_amount"`
	PromoCode      string             `json:"promo_code,omitempty"`
	Items          []OrderPreviewItem `json:"items"`
}

// OrderPreviewItem is a priced line in a preview.
type OrderPreviewItem struct {
	ProductID   string       `json:"product_id"`
	ProductName string       `json:"product_name"`
	Quantity    int          `json:"quantity"`
	Price       models.Money `json:"price"`
	TotalPrice  models.Money `json:"total_price"`
}

type orderBuildResult struct {
	Items          []models.OrderItem
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
	AppliedPromo   *models.PromoCode
}

// promoIneligible reports whether the error means the code simply does not
// apply, as opposed to a lookup failure.
func promoIneligible(err error) bool {
	return errors.Is(err, ErrPromoCodeNotFound) ||
		errors.Is(err, ErrPromoCodeInvalid) ||
		errors.Is(err, ErrPromoCodeInactive) ||
		errors.Is(err, ErrPromoCodeExpired) ||
		errors.Is(err, ErrPromoCodeUsageLimit) ||
		errors.Is(err, ErrPromoCodeMinAmount)
}

func (s *OrderService) buildOrderResult(ctx context.Context, input CreateOrderInput) (*orderBuildResult, error) {
	if strings.TrimSpace(input.CustomerID) == "" {
		return nil, ErrInvalidOrderItem
	}
	if strings.TrimSpace(input.DeliveryAddress) == "" {
		return nil, ErrInvalidOrderItem
	}
	items, err := mergeCreateOrderItems(input.Items)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrInvalidOrderItem
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.catalogClient.GetProductsByIDs(ctx, ids)
	if err != nil {
		logger.Errorw("catalog_resolve_failed", "error", err, "product_ids", ids)
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	var missing []string
	for _, id := range ids {
		if _, ok := products[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, &ProductNotFoundError{IDs: missing}
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	subtotal := decimal.Zero
	for _, item := range items {
		product := products[item.ProductID]
		lineTotal := product.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Price:       product.Price,
			TotalPrice:  models.NewMoneyFromDecimal(lineTotal),
		})
	}

	result := &orderBuildResult{
		Items:          orderItems,
		TotalAmount:    subtotal,
		DiscountAmount: decimal.Zero,
		FinalAmount:    subtotal,
	}

	if code := strings.TrimSpace(input.PromoCode); code != "" {
		discount, promo, err := s.promoService.Apply(models.NewMoneyFromDecimal(subtotal), code)
		switch {
		case err == nil:
			result.DiscountAmount = discount.Decimal
			result.FinalAmount = subtotal.Sub(discount.Decimal)
			result.AppliedPromo = promo
		case promoIneligible(err):
			// An ineligible code never blocks the order; it just yields
			// no discount.
			logger.Infow("promo_code_not_applied", "code", code, "reason", err)
		default:
			return nil, err
		}
	}

	return result, nil
}

// PreviewOrder prices an order without persisting it.
func (s *OrderService) PreviewOrder(ctx context.Context, input CreateOrderInput) (*OrderPreview, error) {
	result, err := s.buildOrderResult(ctx, input)
	if err != nil {
		return nil, err
	}
	items := make([]OrderPreviewItem, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, OrderPreviewItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			TotalPrice:  item.TotalPrice,
		})
	}
	preview := &OrderPreview{
		TotalAmount:    models.NewMoneyFromDecimal(result.TotalAmount),
		DiscountAmount: models.NewMoneyFromDecimal(result.DiscountAmount),
		FinalAmount:    models.NewMoneyFromDecimal(result.FinalAmount),
		Items:          items,
	}
	if result.AppliedPromo != nil {
		preview.PromoCode = result.AppliedPromo.Code
	}
	return preview, nil
}

// CreateOrder prices the order and persists it with its line items in one
// transaction. New orders always start pending.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	result, err := s.buildOrderResult(ctx, input)
	if err != nil {
		return nil, err
	}

	pending, err := s.resolvePendingStatus()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:         generateOrderNo(),
		CustomerID:      strings.TrimSpace(input.CustomerID),
		StatusID:        pending.ID,
		TotalAmount:     models.NewMoneyFromDecimal(result.TotalAmount),
		DiscountAmount:  models.NewMoneyFromDecimal(result.DiscountAmount),
		FinalAmount:     models.NewMoneyFromDecimal(result.FinalAmount),
		DeliveryAddress: strings.TrimSpace(input.DeliveryAddress),
		Notes:           strings.TrimSpace(input.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if result.AppliedPromo != nil {
		order.PromoCode = result.AppliedPromo.Code
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.WithTx(tx).Create(order, result.Items)
	})
	if err != nil {
		logger.Errorw("order_create_failed",
			"customer_id", order.CustomerID,
			"order_no", order.OrderNo,
			"error", err,
		)
		return nil, ErrOrderCreateFailed
	}

	if result.AppliedPromo != nil {
		s.recordPromoUsage(result.AppliedPromo.ID, order.OrderNo)
	}

	full, err := s.orderRepo.GetByID(order.ID)
	if err != nil || full == nil {
		return order, nil
	}
	return full, nil
}

// resolvePendingStatus fetches the default status, recreating the row when
// the seed data is absent so order creation never depends on it.
func (s *OrderService) resolvePendingStatus() (*models.Status, error) {
	pending, err := s.statusRepo.GetByName(constants.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return pending, nil
	}
	pending = &models.Status{
		Name:        constants.OrderStatusPending,
		Description: "Order is pending",
		IsActive:    true,
	}
	if err := s.statusRepo.Create(pending); err != nil {
		return nil, err
	}
	logger.Warnw("order_status_recreated", "name", pending.Name)
	return pending, nil
}

// recordPromoUsage bumps the promo usage counter after commit. Failures
// never affect the created order.
func (s *OrderService) recordPromoUsage(promoCodeID uint, orderNo string) {
	if s.queueClient != nil && s.queueClient.Enabled() {
		err := s.queueClient.EnqueuePromoUsageIncrement(queue.PromoUsageIncrementPayload{
			PromoCodeID: promoCodeID,
			OrderNo:     orderNo,
		})
		if err == nil {
			return
		}
		logger.Warnw("promo_usage_enqueue_failed",
			"promo_code_id", promoCodeID,
			"order_no", orderNo,
			"error", err,
		)
	}
	if err := s.promoService.IncrementUsage(promoCodeID); err != nil {
		logger.Warnw("promo_usage_increment_failed",
			"promo_code_id", promoCodeID,
			"order_no", orderNo,
			"error", err,
		)
	}
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD%s%s", now, suffix)
}

// mergeCreateOrderItems merges duplicate product lines and validates
// quantities.
func mergeCreateOrderItems(items []CreateOrderItem) ([]CreateOrderItem, error) {
	if len(items) == 0 {
		return nil, nil
	}
	quantities := make(map[string]int, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		id := strings.TrimSpace(item.ProductID)
		if id == "" || item.Quantity <= 0 {
			return nil, ErrInvalidOrderItem
		}
		if _, ok := quantities[id]; !ok {
			order = append(order, id)
		}
		quantities[id] += item.Quantity
	}
	merged := make([]CreateOrderItem, 0, len(order))
	for _, id := range order {
		merged = append(merged, CreateOrderItem{ProductID: id, Quantity: quantities[id]})
	}
	return merged, nil
}
