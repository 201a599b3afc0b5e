package service

import (
	"strings"

	"github.com/orders-next/internal/logger"
	"github.com/orders-next/internal/models"
	"github.com/orders-next/internal/repository"
)

// GetOrder fetches an order with its items and status.
func (s *OrderService) GetOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		logger.Errorw("order_fetch_failed", "order_id", id, "error", err)
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderByNo fetches an order by order number.
func (s *OrderService) GetOrderByNo(orderNo string) (*models.Order, error) {
	trimmed := strings.TrimSpace(orderNo)
	if trimmed == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNo(trimmed)
	if err != nil {
		logger.Errorw("order_fetch_failed", "order_no", trimmed, "error", err)
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByCustomer lists a customer's orders, oldest first.
func (s *OrderService) ListOrdersByCustomer(customerID string, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.ListByCustomer(strings.TrimSpace(customerID), page, pageSize)
}

// ListOrders lists orders with optional filters.
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// ListStatuses returns the known order statuses.
func (s *OrderService) ListStatuses() ([]models.Status, error) {
	return s.statusRepo.List()
}

// OrderPatch carries partial updates for an order. Nil fields are left
// untouched.
type OrderPatch struct {
	Status          *string
	DeliveryAddress *string
	Notes           *string
}

// UpdateOrder applies a patch to an existing order. Amounts and line items
// are immutable after creation.
func (s *OrderService) UpdateOrder(id uint, patch OrderPatch) (*models.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Status != nil {
		status, err := s.statusRepo.GetByName(strings.TrimSpace(*patch.Status))
		if err != nil {
			return nil, err
		}
		if status == nil {
			return nil, ErrStatusNotFound
		}
		updates["status_id"] = status.ID
	}
	if patch.DeliveryAddress != nil {
		address := strings.TrimSpace(*patch.DeliveryAddress)
		if address == "" {
			return nil, ErrInvalidOrderItem
		}
		updates["delivery_address"] = address
	}
	if patch.Notes != nil {
		updates["notes"] = strings.TrimSpace(*patch.Notes)
	}

	if len(updates) == 0 {
		return order, nil
	}
	if err := s.orderRepo.Updates(order.ID, updates); err != nil {
		logger.Errorw("order_update_failed", "order_id", order.ID, "error", err)
		return nil, ErrOrderUpdateFailed
	}
	return s.GetOrder(order.ID)
}

// DeleteOrder removes an order and its line items.
func (s *OrderService) DeleteOrder(id uint) error {
	order, err := s.GetOrder(id)
	if err != nil {
		return err
	}
	if err := s.orderRepo.Delete(order.ID); err != nil {
		logger.Errorw("order_delete_failed", "order_id", order.ID, "error", err)
		return ErrOrderDeleteFailed
	}
	return nil
}
