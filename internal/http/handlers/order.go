package handlers

import (
	"strconv"
	"strings"

	"github.com/orders-next/internal/http/response"
	"github.com/orders-next/internal/repository"
	"github.com/orders-next/internal/service"

	"github.com/gin-gonic/gin"
)

type createOrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type createOrderRequest struct {
	CustomerID      string                   `json:"customer_id" binding:"required"`
	Items           []createOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	PromoCode       string                   `json:"promo_code"`
	DeliveryAddress string                   `json:"delivery_address" binding:"required"`
	Notes           string                   `json:"notes"`
}

func (r createOrderRequest) toInput() service.CreateOrderInput {
	items := make([]service.CreateOrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, service.CreateOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return service.CreateOrderInput{
		CustomerID:      r.CustomerID,
		Items:           items,
		PromoCode:       r.PromoCode,
		DeliveryAddress: r.DeliveryAddress,
		Notes:           r.Notes,
	}
}

// CreateOrder prices and persists a new order.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.OrderService.CreateOrder(c.Request.Context(), req.toInput())
	if err != nil {
		respondOrderPricingError(c, err)
		return
	}
	response.Created(c, order)
}

// PreviewOrder prices an order without persisting it.
func (h *Handler) PreviewOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	preview, err := h.OrderService.PreviewOrder(c.Request.Context(), req.toInput())
	if err != nil {
		respondOrderPricingError(c, err)
		return
	}
	response.Success(c, preview)
}

// GetOrder fetches one order with its items and status.
func (h *Handler) GetOrder(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order id", err)
		return
	}

	order, err := h.OrderService.GetOrder(id)
	if err != nil {
		respondOrderLookupError(c, err)
		return
	}
	response.Success(c, order)
}

// GetOrderByNo fetches one order by its human-readable order number.
func (h *Handler) GetOrderByNo(c *gin.Context) {
	order, err := h.OrderService.GetOrderByNo(c.Param("order_no"))
	if err != nil {
		respondOrderLookupError(c, err)
		return
	}
	response.Success(c, order)
}

// ListCustomerOrders lists a customer's orders, oldest first.
func (h *Handler) ListCustomerOrders(c *gin.Context) {
	customerID := strings.TrimSpace(c.Param("customer_id"))
	if customerID == "" {
		respondError(c, response.CodeBadRequest, "invalid customer id", nil)
		return
	}
	page, pageSize := parsePagination(c)

	orders, total, err := h.OrderService.ListOrdersByCustomer(customerID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "order list failed", err)
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// ListOrders lists orders with optional filters.
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := repository.OrderListFilter{
		Page:       page,
		PageSize:   pageSize,
		CustomerID: strings.TrimSpace(c.Query("customer_id")),
		OrderNo:    strings.TrimSpace(c.Query("order_no")),
	}

	if statusName := strings.TrimSpace(c.Query("status")); statusName != "" {
		status, err := h.StatusRepo.GetByName(statusName)
		if err != nil {
			respondError(c, response.CodeInternal, "order list failed", err)
			return
		}
		if status == nil {
			respondError(c, response.CodeBadRequest, "unknown order status", nil)
			return
		}
		filter.StatusID = status.ID
	}

	orders, total, err := h.OrderService.ListOrders(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "order list failed", err)
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

type updateOrderRequest struct {
	Status          *string `json:"status"`
	DeliveryAddress *string `json:"delivery_address"`
	Notes           *string `json:"notes"`
}

// UpdateOrder applies a partial update to an order.
func (h *Handler) UpdateOrder(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order id", err)
		return
	}
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.OrderService.UpdateOrder(id, service.OrderPatch{
		Status:          req.Status,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
	})
	if err != nil {
		respondOrderLookupError(c, err)
		return
	}
	response.Success(c, order)
}

// DeleteOrder removes an order and its items.
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order id", err)
		return
	}

	if err := h.OrderService.DeleteOrder(id); err != nil {
		respondOrderLookupError(c, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return normalizePagination(page, pageSize)
}
