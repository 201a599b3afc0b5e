package handlers

import (
	"strings"
	"time"

	"github.com/orders-next/internal/http/response"
	"github.com/orders-next/internal/models"
	"github.com/orders-next/internal/repository"
	"github.com/orders-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type createPromoCodeRequest struct {
	Code               string        `json:"code" binding:"required"`
	DiscountPercentage *models.Money `json:"discount_percentage"`
	DiscountAmount     *models.Money `json:"discount_amount"`
	MinOrderAmount     *models.Money `json:"min_order_amount"`
	MaxUses            int           `json:"max_uses"`
	IsActive           *bool         `json:"is_active"`
	ExpiresAt          *time.Time    `json:"expires_at"`
}

// CreatePromoCode creates a promo code.
func (h *Handler) CreatePromoCode(c *gin.Context) {
	var req createPromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	input := service.CreatePromoCodeInput{
		Code:      req.Code,
		MaxUses:   req.MaxUses,
		IsActive:  req.IsActive,
		ExpiresAt: req.ExpiresAt,
	}
	if req.DiscountPercentage != nil {
		input.DiscountPercentage = *req.DiscountPercentage
	}
	if req.DiscountAmount != nil {
		input.DiscountAmount = *req.DiscountAmount
	}
	if req.MinOrderAmount != nil {
		input.MinOrderAmount = *req.MinOrderAmount
	}

	promo, err := h.PromoService.CreatePromoCode(input)
	if err != nil {
		respondPromoCodeError(c, err)
		return
	}
	response.Created(c, promo)
}

// GetPromoCode fetches a promo code by id.
func (h *Handler) GetPromoCode(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid promo code id", err)
		return
	}

	promo, err := h.PromoService.GetPromoCode(id)
	if err != nil {
		respondPromoCodeError(c, err)
		return
	}
	response.Success(c, promo)
}

// ListPromoCodes lists promo codes.
func (h *Handler) ListPromoCodes(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := repository.PromoCodeListFilter{
		Page:     page,
		PageSize: pageSize,
		Code:     strings.TrimSpace(c.Query("code")),
	}
	if raw := strings.TrimSpace(c.Query("is_active")); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}

	codes, total, err := h.PromoService.ListPromoCodes(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "promo code list failed", err)
		return
	}
	response.SuccessWithPage(c, codes, response.BuildPagination(page, pageSize, total))
}

type updatePromoCodeRequest struct {
	Code               *string       `json:"code"`
	DiscountPercentage *models.Money `json:"discount_percentage"`
	DiscountAmount     *models.Money `json:"discount_amount"`
	MinOrderAmount     *models.Money `json:"min_order_amount"`
	MaxUses            *int          `json:"max_uses"`
	IsActive           *bool         `json:"is_active"`
	ExpiresAt          *time.Time    `json:"expires_at"`
	ClearExpiresAt     bool          `json:"clear_expires_at"`
}

// UpdatePromoCode applies a partial update to a promo code.
func (h *Handler) UpdatePromoCode(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid promo code id", err)
		return
	}
	var req updatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	promo, err := h.PromoService.UpdatePromoCode(id, service.PromoCodePatch{
		Code:               req.Code,
		DiscountPercentage: req.DiscountPercentage,
		DiscountAmount:     req.DiscountAmount,
		MinOrderAmount:     req.MinOrderAmount,
		MaxUses:            req.MaxUses,
		IsActive:           req.IsActive,
		ExpiresAt:          req.ExpiresAt,
		ClearExpiresAt:     req.ClearExpiresAt,
	})
	if err != nil {
		respondPromoCodeError(c, err)
		return
	}
	response.Success(c, promo)
}

// DeletePromoCode removes a promo code. Existing orders keep the code text
// they captured.
func (h *Handler) DeletePromoCode(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid promo code id", err)
		return
	}

	if err := h.PromoService.DeletePromoCode(id); err != nil {
		respondPromoCodeError(c, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}

// ValidatePromoCode checks a code against an order amount. Unlike order
// creation, an ineligible code is an error here.
func (h *Handler) ValidatePromoCode(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		respondError(c, response.CodeBadRequest, "invalid promo code", nil)
		return
	}
	raw := strings.TrimSpace(c.Query("order_amount"))
	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.IsNegative() {
		respondError(c, response.CodeBadRequest, "invalid order amount", err)
		return
	}

	result, err := h.PromoService.Validate(code, models.NewMoneyFromDecimal(amount))
	if err != nil {
		respondPromoValidateError(c, err)
		return
	}
	response.Success(c, result)
}
