package handlers

import (
	"errors"

	"github.com/orders-next/internal/http/response"
	"github.com/orders-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a business error to an API error response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	var productErr *service.ProductNotFoundError
	if errors.As(err, &productErr) {
		respondError(c, response.CodeBadRequest, productErr.Error(), nil)
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var orderPricingErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidOrderItem, code: response.CodeBadRequest, msg: "order items invalid"},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, msg: "product not found"},
	{target: service.ErrCatalogUnavailable, code: response.CodeInternal, msg: "product catalog unavailable"},
}

var orderLookupErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrStatusNotFound, code: response.CodeBadRequest, msg: "unknown order status"},
	{target: service.ErrInvalidOrderItem, code: response.CodeBadRequest, msg: "order fields invalid"},
}

var promoCodeErrorRules = []mappedHandlerError{
	{target: service.ErrPromoCodeNotFound, code: response.CodeNotFound, msg: "promo code not found"},
	{target: service.ErrPromoCodeExists, code: response.CodeBadRequest, msg: "promo code already exists"},
	{target: service.ErrPromoCodeInvalid, code: response.CodeBadRequest, msg: "promo code invalid"},
}

var promoValidateErrorRules = []mappedHandlerError{
	{target: service.ErrPromoCodeNotFound, code: response.CodeNotFound, msg: "promo code not found"},
	{target: service.ErrPromoCodeInvalid, code: response.CodeBadRequest, msg: "promo code invalid"},
	{target: service.ErrPromoCodeInactive, code: response.CodeBadRequest, msg: "promo code inactive"},
	{target: service.ErrPromoCodeExpired, code: response.CodeBadRequest, msg: "promo code expired"},
	{target: service.ErrPromoCodeUsageLimit, code: response.CodeBadRequest, msg: "promo code usage limit reached"},
	{target: service.ErrPromoCodeMinAmount, code: response.CodeBadRequest, msg: "order amount below promo code minimum"},
}

func respondOrderPricingError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderPricingErrorRules, response.CodeInternal, "order create failed")
}

func respondOrderLookupError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderLookupErrorRules, response.CodeInternal, "order operation failed")
}

func respondPromoCodeError(c *gin.Context, err error) {
	respondWithMappedError(c, err, promoCodeErrorRules, response.CodeInternal, "promo code operation failed")
}

func respondPromoValidateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, promoValidateErrorRules, response.CodeInternal, "promo code validation failed")
}
