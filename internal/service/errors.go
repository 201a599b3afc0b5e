package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidOrderItem    = errors.New("order items invalid")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderCreateFailed   = errors.New("order create failed")
	ErrOrderUpdateFailed   = errors.New("order update failed")
	ErrOrderDeleteFailed   = errors.New("order delete failed")
	ErrOrderFetchFailed    = errors.New("order fetch failed")
	ErrStatusNotFound      = errors.New("order status not found")
	ErrCatalogUnavailable  = errors.New("product catalog unavailable")
	ErrProductNotFound     = errors.New("product not found")
	ErrPromoCodeNotFound   = errors.New("promo code not found")
	ErrPromoCodeExists     = errors.New("promo code already exists")
	ErrPromoCodeInvalid    = errors.New("promo code invalid")
	ErrPromoCodeInactive   = errors.New("promo code inactive")
	ErrPromoCodeExpired    = errors.New("promo code expired")
	ErrPromoCodeUsageLimit = errors.New("promo code usage limit reached")
	ErrPromoCodeMinAmount  = errors.New("order amount below promo code minimum")
)

// ProductNotFoundError reports which product ids the catalog could not
// resolve. It matches ErrProductNotFound under errors.Is.
type ProductNotFoundError struct {
	IDs []string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("products not found: %s", strings.Join(e.IDs, ", "))
}

func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}
