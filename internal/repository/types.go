package repository

import "time"

// OrderListFilter filters order listings.
type OrderListFilter struct {
	Page        int
	PageSize    int
	CustomerID  string
	StatusID    uint
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// PromoCodeListFilter filters promo code listings.
type PromoCodeListFilter struct {
	Page     int
	PageSize int
	Code     string
	IsActive *bool
}
