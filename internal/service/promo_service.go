package service

import (
	"strings"
	"time"

	"github.com/orders-next/internal/logger"
	"github.com/orders-next/internal/models"
	"github.com/orders-next/internal/repository"

	"github.com/shopspring/decimal"
)

// PromoService applies and manages promo codes.
type PromoService struct {
	promoRepo repository.PromoCodeRepository
}

// NewPromoService creates a promo code service.
func NewPromoService(promoRepo repository.PromoCodeRepository) *PromoService {
	return &PromoService{promoRepo: promoRepo}
}

// Apply resolves a code and computes its discount against the subtotal.
// The returned error says why the code does not apply; callers decide
// whether that is fatal.
func (s *PromoService) Apply(subtotal models.Money, code string) (models.Money, *models.PromoCode, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return models.Money{}, nil, ErrPromoCodeInvalid
	}

	promo, err := s.promoRepo.GetByCode(trimmed)
	if err != nil {
		return models.Money{}, nil, err
	}
	if promo == nil {
		return models.Money{}, nil, ErrPromoCodeNotFound
	}

	if err := checkEligibility(promo, subtotal, time.Now()); err != nil {
		return models.Money{}, promo, err
	}

	return calculateDiscount(promo, subtotal), promo, nil
}

// checkEligibility validates the promo code against the order amount.
func checkEligibility(promo *models.PromoCode, subtotal models.Money, now time.Time) error {
	if !promo.IsActive {
		return ErrPromoCodeInactive
	}
	if promo.ExpiresAt != nil && now.After(*promo.ExpiresAt) {
		return ErrPromoCodeExpired
	}
	if promo.MaxUses > 0 && promo.CurrentUses >= promo.MaxUses {
		return ErrPromoCodeUsageLimit
	}
	if subtotal.Decimal.Cmp(promo.MinOrderAmount.Decimal) < 0 {
		return ErrPromoCodeMinAmount
	}
	return nil
}

// calculateDiscount computes the discount a code yields on a subtotal.
// A percentage takes precedence over a fixed amount; the result never
// exceeds the subtotal.
func calculateDiscount(promo *models.PromoCode, subtotal models.Money) models.Money {
	var discount decimal.Decimal
	if promo.DiscountPercentage.Decimal.GreaterThan(decimal.Zero) {
		percent := promo.DiscountPercentage.Decimal.Div(decimal.NewFromInt(100))
		discount = subtotal.Decimal.Mul(percent)
	} else if promo.DiscountAmount.Decimal.GreaterThan(decimal.Zero) {
		discount = promo.DiscountAmount.Decimal
	}
	if discount.GreaterThan(subtotal.Decimal) {
		discount = subtotal.Decimal
	}
	return models.NewMoneyFromDecimal(discount)
}

// PromoValidation is the result of validating a code against an amount.
type PromoValidation struct {
	Code           string       `json:"code"`
	DiscountAmount models.Money `json:"discount_amount"`
	FinalAmount    models.Money `json:"final_amount"`
}

// Validate checks a code against an order amount and reports the discount
// it would yield. Unlike order creation, an ineligible code is an error.
func (s *PromoService) Validate(code string, orderAmount models.Money) (*PromoValidation, error) {
	discount, _, err := s.Apply(orderAmount, code)
	if err != nil {
		return nil, err
	}
	return &PromoValidation{
		Code:           strings.TrimSpace(code),
		DiscountAmount: discount,
		FinalAmount:    models.NewMoneyFromDecimal(orderAmount.Decimal.Sub(discount.Decimal)),
	}, nil
}

// IncrementUsage bumps the code's usage counter. Best effort: hitting the
// usage cap concurrently is logged, not surfaced.
func (s *PromoService) IncrementUsage(promoCodeID uint) error {
	if promoCodeID == 0 {
		return nil
	}
	applied, err := s.promoRepo.IncrementCurrentUses(promoCodeID)
	if err != nil {
		return err
	}
	if !applied {
		logger.Warnw("promo_usage_increment_skipped",
			"promo_code_id", promoCodeID,
		)
	}
	return nil
}

// CreatePromoCodeInput is the admin input for creating a promo code.
type CreatePromoCodeInput struct {
	Code               string
	DiscountPercentage models.Money
	DiscountAmount     models.Money
	MinOrderAmount     models.Money
	MaxUses            int
	IsActive           *bool
	ExpiresAt          *time.Time
}

// CreatePromoCode creates a promo code.
func (s *PromoService) CreatePromoCode(input CreatePromoCodeInput) (*models.PromoCode, error) {
	code := strings.TrimSpace(input.Code)
	if code == "" {
		return nil, ErrPromoCodeInvalid
	}
	if input.DiscountPercentage.Decimal.LessThanOrEqual(decimal.Zero) &&
		input.DiscountAmount.Decimal.LessThanOrEqual(decimal.Zero) {
		return nil, ErrPromoCodeInvalid
	}

	existing, err := s.promoRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPromoCodeExists
	}

	promo := &models.PromoCode{
		Code:               code,
		DiscountPercentage: input.DiscountPercentage,
		DiscountAmount:     input.DiscountAmount,
		MinOrderAmount:     input.MinOrderAmount,
		MaxUses:            input.MaxUses,
		IsActive:           true,
		ExpiresAt:          input.ExpiresAt,
	}
	if input.IsActive != nil {
		promo.IsActive = *input.IsActive
	}
	if err := s.promoRepo.Create(promo); err != nil {
		return nil, err
	}
	return promo, nil
}

// PromoCodePatch carries partial updates for a promo code. Nil fields are
// left untouched.
type PromoCodePatch struct {
	Code               *string
	DiscountPercentage *models.Money
	DiscountAmount     *models.Money
	MinOrderAmount     *models.Money
	MaxUses            *int
	IsActive           *bool
	ExpiresAt          *time.Time
	ClearExpiresAt     bool
}

// UpdatePromoCode applies a patch to an existing promo code.
func (s *PromoService) UpdatePromoCode(id uint, patch PromoCodePatch) (*models.PromoCode, error) {
	promo, err := s.promoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, ErrPromoCodeNotFound
	}

	if patch.Code != nil {
		code := strings.TrimSpace(*patch.Code)
		if code == "" {
			return nil, ErrPromoCodeInvalid
		}
		if code != promo.Code {
			existing, err := s.promoRepo.GetByCode(code)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != promo.ID {
				return nil, ErrPromoCodeExists
			}
			promo.Code = code
		}
	}
	if patch.DiscountPercentage != nil {
		promo.DiscountPercentage = *patch.DiscountPercentage
	}
	if patch.DiscountAmount != nil {
		promo.DiscountAmount = *patch.DiscountAmount
	}
	if patch.MinOrderAmount != nil {
		promo.MinOrderAmount = *patch.MinOrderAmount
	}
	if patch.MaxUses != nil {
		promo.MaxUses = *patch.MaxUses
	}
	if patch.IsActive != nil {
		promo.IsActive = *patch.IsActive
	}
	if patch.ClearExpiresAt {
		promo.ExpiresAt = nil
	} else if patch.ExpiresAt != nil {
		promo.ExpiresAt = patch.ExpiresAt
	}

	if err := s.promoRepo.Update(promo); err != nil {
		return nil, err
	}
	return promo, nil
}

// GetPromoCode fetches a promo code by id.
func (s *PromoService) GetPromoCode(id uint) (*models.PromoCode, error) {
	promo, err := s.promoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, ErrPromoCodeNotFound
	}
	return promo, nil
}

// ListPromoCodes lists promo codes.
func (s *PromoService) ListPromoCodes(filter repository.PromoCodeListFilter) ([]models.PromoCode, int64, error) {
	return s.promoRepo.List(filter)
}

// DeletePromoCode removes a promo code. Orders keep the code text they
// captured at creation.
func (s *PromoService) DeletePromoCode(id uint) error {
	promo, err := s.promoRepo.GetByID(id)
	if err != nil {
		return err
	}
	if promo == nil {
		return ErrPromoCodeNotFound
	}
	return s.promoRepo.Delete(id)
}
