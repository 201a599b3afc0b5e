package repository

import (
	"errors"

	"github.com/orders-next/internal/models"

	"gorm.io/gorm"
)

// PromoCodeRepository is the promo code data access interface.
type PromoCodeRepository interface {
	Create(code *models.PromoCode) error
	GetByID(id uint) (*models.PromoCode, error)
	GetByCode(code string) (*models.PromoCode, error)
	List(filter PromoCodeListFilter) ([]models.PromoCode, int64, error)
	Update(code *models.PromoCode) error
	Delete(id uint) error
	IncrementCurrentUses(id uint) (bool, error)
	WithTx(tx *gorm.DB) *GormPromoCodeRepository
}

// GormPromoCodeRepository is the GORM implementation.
type GormPromoCodeRepository struct {
	db *gorm.DB
}

// NewPromoCodeRepository creates a promo code repository.
func NewPromoCodeRepository(db *gorm.DB) *GormPromoCodeRepository {
	return &GormPromoCodeRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormPromoCodeRepository) WithTx(tx *gorm.DB) *GormPromoCodeRepository {
	if tx == nil {
		return r
	}
	return &GormPromoCodeRepository{db: tx}
}

// Create persists a promo code.
func (r *GormPromoCodeRepository) Create(code *models.PromoCode) error {
	return r.db.Create(code).Error
}

// GetByID fetches a promo code by id.
func (r *GormPromoCodeRepository) GetByID(id uint) (*models.PromoCode, error) {
	var code models.PromoCode
	if err := r.db.First(&code, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &code, nil
}

// GetByCode fetches a promo code by its text. Matching is case-sensitive.
func (r *GormPromoCodeRepository) GetByCode(code string) (*models.PromoCode, error) {
	var record models.PromoCode
	if err := r.db.Where("code = ?", code).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// List lists promo codes with optional filters, newest first.
func (r *GormPromoCodeRepository) List(filter PromoCodeListFilter) ([]models.PromoCode, int64, error) {
	query := r.db.Model(&models.PromoCode{})

	if filter.Code != "" {
		query = query.Where("code LIKE ?", "%"+filter.Code+"%")
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var codes []models.PromoCode
	if err := query.Order("id desc").Find(&codes).Error; err != nil {
		return nil, 0, err
	}
	return codes, total, nil
}

// Update saves the full promo code record.
func (r *GormPromoCodeRepository) Update(code *models.PromoCode) error {
	return r.db.Save(code).Error
}

// Delete soft deletes a promo code.
func (r *GormPromoCodeRepository) Delete(id uint) error {
	return r.db.Delete(&models.PromoCode{}, id).Error
}

// IncrementCurrentUses bumps current_uses by one, guarded by max_uses.
// Returns false when the cap is already reached.
func (r *GormPromoCodeRepository) IncrementCurrentUses(id uint) (bool, error) {
	result := r.db.Model(&models.PromoCode{}).
		Where("id = ? AND (max_uses = 0 OR current_uses < max_uses)", id).
		UpdateColumn("current_uses", gorm.Expr("current_uses + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
