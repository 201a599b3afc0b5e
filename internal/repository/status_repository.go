package repository

import (
	"errors"

	"github.com/orders-next/internal/models"

	"gorm.io/gorm"
)

// StatusRepository is the order status data access interface.
type StatusRepository interface {
	GetByID(id uint) (*models.Status, error)
	GetByName(name string) (*models.Status, error)
	List() ([]models.Status, error)
	Create(status *models.Status) error
	WithTx(tx *gorm.DB) *GormStatusRepository
}

// GormStatusRepository is the GORM implementation.
type GormStatusRepository struct {
	db *gorm.DB
}

// NewStatusRepository creates a status repository.
func NewStatusRepository(db *gorm.DB) *GormStatusRepository {
	return &GormStatusRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormStatusRepository) WithTx(tx *gorm.DB) *GormStatusRepository {
	if tx == nil {
		return r
	}
	return &GormStatusRepository{db: tx}
}

// GetByID fetches a status by id.
func (r *GormStatusRepository) GetByID(id uint) (*models.Status, error) {
	var status models.Status
	if err := r.db.First(&status, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

// GetByName fetches a status by its name.
func (r *GormStatusRepository) GetByName(name string) (*models.Status, error) {
	var status models.Status
	if err := r.db.Where("name = ?", name).First(&status).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

// List returns all statuses in insertion order.
func (r *GormStatusRepository) List() ([]models.Status, error) {
	var statuses []models.Status
	if err := r.db.Order("id asc").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

// Create persists a status.
func (r *GormStatusRepository) Create(status *models.Status) error {
	return r.db.Create(status).Error
}
