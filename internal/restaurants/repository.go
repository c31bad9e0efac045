package restaurants

import (
	"context"

	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository wires together the restaurant persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindRestaurantByID loads one restaurant.
func (r *Repository) FindRestaurantByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).First(&restaurant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// List returns restaurants, optionally restricted to active ones.
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]models.Restaurant, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var restaurants []models.Restaurant
	if err := query.Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

// Create inserts a restaurant row.
func (r *Repository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	return r.db.WithContext(ctx).Create(restaurant).Error
}

// Save persists the full restaurant record.
func (r *Repository) Save(ctx context.Context, restaurant *models.Restaurant) error {
	return r.db.WithContext(ctx).Save(restaurant).Error
}

// Delete removes a restaurant.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Restaurant{}, "id = ?", id).Error
}
