package flyers

import (
	"context"
	"time"

	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository wraps flyer persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Flyer, error) {
	var flyer models.Flyer
	if err := r.db.WithContext(ctx).First(&flyer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &flyer, nil
}

// List returns every flyer, newest first, for the admin surface.
func (r *Repository) List(ctx context.Context) ([]models.Flyer, error) {
	var flyers []models.Flyer
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&flyers).Error
	return flyers, err
}

// ListActive returns flyers visible to the client app at the given instant:
// active flag set and the optional window open on both sides.
func (r *Repository) ListActive(ctx context.Context, at time.Time) ([]models.Flyer, error) {
	var flyers []models.Flyer
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("starts_at IS NULL OR starts_at <= ?", at).
		Where("ends_at IS NULL OR ends_at >= ?", at).
		Order("created_at DESC").
		Find(&flyers).Error
	return flyers, err
}

func (r *Repository) Create(ctx context.Context, flyer *models.Flyer) error {
	return r.db.WithContext(ctx).Create(flyer).Error
}

func (r *Repository) Save(ctx context.Context, flyer *models.Flyer) error {
	return r.db.WithContext(ctx).
		Model(&models.Flyer{}).
		Where("id = ?", flyer.ID).
		Updates(map[string]any{
			"title":      flyer.Title,
			"image_path": flyer.ImagePath,
			"starts_at":  flyer.StartsAt,
			"ends_at":    flyer.EndsAt,
			"is_active":  flyer.IsActive,
		}).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Flyer{}, "id = ?", id).Error
}
