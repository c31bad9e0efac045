package users

import (
	"context"

	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository wires together the user persistence helpers.
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

// FindUserByID loads a user with their roles.
func (r *Repository) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Roles").
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail loads a user with their roles by normalized email.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Roles").
		First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a user row.
func (r *Repository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Save persists the mutable profile columns.
func (r *Repository) Save(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"name":         user.Name,
			"phone":        user.Phone,
			"address_line": user.AddressLine,
			"city":         user.City,
			"postal_code":  user.PostalCode,
			"avatar_path":  user.AvatarPath,
		}).Error
}

// List returns all users with roles, newest first.
func (r *Repository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// FindRoleByName loads the role row backing an enum value.
func (r *Repository) FindRoleByName(ctx context.Context, name enums.UserRole) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).First(&role, "name = ?", name.String()).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// AddRole attaches the role to the user, a no-op when already attached.
func (r *Repository) AddRole(ctx context.Context, user *models.User, role *models.Role) error {
	return r.db.WithContext(ctx).Model(user).Association("Roles").Append(role)
}

// RemoveRole detaches the role from the user.
func (r *Repository) RemoveRole(ctx context.Context, user *models.User, role *models.Role) error {
	return r.db.WithContext(ctx).Model(user).Association("Roles").Delete(role)
}
