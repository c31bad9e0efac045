package models

import (
	"time"

	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	"github.com/google/uuid"
)

// User is a platform account. Roles are attached through the user_roles join
// table so one account can act as customer, driver, and admin at once.
type User struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"column:email;not null;uniqueIndex:ux_users_email"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Name         string    `gorm:"column:name;not null"`
	Phone        *string   `gorm:"column:phone"`
	AddressLine  *string   `gorm:"column:address_line"`
	City         *string   `gorm:"column:city"`
	PostalCode   *string   `gorm:"column:postal_code"`
	AvatarPath   *string   `gorm:"column:avatar_path"`
	Roles        []Role    `gorm:"many2many:user_roles;"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// HasAddress reports whether the account carries a usable delivery target.
func (u *User) HasAddress() bool {
	return u != nil && u.AddressLine != nil && *u.AddressLine != ""
}

// RoleNames returns the attached roles as enum values.
func (u *User) RoleNames() []enums.UserRole {
	if u == nil {
		return nil
	}
	names := make([]enums.UserRole, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role enums.UserRole) bool {
	for _, attached := range u.RoleNames() {
		if attached == role {
			return true
		}
	}
	return false
}
