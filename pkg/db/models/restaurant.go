package models

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is a pickup location and admin-managed catalog entity.
type Restaurant struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	AddressLine string    `gorm:"column:address_line;not null"`
	City        *string   `gorm:"column:city"`
	Phone       *string   `gorm:"column:phone"`
	IsActive    bool      `gorm:"column:is_active;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
