package models

import (
	"time"

	"github.com/google/uuid"
)

// Flyer is an admin-managed promotional banner surfaced to the client app.
type Flyer struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title     string     `gorm:"column:title;not null"`
	ImagePath string     `gorm:"column:image_path;not null"`
	StartsAt  *time.Time `gorm:"column:starts_at"`
	EndsAt    *time.Time `gorm:"column:ends_at"`
	IsActive  bool       `gorm:"column:is_active;not null"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
