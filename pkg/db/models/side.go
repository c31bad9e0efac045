package models

import (
	"time"

	"github.com/google/uuid"
)

// Side is an independent catalog entity selectable per cart item.
type Side struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string    `gorm:"column:name;not null"`
	ExtraPriceCents int       `gorm:"column:extra_price_cents;not null;default:0"`
	IsAvailable     bool      `gorm:"column:is_available;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
