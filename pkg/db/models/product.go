package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog listing. Combos require a side and a drink selection
// at checkout; regular products take them optionally.
type Product struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string              `gorm:"column:name;not null"`
	Description    *string             `gorm:"column:description"`
	BasePriceCents int                 `gorm:"column:base_price_cents;not null"`
	IsCombo        bool                `gorm:"column:is_combo;not null;default:false"`
	IsAvailable    bool                `gorm:"column:is_available;not null"`
	ImagePath      *string             `gorm:"column:image_path"`
	Sizes          []ProductSize       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Ingredients    []ProductIngredient `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductSize is an optional size variant carrying a flat price modifier.
type ProductSize struct {
	ID                 uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID          uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Name               string    `gorm:"column:name;not null"`
	PriceModifierCents int       `gorm:"column:price_modifier_cents;not null;default:0"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
}
