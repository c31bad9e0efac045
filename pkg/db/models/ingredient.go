package models

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient is a shared catalog entity attached to products through
// ProductIngredient.
type Ingredient struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// ProductIngredient links an ingredient to a product and carries the
// per-product customization rules, including the surcharge for extra units.
type ProductIngredient struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID       uuid.UUID  `gorm:"column:product_id;type:uuid;not null;uniqueIndex:ux_product_ingredients"`
	IngredientID    uuid.UUID  `gorm:"column:ingredient_id;type:uuid;not null;uniqueIndex:ux_product_ingredients"`
	IsDefault       bool       `gorm:"column:is_default;not null;default:false"`
	IsRemovable     bool       `gorm:"column:is_removable;not null"`
	IsRequired      bool       `gorm:"column:is_required;not null;default:false"`
	MaxQuantity     int        `gorm:"column:max_quantity;not null;default:1"`
	ExtraPriceCents int        `gorm:"column:extra_price_cents;not null;default:0"`
	Ingredient      Ingredient `gorm:"foreignKey:IngredientID"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
}
