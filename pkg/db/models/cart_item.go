package models

import (
	"time"

	"github.com/davidmarquez/tastebite-backend/pkg/types"
	"github.com/google/uuid"
)

// CartItem snapshots one product selection inside a cart. The unit price is
// computed once at add time; the total is recomputed on every quantity
// change so total = unit * quantity always holds.
type CartItem struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID          uuid.UUID            `gorm:"column:cart_id;type:uuid;not null"`
	ProductID       uuid.UUID            `gorm:"column:product_id;type:uuid;not null"`
	SizeID          *uuid.UUID           `gorm:"column:size_id;type:uuid"`
	SideID          *uuid.UUID           `gorm:"column:side_id;type:uuid"`
	DrinkID         *uuid.UUID           `gorm:"column:drink_id;type:uuid"`
	Quantity        int                  `gorm:"column:quantity;not null"`
	UnitPriceCents  int                  `gorm:"column:unit_price_cents;not null"`
	TotalPriceCents int                  `gorm:"column:total_price_cents;not null"`
	Customizations  types.Customizations `gorm:"column:customizations;type:jsonb;serializer:json"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
