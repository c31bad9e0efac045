package models

import (
	"time"

	"github.com/davidmarquez/tastebite-backend/pkg/types"
	"github.com/google/uuid"
)

// OrderItem is a frozen copy of a cart item taken at purchase time. Display
// names are stored directly so the row survives catalog renames and deletes.
type OrderItem struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID         uuid.UUID            `gorm:"column:order_id;type:uuid;not null"`
	ProductID       uuid.UUID            `gorm:"column:product_id;type:uuid;not null"`
	ProductName     string               `gorm:"column:product_name;not null"`
	SizeName        *string              `gorm:"column:size_name"`
	SideName        *string              `gorm:"column:side_name"`
	DrinkName       *string              `gorm:"column:drink_name"`
	Quantity        int                  `gorm:"column:quantity;not null"`
	UnitPriceCents  int                  `gorm:"column:unit_price_cents;not null"`
	TotalPriceCents int                  `gorm:"column:total_price_cents;not null"`
	Customizations  types.Customizations `gorm:"column:customizations;type:jsonb;serializer:json"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
}
