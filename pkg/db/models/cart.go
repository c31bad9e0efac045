package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is the per-user staging area for an order. One cart per user, created
// lazily on the first item add and deleted when checkout completes. The
// coupon reference and cached discount stay mutable until then.
type Cart struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:ux_carts_user"`
	CouponID      *uuid.UUID `gorm:"column:coupon_id;type:uuid"`
	DiscountCents int        `gorm:"column:discount_cents;not null;default:0"`
	RestaurantID  *uuid.UUID `gorm:"column:restaurant_id;type:uuid"`
	Items         []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// SubtotalCents sums the stored line totals.
func (c *Cart) SubtotalCents() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, item := range c.Items {
		total += item.TotalPriceCents
	}
	return total
}
