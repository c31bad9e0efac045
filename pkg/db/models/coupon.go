package models

import (
	"time"

	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	"github.com/google/uuid"
)

// Coupon is a discount rule with an activation window, usage cap, and
// minimum-purchase gate. UsedCount only moves forward: it is incremented at
// checkout completion and never restored, including on cancellation.
type Coupon struct {
	ID               uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code             string                   `gorm:"column:code;not null;uniqueIndex:ux_coupons_code"`
	DiscountType     enums.CouponDiscountType `gorm:"column:discount_type;not null"`
	DiscountValue    int                      `gorm:"column:discount_value;not null"`
	MinPurchaseCents int                      `gorm:"column:min_purchase_cents;not null;default:0"`
	MaxDiscountCents *int                     `gorm:"column:max_discount_cents"`
	StartsAt         *time.Time               `gorm:"column:starts_at"`
	EndsAt           *time.Time               `gorm:"column:ends_at"`
	UsageLimit       *int                     `gorm:"column:usage_limit"`
	UsedCount        int                      `gorm:"column:used_count;not null;default:0"`
	IsActive         bool                     `gorm:"column:is_active;not null"`
	CreatedAt        time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
