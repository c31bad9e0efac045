package coupons

import (
	"time"

	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	pkgerrors "github.com/davidmarquez/tastebite-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

var cents100 = decimal.NewFromInt(100)

// Validate checks a coupon against the moment and the cart subtotal. The
// active window is checked before the usage cap, and the minimum purchase
// last. It never mutates anything.
func Validate(coupon *models.Coupon, subtotalCents int, at time.Time) error {
	if coupon == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
	}
	if !coupon.IsActive {
		return pkgerrors.New(pkgerrors.CodeValidation, "coupon is not active")
	}
	if coupon.StartsAt != nil && at.Before(*coupon.StartsAt) {
		return pkgerrors.New(pkgerrors.CodeValidation, "coupon is not yet valid")
	}
	if coupon.EndsAt != nil && at.After(*coupon.EndsAt) {
		return pkgerrors.New(pkgerrors.CodeValidation, "coupon has expired")
	}
	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		return pkgerrors.New(pkgerrors.CodeValidation, "coupon usage limit reached")
	}
	if subtotalCents < coupon.MinPurchaseCents {
		return pkgerrors.New(pkgerrors.CodeValidation, "order subtotal below coupon minimum")
	}
	return nil
}

// DiscountCents computes the discount for a validated coupon. Percentage
// discounts are computed in decimal and rounded to whole cents, then capped
// by max_discount_cents; fixed discounts are the stored value. The result
// never exceeds the subtotal.
func DiscountCents(coupon *models.Coupon, subtotalCents int) int {
	var discount int
	switch coupon.DiscountType {
	case enums.CouponDiscountPercentage:
		raw := decimal.NewFromInt(int64(subtotalCents)).
			Mul(decimal.NewFromInt(int64(coupon.DiscountValue))).
			Div(cents100).
			Round(0)
		discount = int(raw.IntPart())
		if coupon.MaxDiscountCents != nil && discount > *coupon.MaxDiscountCents {
			discount = *coupon.MaxDiscountCents
		}
	case enums.CouponDiscountFixed:
		discount = coupon.DiscountValue
	}
	if discount > subtotalCents {
		discount = subtotalCents
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}
