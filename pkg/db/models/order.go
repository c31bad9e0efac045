package models

import (
	"time"

	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	"github.com/google/uuid"
)

// Order is the immutable snapshot produced at checkout completion. Totals,
// the fulfillment target, and the line items are frozen copies; later catalog
// edits never reach past orders.
type Order struct {
	ID               uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index:ix_orders_user"`
	Status           enums.OrderStatus     `gorm:"column:status;not null;default:'pending'"`
	Fulfillment      enums.FulfillmentKind `gorm:"column:fulfillment;not null"`
	SubtotalCents    int                   `gorm:"column:subtotal_cents;not null"`
	DiscountCents    int                   `gorm:"column:discount_cents;not null;default:0"`
	DeliveryFeeCents int                   `gorm:"column:delivery_fee_cents;not null;default:0"`
	TipCents         int                   `gorm:"column:tip_cents;not null;default:0"`
	TotalCents       int                   `gorm:"column:total_cents;not null"`
	PaymentMethod    enums.PaymentMethod   `gorm:"column:payment_method;not null"`
	CouponID         *uuid.UUID            `gorm:"column:coupon_id;type:uuid"`
	DeliveryAddress  *string               `gorm:"column:delivery_address"`
	RestaurantID     *uuid.UUID            `gorm:"column:restaurant_id;type:uuid"`
	RestaurantName   *string               `gorm:"column:restaurant_name"`
	DriverID         *uuid.UUID            `gorm:"column:driver_id;type:uuid;index:ix_orders_driver"`
	IsDemo           bool                  `gorm:"column:is_demo;not null;default:false"`
	Items            []OrderItem           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	PickedUpAt       *time.Time            `gorm:"column:picked_up_at"`
	DeliveredAt      *time.Time            `gorm:"column:delivered_at"`
	CancelledAt      *time.Time            `gorm:"column:cancelled_at"`
	CreatedAt        time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
