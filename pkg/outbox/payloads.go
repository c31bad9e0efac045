package outbox

import (
	"time"

	"github.com/google/uuid"
)

// OrderCreatedData is the event body published when checkout completes.
type OrderCreatedData struct {
	OrderID       uuid.UUID `json:"orderId"`
	UserID        uuid.UUID `json:"userId"`
	Fulfillment   string    `json:"fulfillment"`
	PaymentMethod string    `json:"paymentMethod"`
	SubtotalCents int       `json:"subtotalCents"`
	DiscountCents int       `json:"discountCents"`
	TotalCents    int       `json:"totalCents"`
	CouponCode    *string   `json:"couponCode,omitempty"`
	ItemCount     int       `json:"itemCount"`
	PlacedAt      time.Time `json:"placedAt"`
}

// OrderStatusChangedData is published on every lifecycle transition.
type OrderStatusChangedData struct {
	OrderID    uuid.UUID  `json:"orderId"`
	UserID     uuid.UUID  `json:"userId"`
	FromStatus string     `json:"fromStatus"`
	ToStatus   string     `json:"toStatus"`
	DriverID   *uuid.UUID `json:"driverId,omitempty"`
	ChangedAt  time.Time  `json:"changedAt"`
}
