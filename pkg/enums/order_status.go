package enums

import "fmt"

// OrderStatus tracks an order through the delivery lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusPickedUp  OrderStatus = "picked_up"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusPickedUp,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// orderStatusSuccessors maps each status to the statuses it may move to.
// Cancellation is only allowed while the order is still pending.
var orderStatusSuccessors = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPreparing},
	OrderStatusPreparing: {OrderStatusReady},
	OrderStatusReady:     {OrderStatusPickedUp},
	OrderStatusPickedUp:  {OrderStatusDelivered},
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s OrderStatus) IsTerminal() bool {
	return len(orderStatusSuccessors[s]) == 0
}

// CanTransitionTo reports whether the lifecycle allows moving to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, candidate := range orderStatusSuccessors[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// NextDemoStatus returns the single forward step used by the demo simulation,
// or the zero value when the order is terminal.
func (s OrderStatus) NextDemoStatus() OrderStatus {
	switch s {
	case OrderStatusPending:
		return OrderStatusConfirmed
	case OrderStatusConfirmed:
		return OrderStatusPreparing
	case OrderStatusPreparing:
		return OrderStatusReady
	case OrderStatusReady:
		return OrderStatusPickedUp
	case OrderStatusPickedUp:
		return OrderStatusDelivered
	default:
		return ""
	}
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
