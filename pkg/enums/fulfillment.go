package enums

// FulfillmentKind records how an order reaches the customer.
type FulfillmentKind string

const (
	FulfillmentDelivery FulfillmentKind = "delivery"
	FulfillmentPickup   FulfillmentKind = "pickup"
)

// String implements fmt.Stringer.
func (f FulfillmentKind) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FulfillmentKind.
func (f FulfillmentKind) IsValid() bool {
	return f == FulfillmentDelivery || f == FulfillmentPickup
}
