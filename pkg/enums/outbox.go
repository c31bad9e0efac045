package enums

// OutboxEventType names the domain events published through the outbox.
type OutboxEventType string

const (
	OutboxEventOrderCreated       OutboxEventType = "order.created"
	OutboxEventOrderStatusChanged OutboxEventType = "order.status_changed"
)

// String implements fmt.Stringer.
func (t OutboxEventType) String() string {
	return string(t)
}

// OutboxAggregateType identifies the aggregate an outbox event belongs to.
type OutboxAggregateType string

const (
	OutboxAggregateOrder OutboxAggregateType = "order"
)

// String implements fmt.Stringer.
func (t OutboxAggregateType) String() string {
	return string(t)
}
