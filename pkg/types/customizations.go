package types

import (
	"github.com/google/uuid"
)

// Customizations maps an ingredient id to the quantity selected for a cart
// item. It replaces the free-form JSON blob the mobile client used to send;
// entries are validated against the product's declared ingredient list before
// being persisted.
type Customizations map[uuid.UUID]int

// Quantity returns the selected quantity for the ingredient, zero when absent.
func (c Customizations) Quantity(ingredientID uuid.UUID) int {
	if c == nil {
		return 0
	}
	return c[ingredientID]
}

// Normalize drops zero and negative entries so the stored map only carries
// meaningful selections.
func (c Customizations) Normalize() Customizations {
	if len(c) == 0 {
		return nil
	}
	out := Customizations{}
	for id, qty := range c {
		if qty > 0 {
			out[id] = qty
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
