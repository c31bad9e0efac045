package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ID generation happens client-side so sqlite-backed tests behave like
// postgres; the column default stays as a backstop for raw SQL inserts.

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (m *User) BeforeCreate(*gorm.DB) error              { ensureID(&m.ID); return nil }
func (m *Role) BeforeCreate(*gorm.DB) error              { ensureID(&m.ID); return nil }
func (m *Restaurant) BeforeCreate(*gorm.DB) error        { ensureID(&m.ID); return nil }
func (m *Product) BeforeCreate(*gorm.DB) error           { ensureID(&m.ID); return nil }
func (m *ProductSize) BeforeCreate(*gorm.DB) error       { ensureID(&m.ID); return nil }
func (m *Ingredient) BeforeCreate(*gorm.DB) error        { ensureID(&m.ID); return nil }
func (m *ProductIngredient) BeforeCreate(*gorm.DB) error { ensureID(&m.ID); return nil }
func (m *Side) BeforeCreate(*gorm.DB) error              { ensureID(&m.ID); return nil }
func (m *Drink) BeforeCreate(*gorm.DB) error             { ensureID(&m.ID); return nil }
func (m *Cart) BeforeCreate(*gorm.DB) error              { ensureID(&m.ID); return nil }
func (m *CartItem) BeforeCreate(*gorm.DB) error          { ensureID(&m.ID); return nil }
func (m *Coupon) BeforeCreate(*gorm.DB) error            { ensureID(&m.ID); return nil }
func (m *Order) BeforeCreate(*gorm.DB) error             { ensureID(&m.ID); return nil }
func (m *OrderItem) BeforeCreate(*gorm.DB) error         { ensureID(&m.ID); return nil }
func (m *Flyer) BeforeCreate(*gorm.DB) error             { ensureID(&m.ID); return nil }
func (m *OutboxEvent) BeforeCreate(*gorm.DB) error       { ensureID(&m.ID); return nil }
