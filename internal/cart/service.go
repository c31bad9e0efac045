package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/davidmarquez/tastebite-backend/internal/catalog"
	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	pkgerrors "github.com/davidmarquez/tastebite-backend/pkg/errors"
	"github.com/davidmarquez/tastebite-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes the per-user cart operations. Every mutation is a direct
// write; the checkout package owns the only multi-step transaction.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*models.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*models.Cart, error)
	Clear(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	SetRestaurant(ctx context.Context, userID uuid.UUID, restaurantID *uuid.UUID) (*models.Cart, error)
}

// AddItemInput is one product selection to add. Prices are never accepted
// from the caller; the catalog resolver computes them.
type AddItemInput struct {
	ProductID      uuid.UUID
	SizeID         *uuid.UUID
	SideID         *uuid.UUID
	DrinkID        *uuid.UUID
	Quantity       int
	Customizations types.Customizations
}

type pricer interface {
	Resolve(ctx context.Context, sel catalog.Selection) (*catalog.PriceQuote, error)
	MaxQuantity() int
}

type restaurantChecker interface {
	FindRestaurantByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
}

type service struct {
	repo        *Repository
	pricer      pricer
	restaurants restaurantChecker
}

// NewService builds the cart service.
func NewService(repo *Repository, pricer pricer, restaurants restaurantChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("pricer required")
	}
	if restaurants == nil {
		return nil, fmt.Errorf("restaurant lookup required")
	}
	return &service{repo: repo, pricer: pricer, restaurants: restaurants}, nil
}

// Get returns the user's cart, creating an empty one on first access.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.repo.FindByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	fresh := &models.Cart{UserID: userID}
	if err := s.repo.Create(ctx, fresh); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
	}
	fresh.Items = []models.CartItem{}
	return fresh, nil
}

func (s *service) AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) (*models.Cart, error) {
	quote, err := s.pricer.Resolve(ctx, catalog.Selection{
		ProductID:      input.ProductID,
		SizeID:         input.SizeID,
		SideID:         input.SideID,
		DrinkID:        input.DrinkID,
		Quantity:       input.Quantity,
		Customizations: input.Customizations,
	})
	if err != nil {
		return nil, err
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := &models.CartItem{
		CartID:          cart.ID,
		ProductID:       input.ProductID,
		SizeID:          input.SizeID,
		SideID:          input.SideID,
		DrinkID:         input.DrinkID,
		Quantity:        input.Quantity,
		UnitPriceCents:  quote.UnitPriceCents,
		TotalPriceCents: quote.TotalPriceCents,
		Customizations:  quote.Customizations,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
	}
	return s.Get(ctx, userID)
}

// UpdateItemQuantity recomputes the line total from the stored unit price.
// A quantity below one removes the item instead.
func (s *service) UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.Cart, error) {
	if max := s.pricer.MaxQuantity(); quantity > max {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("quantity must be at most %d", max))
	}
	cart, err := s.requireCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		return s.removeFromCart(ctx, userID, cart, itemID)
	}

	item, err := s.repo.FindItem(ctx, cart.ID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
	}
	item.Quantity = quantity
	item.TotalPriceCents = item.UnitPriceCents * quantity
	if err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
	}
	return s.Get(ctx, userID)
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*models.Cart, error) {
	cart, err := s.requireCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.removeFromCart(ctx, userID, cart, itemID)
}

// Clear deletes every item but keeps the cart row.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.requireCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteItems(ctx, cart.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return s.Get(ctx, userID)
}

// SetRestaurant marks the cart for pickup at the given restaurant, or clears
// the pickup target when nil.
func (s *service) SetRestaurant(ctx context.Context, userID uuid.UUID, restaurantID *uuid.UUID) (*models.Cart, error) {
	if restaurantID != nil {
		if _, err := s.restaurants.FindRestaurantByID(ctx, *restaurantID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
		}
	}
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.RestaurantID = restaurantID
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart")
	}
	return s.Get(ctx, userID)
}

func (s *service) requireCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return cart, nil
}

func (s *service) removeFromCart(ctx context.Context, userID uuid.UUID, cart *models.Cart, itemID uuid.UUID) (*models.Cart, error) {
	if _, err := s.repo.FindItem(ctx, cart.ID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
	}
	if err := s.repo.DeleteItem(ctx, cart.ID, itemID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
	}
	return s.Get(ctx, userID)
}
