package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	pkgerrors "github.com/davidmarquez/tastebite-backend/pkg/errors"
	"github.com/davidmarquez/tastebite-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Selection is one product configuration to be priced.
type Selection struct {
	ProductID      uuid.UUID
	SizeID         *uuid.UUID
	SideID         *uuid.UUID
	DrinkID        *uuid.UUID
	Quantity       int
	Customizations types.Customizations
}

// PriceQuote is the resolver output. Unit price covers one configured unit;
// total = unit * quantity.
type PriceQuote struct {
	Product         *models.Product
	Size            *models.ProductSize
	Side            *models.Side
	Drink           *models.Drink
	UnitPriceCents  int
	TotalPriceCents int
	Customizations  types.Customizations
}

type productLoader interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindSideByID(ctx context.Context, id uuid.UUID) (*models.Side, error)
	FindDrinkByID(ctx context.Context, id uuid.UUID) (*models.Drink, error)
}

// Resolver computes the authoritative unit price for a product selection.
// Client-provided prices are never trusted.
type Resolver struct {
	loader      productLoader
	maxQuantity int
}

// NewResolver builds a pricing resolver over the catalog.
func NewResolver(loader productLoader, maxQuantity int) (*Resolver, error) {
	if loader == nil {
		return nil, fmt.Errorf("catalog loader required")
	}
	if maxQuantity <= 0 {
		return nil, fmt.Errorf("max quantity must be positive")
	}
	return &Resolver{loader: loader, maxQuantity: maxQuantity}, nil
}

// MaxQuantity reports the per-line quantity ceiling.
func (r *Resolver) MaxQuantity() int {
	return r.maxQuantity
}

// Resolve validates the selection against the catalog and prices it.
func (r *Resolver) Resolve(ctx context.Context, sel Selection) (*PriceQuote, error) {
	if sel.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if sel.Quantity < 1 || sel.Quantity > r.maxQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("quantity must be between 1 and %d", r.maxQuantity))
	}

	product, err := r.loader.FindProductByID(ctx, sel.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.IsAvailable {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	unit := product.BasePriceCents

	var size *models.ProductSize
	if sel.SizeID != nil {
		for i := range product.Sizes {
			if product.Sizes[i].ID == *sel.SizeID {
				size = &product.Sizes[i]
				break
			}
		}
		if size == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "size does not belong to product")
		}
		unit += size.PriceModifierCents
	}

	var side *models.Side
	if sel.SideID != nil {
		side, err = r.loadSide(ctx, *sel.SideID)
		if err != nil {
			return nil, err
		}
		unit += side.ExtraPriceCents
	}

	var drink *models.Drink
	if sel.DrinkID != nil {
		drink, err = r.loadDrink(ctx, *sel.DrinkID)
		if err != nil {
			return nil, err
		}
		unit += drink.ExtraPriceCents
	}

	customizations := sel.Customizations.Normalize()
	extras, err := ingredientExtras(product, customizations)
	if err != nil {
		return nil, err
	}
	unit += extras

	return &PriceQuote{
		Product:         product,
		Size:            size,
		Side:            side,
		Drink:           drink,
		UnitPriceCents:  unit,
		TotalPriceCents: unit * sel.Quantity,
		Customizations:  customizations,
	}, nil
}

func (r *Resolver) loadSide(ctx context.Context, id uuid.UUID) (*models.Side, error) {
	side, err := r.loader.FindSideByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "side not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load side")
	}
	if !side.IsAvailable {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "side is not available")
	}
	return side, nil
}

func (r *Resolver) loadDrink(ctx context.Context, id uuid.UUID) (*models.Drink, error) {
	drink, err := r.loader.FindDrinkByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "drink not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load drink")
	}
	if !drink.IsAvailable {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "drink is not available")
	}
	return drink, nil
}

// ingredientExtras charges each customized ingredient from the second unit
// onward: the first unit of every add-on ingredient is free.
func ingredientExtras(product *models.Product, customizations types.Customizations) (int, error) {
	if len(customizations) == 0 {
		return 0, nil
	}

	links := make(map[uuid.UUID]*models.ProductIngredient, len(product.Ingredients))
	for i := range product.Ingredients {
		links[product.Ingredients[i].IngredientID] = &product.Ingredients[i]
	}

	extras := 0
	for ingredientID, qty := range customizations {
		link, ok := links[ingredientID]
		if !ok {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, "ingredient does not belong to product")
		}
		if qty > link.MaxQuantity {
			return 0, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("ingredient quantity exceeds maximum of %d", link.MaxQuantity))
		}
		if qty > 1 {
			extras += link.ExtraPriceCents * (qty - 1)
		}
	}
	return extras, nil
}
