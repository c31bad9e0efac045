package catalog

import (
	"context"
	"testing"

	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	pkgerrors "github.com/davidmarquez/tastebite-backend/pkg/errors"
	"github.com/davidmarquez/tastebite-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubLoader struct {
	products map[uuid.UUID]*models.Product
	sides    map[uuid.UUID]*models.Side
	drinks   map[uuid.UUID]*models.Drink
}

func (s *stubLoader) FindProductByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubLoader) FindSideByID(_ context.Context, id uuid.UUID) (*models.Side, error) {
	if v, ok := s.sides[id]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubLoader) FindDrinkByID(_ context.Context, id uuid.UUID) (*models.Drink, error) {
	if v, ok := s.drinks[id]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestLoader() (*stubLoader, *models.Product, *models.ProductSize, *models.Side, *models.Drink, uuid.UUID) {
	productID := uuid.New()
	sizeID := uuid.New()
	sideID := uuid.New()
	drinkID := uuid.New()
	ingredientID := uuid.New()

	size := models.ProductSize{ID: sizeID, ProductID: productID, Name: "Grande", PriceModifierCents: 500}
	product := &models.Product{
		ID:             productID,
		Name:           "Club Sandwich",
		BasePriceCents: 5000,
		IsAvailable:    true,
		Sizes:          []models.ProductSize{size},
		Ingredients: []models.ProductIngredient{
			{
				ID:              uuid.New(),
				ProductID:       productID,
				IngredientID:    ingredientID,
				IsDefault:       true,
				MaxQuantity:     3,
				ExtraPriceCents: 150,
			},
		},
	}
	side := &models.Side{ID: sideID, Name: "Fries", ExtraPriceCents: 3900, IsAvailable: true}
	drink := &models.Drink{ID: drinkID, Name: "Lemonade", ExtraPriceCents: 0, IsAvailable: true}

	loader := &stubLoader{
		products: map[uuid.UUID]*models.Product{productID: product},
		sides:    map[uuid.UUID]*models.Side{sideID: side},
		drinks:   map[uuid.UUID]*models.Drink{drinkID: drink},
	}
	return loader, product, &product.Sizes[0], side, drink, ingredientID
}

func mustResolver(t *testing.T, loader *stubLoader) *Resolver {
	t.Helper()
	resolver, err := NewResolver(loader, 5)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	return resolver
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	coded := pkgerrors.As(err)
	if coded == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	if coded.Code() != code {
		t.Fatalf("expected code %s, got %s (%v)", code, coded.Code(), err)
	}
}

func TestResolveSumsAllComponents(t *testing.T) {
	loader, product, size, side, drink, _ := newTestLoader()
	resolver := mustResolver(t, loader)

	quote, err := resolver.Resolve(context.Background(), Selection{
		ProductID: product.ID,
		SizeID:    &size.ID,
		SideID:    &side.ID,
		DrinkID:   &drink.ID,
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if quote.UnitPriceCents != 9400 {
		t.Fatalf("expected unit 9400, got %d", quote.UnitPriceCents)
	}
	if quote.TotalPriceCents != 18800 {
		t.Fatalf("expected total 18800, got %d", quote.TotalPriceCents)
	}
}

func TestResolveFirstIngredientUnitFree(t *testing.T) {
	loader, product, _, _, _, ingredientID := newTestLoader()
	resolver := mustResolver(t, loader)

	one, err := resolver.Resolve(context.Background(), Selection{
		ProductID:      product.ID,
		Quantity:       1,
		Customizations: types.Customizations{ingredientID: 1},
	})
	if err != nil {
		t.Fatalf("resolve qty 1: %v", err)
	}
	if one.UnitPriceCents != product.BasePriceCents {
		t.Fatalf("first unit should be free, got %d", one.UnitPriceCents)
	}

	three, err := resolver.Resolve(context.Background(), Selection{
		ProductID:      product.ID,
		Quantity:       1,
		Customizations: types.Customizations{ingredientID: 3},
	})
	if err != nil {
		t.Fatalf("resolve qty 3: %v", err)
	}
	want := product.BasePriceCents + 150*2
	if three.UnitPriceCents != want {
		t.Fatalf("expected %d with two chargeable units, got %d", want, three.UnitPriceCents)
	}
}

func TestResolveTotalIsUnitTimesQuantity(t *testing.T) {
	loader, product, _, _, _, _ := newTestLoader()
	resolver := mustResolver(t, loader)

	for qty := 1; qty <= 5; qty++ {
		quote, err := resolver.Resolve(context.Background(), Selection{
			ProductID: product.ID,
			Quantity:  qty,
		})
		if err != nil {
			t.Fatalf("resolve qty %d: %v", qty, err)
		}
		if quote.TotalPriceCents != quote.UnitPriceCents*qty {
			t.Fatalf("qty %d: total %d != unit %d * qty", qty, quote.TotalPriceCents, quote.UnitPriceCents)
		}
	}
}

func TestResolveQuantityBounds(t *testing.T) {
	loader, product, _, _, _, _ := newTestLoader()
	resolver := mustResolver(t, loader)

	for _, qty := range []int{0, -1, 6} {
		_, err := resolver.Resolve(context.Background(), Selection{ProductID: product.ID, Quantity: qty})
		assertCode(t, err, pkgerrors.CodeValidation)
	}
}

func TestResolveMissingOrUnavailableProduct(t *testing.T) {
	loader, product, _, _, _, _ := newTestLoader()
	resolver := mustResolver(t, loader)

	_, err := resolver.Resolve(context.Background(), Selection{ProductID: uuid.New(), Quantity: 1})
	assertCode(t, err, pkgerrors.CodeNotFound)

	product.IsAvailable = false
	_, err = resolver.Resolve(context.Background(), Selection{ProductID: product.ID, Quantity: 1})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestResolveForeignSizeRejected(t *testing.T) {
	loader, product, _, _, _, _ := newTestLoader()
	resolver := mustResolver(t, loader)

	foreign := uuid.New()
	_, err := resolver.Resolve(context.Background(), Selection{
		ProductID: product.ID,
		SizeID:    &foreign,
		Quantity:  1,
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestResolveCustomizationRules(t *testing.T) {
	loader, product, _, _, _, ingredientID := newTestLoader()
	resolver := mustResolver(t, loader)

	_, err := resolver.Resolve(context.Background(), Selection{
		ProductID:      product.ID,
		Quantity:       1,
		Customizations: types.Customizations{uuid.New(): 1},
	})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = resolver.Resolve(context.Background(), Selection{
		ProductID:      product.ID,
		Quantity:       1,
		Customizations: types.Customizations{ingredientID: 4},
	})
	assertCode(t, err, pkgerrors.CodeValidation)

	// zero and negative quantities are normalized away, not errors
	quote, err := resolver.Resolve(context.Background(), Selection{
		ProductID:      product.ID,
		Quantity:       1,
		Customizations: types.Customizations{ingredientID: 0},
	})
	if err != nil {
		t.Fatalf("resolve with zero quantity: %v", err)
	}
	if len(quote.Customizations) != 0 {
		t.Fatalf("expected normalized customizations to be empty, got %v", quote.Customizations)
	}
}

func TestResolveUnavailableAddOns(t *testing.T) {
	loader, product, _, side, drink, _ := newTestLoader()
	resolver := mustResolver(t, loader)

	side.IsAvailable = false
	_, err := resolver.Resolve(context.Background(), Selection{
		ProductID: product.ID,
		SideID:    &side.ID,
		Quantity:  1,
	})
	assertCode(t, err, pkgerrors.CodeValidation)

	drink.IsAvailable = false
	_, err = resolver.Resolve(context.Background(), Selection{
		ProductID: product.ID,
		DrinkID:   &drink.ID,
		Quantity:  1,
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}
