package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	pkgerrors "github.com/davidmarquez/tastebite-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes catalog reads and admin mutations.
type Service interface {
	ListProducts(ctx context.Context, includeUnavailable bool) ([]models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	ListSides(ctx context.Context, includeUnavailable bool) ([]models.Side, error)
	CreateSide(ctx context.Context, input SideInput) (*models.Side, error)
	UpdateSide(ctx context.Context, id uuid.UUID, input UpdateSideInput) (*models.Side, error)
	DeleteSide(ctx context.Context, id uuid.UUID) error

	ListDrinks(ctx context.Context, includeUnavailable bool) ([]models.Drink, error)
	CreateDrink(ctx context.Context, input DrinkInput) (*models.Drink, error)
	UpdateDrink(ctx context.Context, id uuid.UUID, input UpdateDrinkInput) (*models.Drink, error)
	DeleteDrink(ctx context.Context, id uuid.UUID) error

	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
	CreateIngredient(ctx context.Context, name string) (*models.Ingredient, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name           string
	Description    *string
	BasePriceCents int
	IsCombo        bool
	IsAvailable    bool
	ImagePath      *string
	Sizes          []SizeInput
	Ingredients    []IngredientLinkInput
}

// SizeInput defines one size variant with its flat price modifier.
type SizeInput struct {
	Name               string
	PriceModifierCents int
}

// IngredientLinkInput attaches an ingredient with its customization rules.
type IngredientLinkInput struct {
	IngredientID    uuid.UUID
	IsDefault       bool
	IsRemovable     bool
	IsRequired      bool
	MaxQuantity     int
	ExtraPriceCents int
}

// UpdateProductInput holds optional mutation values for a product. Nil fields
// are left untouched; size and ingredient slices replace wholesale when set.
type UpdateProductInput struct {
	Name           *string
	Description    *string
	BasePriceCents *int
	IsCombo        *bool
	IsAvailable    *bool
	ImagePath      *string
	Sizes          *[]SizeInput
	Ingredients    *[]IngredientLinkInput
}

// SideInput / DrinkInput create standalone add-on entities.
type SideInput struct {
	Name            string
	ExtraPriceCents int
	IsAvailable     bool
}

type UpdateSideInput struct {
	Name            *string
	ExtraPriceCents *int
	IsAvailable     *bool
}

type DrinkInput struct {
	Name            string
	ExtraPriceCents int
	IsAvailable     bool
}

type UpdateDrinkInput struct {
	Name            *string
	ExtraPriceCents *int
	IsAvailable     *bool
}

type service struct {
	repo *Repository
}

// NewService builds the catalog service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context, includeUnavailable bool) ([]models.Product, error) {
	products, err := s.repo.ListProducts(ctx, !includeUnavailable)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.BasePriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base price must be non-negative")
	}
	for _, link := range input.Ingredients {
		if link.MaxQuantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "ingredient max quantity must be at least 1")
		}
		if link.ExtraPriceCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "ingredient extra price must be non-negative")
		}
	}

	product := &models.Product{
		Name:           name,
		Description:    input.Description,
		BasePriceCents: input.BasePriceCents,
		IsCombo:        input.IsCombo,
		IsAvailable:    input.IsAvailable,
		ImagePath:      input.ImagePath,
		Sizes:          sizesFromInput(input.Sizes),
		Ingredients:    linksFromInput(input.Ingredients),
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return s.GetProduct(ctx, product.ID)
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
		}
		product.Name = name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.BasePriceCents != nil {
		if *input.BasePriceCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "base price must be non-negative")
		}
		product.BasePriceCents = *input.BasePriceCents
	}
	if input.IsCombo != nil {
		product.IsCombo = *input.IsCombo
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}
	if input.ImagePath != nil {
		product.ImagePath = input.ImagePath
	}

	// Detach association slices so Save only writes the product row.
	sizes := product.Sizes
	links := product.Ingredients
	product.Sizes = nil
	product.Ingredients = nil
	if err := s.repo.SaveProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	product.Sizes = sizes
	product.Ingredients = links

	if input.Sizes != nil {
		if err := s.repo.ReplaceSizes(ctx, id, sizesFromInput(*input.Sizes)); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace sizes")
		}
	}
	if input.Ingredients != nil {
		for _, link := range *input.Ingredients {
			if link.MaxQuantity < 1 {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "ingredient max quantity must be at least 1")
			}
		}
		if err := s.repo.ReplaceIngredientLinks(ctx, id, linksFromInput(*input.Ingredients)); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace ingredients")
		}
	}

	return s.GetProduct(ctx, id)
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) ListSides(ctx context.Context, includeUnavailable bool) ([]models.Side, error) {
	sides, err := s.repo.ListSides(ctx, !includeUnavailable)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sides")
	}
	return sides, nil
}

func (s *service) CreateSide(ctx context.Context, input SideInput) (*models.Side, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "side name is required")
	}
	if input.ExtraPriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "extra price must be non-negative")
	}
	side := &models.Side{
		Name:            strings.TrimSpace(input.Name),
		ExtraPriceCents: input.ExtraPriceCents,
		IsAvailable:     input.IsAvailable,
	}
	if err := s.repo.CreateSide(ctx, side); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create side")
	}
	return side, nil
}

func (s *service) UpdateSide(ctx context.Context, id uuid.UUID, input UpdateSideInput) (*models.Side, error) {
	side, err := s.repo.FindSideByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "side not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load side")
	}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "side name cannot be empty")
		}
		side.Name = strings.TrimSpace(*input.Name)
	}
	if input.ExtraPriceCents != nil {
		if *input.ExtraPriceCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "extra price must be non-negative")
		}
		side.ExtraPriceCents = *input.ExtraPriceCents
	}
	if input.IsAvailable != nil {
		side.IsAvailable = *input.IsAvailable
	}
	if err := s.repo.SaveSide(ctx, side); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update side")
	}
	return side, nil
}

func (s *service) DeleteSide(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindSideByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "side not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load side")
	}
	if err := s.repo.DeleteSide(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete side")
	}
	return nil
}

func (s *service) ListDrinks(ctx context.Context, includeUnavailable bool) ([]models.Drink, error) {
	drinks, err := s.repo.ListDrinks(ctx, !includeUnavailable)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list drinks")
	}
	return drinks, nil
}

func (s *service) CreateDrink(ctx context.Context, input DrinkInput) (*models.Drink, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "drink name is required")
	}
	if input.ExtraPriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "extra price must be non-negative")
	}
	drink := &models.Drink{
		Name:            strings.TrimSpace(input.Name),
		ExtraPriceCents: input.ExtraPriceCents,
		IsAvailable:     input.IsAvailable,
	}
	if err := s.repo.CreateDrink(ctx, drink); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create drink")
	}
	return drink, nil
}

func (s *service) UpdateDrink(ctx context.Context, id uuid.UUID, input UpdateDrinkInput) (*models.Drink, error) {
	drink, err := s.repo.FindDrinkByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "drink not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load drink")
	}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "drink name cannot be empty")
		}
		drink.Name = strings.TrimSpace(*input.Name)
	}
	if input.ExtraPriceCents != nil {
		if *input.ExtraPriceCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "extra price must be non-negative")
		}
		drink.ExtraPriceCents = *input.ExtraPriceCents
	}
	if input.IsAvailable != nil {
		drink.IsAvailable = *input.IsAvailable
	}
	if err := s.repo.SaveDrink(ctx, drink); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update drink")
	}
	return drink, nil
}

func (s *service) DeleteDrink(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindDrinkByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "drink not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load drink")
	}
	if err := s.repo.DeleteDrink(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete drink")
	}
	return nil
}

func (s *service) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	ingredients, err := s.repo.ListIngredients(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ingredients")
	}
	return ingredients, nil
}

func (s *service) CreateIngredient(ctx context.Context, name string) (*models.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ingredient name is required")
	}
	ingredient := &models.Ingredient{Name: name}
	if err := s.repo.CreateIngredient(ctx, ingredient); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create ingredient")
	}
	return ingredient, nil
}

func sizesFromInput(inputs []SizeInput) []models.ProductSize {
	if len(inputs) == 0 {
		return nil
	}
	sizes := make([]models.ProductSize, 0, len(inputs))
	for _, in := range inputs {
		sizes = append(sizes, models.ProductSize{
			Name:               in.Name,
			PriceModifierCents: in.PriceModifierCents,
		})
	}
	return sizes
}

func linksFromInput(inputs []IngredientLinkInput) []models.ProductIngredient {
	if len(inputs) == 0 {
		return nil
	}
	links := make([]models.ProductIngredient, 0, len(inputs))
	for _, in := range inputs {
		links = append(links, models.ProductIngredient{
			IngredientID:    in.IngredientID,
			IsDefault:       in.IsDefault,
			IsRemovable:     in.IsRemovable,
			IsRequired:      in.IsRequired,
			MaxQuantity:     in.MaxQuantity,
			ExtraPriceCents: in.ExtraPriceCents,
		})
	}
	return links
}
