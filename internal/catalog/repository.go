package catalog

import (
	"context"

	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository wires together the catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindProductByID loads the product with sizes and ingredient links.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Sizes").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts returns products, optionally restricted to available ones.
func (r *Repository) ListProducts(ctx context.Context, onlyAvailable bool) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Preload("Sizes").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		Order("name ASC")
	if onlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *Repository) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

// ReplaceSizes swaps the size variants attached to a product.
func (r *Repository) ReplaceSizes(ctx context.Context, productID uuid.UUID, sizes []models.ProductSize) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductSize{}).Error; err != nil {
		return err
	}
	if len(sizes) == 0 {
		return nil
	}
	for i := range sizes {
		sizes[i].ProductID = productID
	}
	return tx.Create(&sizes).Error
}

// ReplaceIngredientLinks swaps the ingredient rules attached to a product.
func (r *Repository) ReplaceIngredientLinks(ctx context.Context, productID uuid.UUID, links []models.ProductIngredient) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductIngredient{}).Error; err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}
	for i := range links {
		links[i].ProductID = productID
	}
	return tx.Create(&links).Error
}

func (r *Repository) FindSideByID(ctx context.Context, id uuid.UUID) (*models.Side, error) {
	var side models.Side
	if err := r.db.WithContext(ctx).First(&side, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &side, nil
}

func (r *Repository) ListSides(ctx context.Context, onlyAvailable bool) ([]models.Side, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if onlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	var sides []models.Side
	if err := query.Find(&sides).Error; err != nil {
		return nil, err
	}
	return sides, nil
}

func (r *Repository) CreateSide(ctx context.Context, side *models.Side) error {
	return r.db.WithContext(ctx).Create(side).Error
}

func (r *Repository) SaveSide(ctx context.Context, side *models.Side) error {
	return r.db.WithContext(ctx).Save(side).Error
}

func (r *Repository) DeleteSide(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Side{}, "id = ?", id).Error
}

func (r *Repository) FindDrinkByID(ctx context.Context, id uuid.UUID) (*models.Drink, error) {
	var drink models.Drink
	if err := r.db.WithContext(ctx).First(&drink, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &drink, nil
}

func (r *Repository) ListDrinks(ctx context.Context, onlyAvailable bool) ([]models.Drink, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if onlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	var drinks []models.Drink
	if err := query.Find(&drinks).Error; err != nil {
		return nil, err
	}
	return drinks, nil
}

func (r *Repository) CreateDrink(ctx context.Context, drink *models.Drink) error {
	return r.db.WithContext(ctx).Create(drink).Error
}

func (r *Repository) SaveDrink(ctx context.Context, drink *models.Drink) error {
	return r.db.WithContext(ctx).Save(drink).Error
}

func (r *Repository) DeleteDrink(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Drink{}, "id = ?", id).Error
}

func (r *Repository) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *Repository) CreateIngredient(ctx context.Context, ingredient *models.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}
