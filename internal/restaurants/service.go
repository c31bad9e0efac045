package restaurants

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

// Service exposes restaurant reads and the admin CRUD surface.
type Service interface {
	List(ctx context.Context, includeInactive bool) ([]models.Restaurant, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	Create(ctx context.Context, input CreateRestaurantInput) (*models.Restaurant, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateRestaurantInput) (*models.Restaurant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateRestaurantInput holds the validated payload to create a restaurant.
type CreateRestaurantInput struct {
	Name        string
	AddressLine string
	City        *string
	Phone       *string
	IsActive    bool
}

// UpdateRestaurantInput holds optional mutation values. Nil fields are left
// untouched.
type UpdateRestaurantInput struct {
	Name        *string
	AddressLine *string
	City        *string
	Phone       *string
	IsActive    *bool
}

type service struct {
	repo *Repository
}

// NewService builds the restaurant service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("restaurant repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, includeInactive bool) ([]models.Restaurant, error) {
	restaurants, err := s.repo.List(ctx, !includeInactive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list restaurants")
	}
	return restaurants, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	restaurant, err := s.repo.FindRestaurantByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}
	return restaurant, nil
}

func (s *service) Create(ctx context.Context, input CreateRestaurantInput) (*models.Restaurant, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant name is required")
	}
	address := strings.TrimSpace(input.AddressLine)
	if address == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant address is required")
	}

	restaurant := &models.Restaurant{
		Name:        name,
		AddressLine: address,
		City:        input.City,
		Phone:       input.Phone,
		IsActive:    input.IsActive,
	}
	if err := s.repo.Create(ctx, restaurant); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create restaurant")
	}
	return restaurant, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateRestaurantInput) (*models.Restaurant, error) {
	restaurant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant name cannot be empty")
		}
		restaurant.Name = name
	}
	if input.AddressLine != nil {
		address := strings.TrimSpace(*input.AddressLine)
		if address == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant address cannot be empty")
		}
		restaurant.AddressLine = address
	}
	if input.City != nil {
		restaurant.City = input.City
	}
	if input.Phone != nil {
		restaurant.Phone = input.Phone
	}
	if input.IsActive != nil {
		restaurant.IsActive = *input.IsActive
	}

	if err := s.repo.Save(ctx, restaurant); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update restaurant")
	}
	return restaurant, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete restaurant")
	}
	return nil
}
