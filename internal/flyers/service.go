package flyers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	pkgerrors "github.com/davidmarquez/tastebite-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes the public active-flyer feed and the admin CRUD surface.
type Service interface {
	ListActive(ctx context.Context) ([]models.Flyer, error)
	List(ctx context.Context) ([]models.Flyer, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Flyer, error)
	Create(ctx context.Context, input CreateFlyerInput) (*models.Flyer, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateFlyerInput) (*models.Flyer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateFlyerInput holds the validated payload to create a flyer.
type CreateFlyerInput struct {
	Title     string
	ImagePath string
	StartsAt  *time.Time
	EndsAt    *time.Time
	IsActive  bool
}

// UpdateFlyerInput holds optional mutation values. Nil fields are left
// untouched.
type UpdateFlyerInput struct {
	Title     *string
	ImagePath *string
	StartsAt  *time.Time
	EndsAt    *time.Time
	IsActive  *bool
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService builds the flyer service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("flyer repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// ListActive is the client-facing feed: active flyers whose display window
// covers the current moment.
func (s *service) ListActive(ctx context.Context) ([]models.Flyer, error) {
	flyers, err := s.repo.ListActive(ctx, s.now())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active flyers")
	}
	return flyers, nil
}

func (s *service) List(ctx context.Context) ([]models.Flyer, error) {
	flyers, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list flyers")
	}
	return flyers, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Flyer, error) {
	flyer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "flyer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load flyer")
	}
	return flyer, nil
}

func (s *service) Create(ctx context.Context, input CreateFlyerInput) (*models.Flyer, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "flyer title is required")
	}
	imagePath := strings.TrimSpace(input.ImagePath)
	if imagePath == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "flyer image is required")
	}
	if err := validateWindow(input.StartsAt, input.EndsAt); err != nil {
		return nil, err
	}

	flyer := &models.Flyer{
		Title:     title,
		ImagePath: imagePath,
		StartsAt:  input.StartsAt,
		EndsAt:    input.EndsAt,
		IsActive:  input.IsActive,
	}
	if err := s.repo.Create(ctx, flyer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create flyer")
	}
	return flyer, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateFlyerInput) (*models.Flyer, error) {
	flyer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "flyer title cannot be empty")
		}
		flyer.Title = title
	}
	if input.ImagePath != nil {
		imagePath := strings.TrimSpace(*input.ImagePath)
		if imagePath == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "flyer image cannot be empty")
		}
		flyer.ImagePath = imagePath
	}
	if input.StartsAt != nil {
		flyer.StartsAt = input.StartsAt
	}
	if input.EndsAt != nil {
		flyer.EndsAt = input.EndsAt
	}
	if err := validateWindow(flyer.StartsAt, flyer.EndsAt); err != nil {
		return nil, err
	}
	if input.IsActive != nil {
		flyer.IsActive = *input.IsActive
	}

	if err := s.repo.Save(ctx, flyer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update flyer")
	}
	return flyer, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete flyer")
	}
	return nil
}

func validateWindow(startsAt, endsAt *time.Time) error {
	if startsAt != nil && endsAt != nil && endsAt.Before(*startsAt) {
		return pkgerrors.New(pkgerrors.CodeValidation, "flyer window ends before it starts")
	}
	return nil
}
