package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	pkgerrors "github.com/davidmarquez/tastebite-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes profile operations and the admin user surface.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*models.User, error)

	ListUsers(ctx context.Context) ([]models.User, error)
	AssignRole(ctx context.Context, userID uuid.UUID, role enums.UserRole) (*models.User, error)
	RevokeRole(ctx context.Context, userID uuid.UUID, role enums.UserRole) (*models.User, error)
}

// UpdateProfileInput holds optional profile mutations. Nil fields are left
// untouched; the mapping is field by field, never a blind struct overwrite.
type UpdateProfileInput struct {
	Name        *string
	Phone       *string
	AddressLine *string
	City        *string
	PostalCode  *string
	AvatarPath  *string
}

type service struct {
	repo *Repository
}

// NewService builds the users service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.requireUser(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*models.User, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		user.Name = name
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.AddressLine != nil {
		user.AddressLine = input.AddressLine
	}
	if input.City != nil {
		user.City = input.City
	}
	if input.PostalCode != nil {
		user.PostalCode = input.PostalCode
	}
	if input.AvatarPath != nil {
		user.AvatarPath = input.AvatarPath
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	return s.requireUser(ctx, userID)
}

func (s *service) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return users, nil
}

func (s *service) AssignRole(ctx context.Context, userID uuid.UUID, role enums.UserRole) (*models.User, error) {
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.HasRole(role) {
		return user, nil
	}
	record, err := s.repo.FindRoleByName(ctx, role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load role")
	}
	if err := s.repo.AddRole(ctx, user, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign role")
	}
	return s.requireUser(ctx, userID)
}

func (s *service) RevokeRole(ctx context.Context, userID uuid.UUID, role enums.UserRole) (*models.User, error) {
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasRole(role) {
		return user, nil
	}
	if len(user.Roles) == 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot revoke the only role")
	}
	record, err := s.repo.FindRoleByName(ctx, role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load role")
	}
	if err := s.repo.RemoveRole(ctx, user, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke role")
	}
	return s.requireUser(ctx, userID)
}

func (s *service) requireUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}
