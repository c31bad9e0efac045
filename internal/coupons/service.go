package coupons

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davidmarquez/tastebite-backend/pkg/db"
	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	pkgerrors "github.com/davidmarquez/tastebite-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes coupon application on carts plus the admin CRUD surface.
type Service interface {
	Apply(ctx context.Context, userID uuid.UUID, code string) (*models.Cart, error)
	Remove(ctx context.Context, userID uuid.UUID) (*models.Cart, error)

	List(ctx context.Context) ([]models.Coupon, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
	Create(ctx context.Context, input CreateCouponInput) (*models.Coupon, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCouponInput) (*models.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateCouponInput holds the validated payload to create a coupon.
type CreateCouponInput struct {
	Code             string
	DiscountType     enums.CouponDiscountType
	DiscountValue    int
	MinPurchaseCents int
	MaxDiscountCents *int
	StartsAt         *time.Time
	EndsAt           *time.Time
	UsageLimit       *int
	IsActive         bool
}

// UpdateCouponInput holds optional mutation values. Nil fields are left
// untouched. Code and discount type are immutable after creation.
type UpdateCouponInput struct {
	DiscountValue    *int
	MinPurchaseCents *int
	MaxDiscountCents *int
	StartsAt         *time.Time
	EndsAt           *time.Time
	UsageLimit       *int
	IsActive         *bool
}

type cartStore interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
}

type service struct {
	repo  *Repository
	carts cartStore
	now   func() time.Time
}

// NewService builds the coupon service.
func NewService(repo *Repository, carts cartStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coupon repository required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	return &service{repo: repo, carts: carts, now: time.Now}, nil
}

// Apply validates the coupon against the user's cart and persists the coupon
// reference with the computed discount. used_count is untouched here; it
// moves only when checkout completes.
func (s *service) Apply(ctx context.Context, userID uuid.UUID, code string) (*models.Cart, error) {
	cart, err := s.requireCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	coupon, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}

	subtotal := cart.SubtotalCents()
	if err := Validate(coupon, subtotal, s.now()); err != nil {
		return nil, err
	}

	cart.CouponID = &coupon.ID
	cart.DiscountCents = DiscountCents(coupon, subtotal)
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply coupon")
	}
	return s.requireCart(ctx, userID)
}

// Remove clears the coupon reference and resets the discount to zero.
func (s *service) Remove(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.requireCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.CouponID = nil
	cart.DiscountCents = 0
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove coupon")
	}
	return s.requireCart(ctx, userID)
}

func (s *service) List(ctx context.Context) ([]models.Coupon, error) {
	coupons, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list coupons")
	}
	return coupons, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	coupon, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}
	return coupon, nil
}

func (s *service) Create(ctx context.Context, input CreateCouponInput) (*models.Coupon, error) {
	if err := validateCouponValues(input.DiscountType, input.DiscountValue, input.MinPurchaseCents, input.MaxDiscountCents, input.UsageLimit); err != nil {
		return nil, err
	}
	code := NormalizeCode(input.Code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	if err := validateWindow(input.StartsAt, input.EndsAt); err != nil {
		return nil, err
	}

	coupon := &models.Coupon{
		Code:             code,
		DiscountType:     input.DiscountType,
		DiscountValue:    input.DiscountValue,
		MinPurchaseCents: input.MinPurchaseCents,
		MaxDiscountCents: input.MaxDiscountCents,
		StartsAt:         input.StartsAt,
		EndsAt:           input.EndsAt,
		UsageLimit:       input.UsageLimit,
		IsActive:         input.IsActive,
	}
	if err := s.repo.Create(ctx, coupon); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "coupon code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create coupon")
	}
	return coupon, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateCouponInput) (*models.Coupon, error) {
	coupon, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.DiscountValue != nil {
		coupon.DiscountValue = *input.DiscountValue
	}
	if input.MinPurchaseCents != nil {
		coupon.MinPurchaseCents = *input.MinPurchaseCents
	}
	if input.MaxDiscountCents != nil {
		coupon.MaxDiscountCents = input.MaxDiscountCents
	}
	if input.StartsAt != nil {
		coupon.StartsAt = input.StartsAt
	}
	if input.EndsAt != nil {
		coupon.EndsAt = input.EndsAt
	}
	if input.UsageLimit != nil {
		coupon.UsageLimit = input.UsageLimit
	}
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}

	if err := validateCouponValues(coupon.DiscountType, coupon.DiscountValue, coupon.MinPurchaseCents, coupon.MaxDiscountCents, coupon.UsageLimit); err != nil {
		return nil, err
	}
	if err := validateWindow(coupon.StartsAt, coupon.EndsAt); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, coupon); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update coupon")
	}
	return coupon, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete coupon")
	}
	return nil
}

func (s *service) requireCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return cart, nil
}

func validateCouponValues(discountType enums.CouponDiscountType, value, minPurchase int, maxDiscount, usageLimit *int) error {
	if !discountType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid discount type")
	}
	if value <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount value must be positive")
	}
	if discountType == enums.CouponDiscountPercentage && value > 100 {
		return pkgerrors.New(pkgerrors.CodeValidation, "percentage discount cannot exceed 100")
	}
	if minPurchase < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "minimum purchase cannot be negative")
	}
	if maxDiscount != nil && *maxDiscount <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "maximum discount must be positive when set")
	}
	if usageLimit != nil && *usageLimit <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "usage limit must be positive when set")
	}
	return nil
}

func validateWindow(startsAt, endsAt *time.Time) error {
	if startsAt != nil && endsAt != nil && endsAt.Before(*startsAt) {
		return pkgerrors.New(pkgerrors.CodeValidation, "coupon window ends before it starts")
	}
	return nil
}
