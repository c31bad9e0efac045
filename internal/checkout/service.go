package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davidmarquez/tastebite-backend/internal/cart"
	"github.com/davidmarquez/tastebite-backend/internal/catalog"
	"github.com/davidmarquez/tastebite-backend/internal/coupons"
	"github.com/davidmarquez/tastebite-backend/internal/orders"
	"github.com/davidmarquez/tastebite-backend/internal/restaurants"
	"github.com/davidmarquez/tastebite-backend/internal/users"
	"github.com/davidmarquez/tastebite-backend/pkg/config"
	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	pkgerrors "github.com/davidmarquez/tastebite-backend/pkg/errors"
	"github.com/davidmarquez/tastebite-backend/pkg/outbox"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service turns a cart into an immutable order.
type Service interface {
	Summary(ctx context.Context, userID uuid.UUID) (*Summary, error)
	Complete(ctx context.Context, userID uuid.UUID, input CompleteInput) (*models.Order, error)
}

// CompleteInput captures what the customer decides at the moment of purchase.
type CompleteInput struct {
	PaymentMethod enums.PaymentMethod
	TipCents      int
	IsDemo        bool
}

// Summary is the pre-purchase review of the cart with resolved fulfillment.
type Summary struct {
	Cart             *models.Cart
	Fulfillment      enums.FulfillmentKind
	DeliveryAddress  *string
	Restaurant       *models.Restaurant
	SubtotalCents    int
	DiscountCents    int
	DeliveryFeeCents int
	TotalCents       int
}

type service struct {
	tx          txRunner
	carts       *cart.Repository
	coupons     *coupons.Repository
	orders      *orders.Repository
	catalog     *catalog.Repository
	users       *users.Repository
	restaurants *restaurants.Repository
	publisher   outboxEmitter
	pricing     config.CheckoutConfig
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	cartRepo *cart.Repository,
	couponRepo *coupons.Repository,
	orderRepo *orders.Repository,
	catalogRepo *catalog.Repository,
	userRepo *users.Repository,
	restaurantRepo *restaurants.Repository,
	publisher outboxEmitter,
	pricing config.CheckoutConfig,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if couponRepo == nil {
		return nil, fmt.Errorf("coupon repository required")
	}
	if orderRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog loader required")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if restaurantRepo == nil {
		return nil, fmt.Errorf("restaurants repository required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{
		tx:          tx,
		carts:       cartRepo,
		coupons:     couponRepo,
		orders:      orderRepo,
		catalog:     catalogRepo,
		users:       userRepo,
		restaurants: restaurantRepo,
		publisher:   publisher,
		pricing:     pricing,
	}, nil
}

// Summary resolves the fulfillment target and totals without writing
// anything. The tip is unknown here; it arrives with Complete.
func (s *service) Summary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	record, err := s.requireCartWithItems(ctx, s.carts, userID)
	if err != nil {
		return nil, err
	}
	target, err := s.resolveTarget(ctx, s.users, s.restaurants, userID, record)
	if err != nil {
		return nil, err
	}

	subtotal := record.SubtotalCents()
	discount := clampDiscount(record.DiscountCents, subtotal)
	summary := &Summary{
		Cart:             record,
		Fulfillment:      target.fulfillment,
		DeliveryAddress:  target.deliveryAddress,
		Restaurant:       target.restaurant,
		SubtotalCents:    subtotal,
		DiscountCents:    discount,
		DeliveryFeeCents: target.deliveryFeeCents,
	}
	summary.TotalCents = subtotal - discount + target.deliveryFeeCents
	return summary, nil
}

// clampDiscount caps a cart discount at the current subtotal. The cached
// discount can exceed it when items were removed after the coupon was applied.
func clampDiscount(discount, subtotal int) int {
	if discount > subtotal {
		return subtotal
	}
	if discount < 0 {
		return 0
	}
	return discount
}

// Complete runs the entire order write in one transaction. Any failure rolls
// back every step, the coupon counter included.
func (s *service) Complete(ctx context.Context, userID uuid.UUID, input CompleteInput) (*models.Order, error) {
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if input.TipCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tip cannot be negative")
	}

	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.carts.WithTx(tx)
		couponRepo := s.coupons.WithTx(tx)
		orderRepo := s.orders.WithTx(tx)

		record, err := s.requireCartWithItems(ctx, cartRepo, userID)
		if err != nil {
			return err
		}
		target, err := s.resolveTarget(ctx, s.users.WithTx(tx), s.restaurants.WithTx(tx), userID, record)
		if err != nil {
			return err
		}

		items, err := s.freezeItems(ctx, s.catalog.WithTx(tx), record.Items)
		if err != nil {
			return err
		}

		var couponCode *string
		if record.CouponID != nil {
			coupon, err := couponRepo.FindByID(ctx, *record.CouponID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeValidation, "applied coupon no longer exists")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
			}
			if err := couponRepo.IncrementUsage(ctx, coupon.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment coupon usage")
			}
			couponCode = &coupon.Code
		}

		subtotal := record.SubtotalCents()
		discount := clampDiscount(record.DiscountCents, subtotal)
		order := &models.Order{
			UserID:           userID,
			Status:           enums.OrderStatusPending,
			Fulfillment:      target.fulfillment,
			SubtotalCents:    subtotal,
			DiscountCents:    discount,
			DeliveryFeeCents: target.deliveryFeeCents,
			TipCents:         input.TipCents,
			TotalCents:       subtotal - discount + target.deliveryFeeCents + input.TipCents,
			PaymentMethod:    input.PaymentMethod,
			CouponID:         record.CouponID,
			DeliveryAddress:  target.deliveryAddress,
			RestaurantID:     record.RestaurantID,
			IsDemo:           input.IsDemo,
			Items:            items,
		}
		if target.restaurant != nil {
			order.RestaurantName = &target.restaurant.Name
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		if err := cartRepo.DeleteItems(ctx, record.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart items")
		}
		if err := cartRepo.Delete(ctx, record.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart")
		}

		event := outbox.DomainEvent{
			EventType:     enums.OutboxEventOrderCreated,
			AggregateType: enums.OutboxAggregateOrder,
			AggregateID:   order.ID,
			Actor:         &outbox.ActorRef{UserID: userID, Role: enums.UserRoleCustomer.String()},
			Data: outbox.OrderCreatedData{
				OrderID:       order.ID,
				UserID:        userID,
				Fulfillment:   order.Fulfillment.String(),
				PaymentMethod: order.PaymentMethod.String(),
				SubtotalCents: order.SubtotalCents,
				DiscountCents: order.DiscountCents,
				TotalCents:    order.TotalCents,
				CouponCode:    couponCode,
				ItemCount:     len(items),
				PlacedAt:      time.Now().UTC(),
			},
			Version: 1,
		}
		if err := s.publisher.Emit(ctx, tx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit order event")
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

type fulfillmentTarget struct {
	fulfillment      enums.FulfillmentKind
	deliveryAddress  *string
	restaurant       *models.Restaurant
	deliveryFeeCents int
}

// resolveTarget applies the precedence rule: a restaurant pinned on the cart
// wins and means pickup, otherwise the profile address makes it a delivery.
func (s *service) resolveTarget(ctx context.Context, userRepo *users.Repository, restaurantRepo *restaurants.Repository, userID uuid.UUID, record *models.Cart) (*fulfillmentTarget, error) {
	if record.RestaurantID != nil {
		restaurant, err := restaurantRepo.FindRestaurantByID(ctx, *record.RestaurantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "selected restaurant no longer exists")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
		}
		return &fulfillmentTarget{
			fulfillment: enums.FulfillmentPickup,
			restaurant:  restaurant,
		}, nil
	}

	user, err := userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if !user.HasAddress() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no delivery address on profile")
	}
	return &fulfillmentTarget{
		fulfillment:      enums.FulfillmentDelivery,
		deliveryAddress:  user.AddressLine,
		deliveryFeeCents: s.pricing.DeliveryFeeCents,
	}, nil
}

// freezeItems copies cart lines into order lines with display names re-read
// from the catalog at purchase time. Combo completeness is enforced here.
func (s *service) freezeItems(ctx context.Context, catalogRepo *catalog.Repository, cartItems []models.CartItem) ([]models.OrderItem, error) {
	productCache := map[uuid.UUID]*models.Product{}
	frozen := make([]models.OrderItem, 0, len(cartItems))

	for _, item := range cartItems {
		product, ok := productCache[item.ProductID]
		if !ok {
			loaded, err := catalogRepo.FindProductByID(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, pkgerrors.New(pkgerrors.CodeValidation, "product no longer available")
				}
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
			}
			product = loaded
			productCache[item.ProductID] = product
		}
		if product.IsCombo && (item.SideID == nil || item.DrinkID == nil) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("combo %q requires a side and a drink", product.Name))
		}

		line := models.OrderItem{
			ProductID:       item.ProductID,
			ProductName:     product.Name,
			Quantity:        item.Quantity,
			UnitPriceCents:  item.UnitPriceCents,
			TotalPriceCents: item.TotalPriceCents,
			Customizations:  item.Customizations,
		}

		if item.SizeID != nil {
			name, found := sizeName(product, *item.SizeID)
			if !found {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "selected size no longer available")
			}
			line.SizeName = &name
		}
		if item.SideID != nil {
			side, err := catalogRepo.FindSideByID(ctx, *item.SideID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, pkgerrors.New(pkgerrors.CodeValidation, "selected side no longer available")
				}
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load side")
			}
			line.SideName = &side.Name
		}
		if item.DrinkID != nil {
			drink, err := catalogRepo.FindDrinkByID(ctx, *item.DrinkID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, pkgerrors.New(pkgerrors.CodeValidation, "selected drink no longer available")
				}
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load drink")
			}
			line.DrinkName = &drink.Name
		}

		frozen = append(frozen, line)
	}
	return frozen, nil
}

func (s *service) requireCartWithItems(ctx context.Context, repo *cart.Repository, userID uuid.UUID) (*models.Cart, error) {
	record, err := repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if len(record.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
	}
	return record, nil
}

func sizeName(product *models.Product, sizeID uuid.UUID) (string, bool) {
	for _, size := range product.Sizes {
		if size.ID == sizeID {
			return size.Name, true
		}
	}
	return "", false
}
