package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davidmarquez/tastebite-backend/pkg/config"
	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	pkgerrors "github.com/davidmarquez/tastebite-backend/pkg/errors"
	"github.com/davidmarquez/tastebite-backend/pkg/outbox"
	"github.com/davidmarquez/tastebite-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service exposes the customer, driver, and admin order operations. Every
// lifecycle transition runs against the status state machine and leaves an
// order.status_changed event behind.
type Service interface {
	ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) (OrderPage, error)
	GetMine(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	Cancel(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)

	ListReady(ctx context.Context) ([]models.Order, error)
	ListAssigned(ctx context.Context, driverID uuid.UUID) ([]models.Order, error)
	Claim(ctx context.Context, driverID, orderID uuid.UUID) (*models.Order, error)
	Deliver(ctx context.Context, driverID, orderID uuid.UUID) (*models.Order, error)

	Transition(ctx context.Context, actorID, orderID uuid.UUID, to enums.OrderStatus) (*models.Order, error)
	AdvanceDemoOrders(ctx context.Context, actorID uuid.UUID) (int, error)
}

type service struct {
	tx        txRunner
	repo      *Repository
	publisher outboxEmitter
	flags     config.FeatureFlagsConfig
	now       func() time.Time
}

// NewService builds the orders service.
func NewService(tx txRunner, repo *Repository, publisher outboxEmitter, flags config.FeatureFlagsConfig) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{tx: tx, repo: repo, publisher: publisher, flags: flags, now: time.Now}, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) (OrderPage, error) {
	page, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return OrderPage{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return page, nil
}

func (s *service) GetMine(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// Cancel lets the customer back out while the order is still pending.
func (s *service) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	var cancelled *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByIDForUser(ctx, orderID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if !order.Status.CanTransitionTo(enums.OrderStatusCancelled) {
			return pkgerrors.New(pkgerrors.CodeConflict, "order can no longer be cancelled")
		}

		from := order.Status
		now := s.now()
		order.Status = enums.OrderStatusCancelled
		order.CancelledAt = &now
		if err := repo.UpdateStatus(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel order")
		}
		if err := s.emitStatusChange(ctx, tx, order, from, userID, enums.UserRoleCustomer); err != nil {
			return err
		}
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// ListReady is the driver queue: paid orders waiting for a courier.
func (s *service) ListReady(ctx context.Context) ([]models.Order, error) {
	ready, err := s.repo.ListByStatus(ctx, enums.OrderStatusReady)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ready orders")
	}
	return ready, nil
}

func (s *service) ListAssigned(ctx context.Context, driverID uuid.UUID) ([]models.Order, error) {
	assigned, err := s.repo.ListByDriver(ctx, driverID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assigned orders")
	}
	return assigned, nil
}

// Claim picks up a ready order for the driver. The conditional update makes
// two drivers racing for the same order resolve to a single winner.
func (s *service) Claim(ctx context.Context, driverID, orderID uuid.UUID) (*models.Order, error) {
	var claimed *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ok, err := repo.ClaimForDriver(ctx, orderID, driverID, s.now())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim order")
		}
		if !ok {
			if _, err := repo.FindByID(ctx, orderID); errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.New(pkgerrors.CodeConflict, "order is not available to claim")
		}

		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if err := s.emitStatusChange(ctx, tx, order, enums.OrderStatusReady, driverID, enums.UserRoleDriver); err != nil {
			return err
		}
		claimed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// Deliver completes the trip for the assigned driver.
func (s *service) Deliver(ctx context.Context, driverID, orderID uuid.UUID) (*models.Order, error) {
	var delivered *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.DriverID == nil || *order.DriverID != driverID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		if !order.Status.CanTransitionTo(enums.OrderStatusDelivered) {
			return pkgerrors.New(pkgerrors.CodeConflict, "order cannot be delivered from its current status")
		}

		from := order.Status
		now := s.now()
		order.Status = enums.OrderStatusDelivered
		order.DeliveredAt = &now
		if err := repo.UpdateStatus(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deliver order")
		}
		if err := s.emitStatusChange(ctx, tx, order, from, driverID, enums.UserRoleDriver); err != nil {
			return err
		}
		delivered = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return delivered, nil
}

// Transition is the admin lever for the kitchen-side statuses the customer
// and driver flows never touch.
func (s *service) Transition(ctx context.Context, actorID, orderID uuid.UUID, to enums.OrderStatus) (*models.Order, error) {
	if !to.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if !order.Status.CanTransitionTo(to) {
			return pkgerrors.New(pkgerrors.CodeConflict,
				fmt.Sprintf("order cannot move from %s to %s", order.Status, to))
		}

		from := order.Status
		s.applyStatus(order, to)
		if err := repo.UpdateStatus(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		if err := s.emitStatusChange(ctx, tx, order, from, actorID, enums.UserRoleAdmin); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AdvanceDemoOrders moves every active demo order one lifecycle step. It is
// poll-driven: each invocation advances once, there is no background loop.
func (s *service) AdvanceDemoOrders(ctx context.Context, actorID uuid.UUID) (int, error) {
	if !s.flags.DemoSimulation {
		return 0, pkgerrors.New(pkgerrors.CodeForbidden, "demo simulation is disabled")
	}

	advanced := 0
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		active, err := repo.ListActiveDemo(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list demo orders")
		}
		for i := range active {
			order := &active[i]
			next := order.Status.NextDemoStatus()
			if next == "" {
				continue
			}
			from := order.Status
			s.applyStatus(order, next)
			if err := repo.UpdateStatus(ctx, order); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "advance demo order")
			}
			if err := s.emitStatusChange(ctx, tx, order, from, actorID, enums.UserRoleAdmin); err != nil {
				return err
			}
			advanced++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return advanced, nil
}

// applyStatus sets the status and stamps the matching timestamp column.
func (s *service) applyStatus(order *models.Order, to enums.OrderStatus) {
	now := s.now()
	order.Status = to
	switch to {
	case enums.OrderStatusPickedUp:
		order.PickedUpAt = &now
	case enums.OrderStatusDelivered:
		order.DeliveredAt = &now
	case enums.OrderStatusCancelled:
		order.CancelledAt = &now
	}
}

func (s *service) emitStatusChange(ctx context.Context, tx *gorm.DB, order *models.Order, from enums.OrderStatus, actorID uuid.UUID, role enums.UserRole) error {
	event := outbox.DomainEvent{
		EventType:     enums.OutboxEventOrderStatusChanged,
		AggregateType: enums.OutboxAggregateOrder,
		AggregateID:   order.ID,
		Actor:         &outbox.ActorRef{UserID: actorID, Role: role.String()},
		Data: outbox.OrderStatusChangedData{
			OrderID:    order.ID,
			UserID:     order.UserID,
			FromStatus: from.String(),
			ToStatus:   order.Status.String(),
			DriverID:   order.DriverID,
			ChangedAt:  s.now().UTC(),
		},
		Version: 1,
	}
	if err := s.publisher.Emit(ctx, tx, event); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit status event")
	}
	return nil
}
