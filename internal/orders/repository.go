package orders

import (
	"context"
	"strings"
	"time"

	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	"github.com/davidmarquez/tastebite-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository wires together the order persistence helpers.
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

// Create inserts the order together with its items.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByID loads one order with its items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDForUser loads one order scoped to its owner.
func (r *Repository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderPage is one cursor page of orders.
type OrderPage struct {
	Orders     []models.Order
	NextCursor string
}

// ListByUser returns the user's orders newest first, cursor paginated.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) (OrderPage, error) {
	normalizedLimit := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(params.Cursor))
	if err != nil {
		return OrderPage{}, err
	}

	query := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID)
	if decodedCursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var records []models.Order
	err = query.Order("created_at DESC").Order("id DESC").
		Limit(limitWithBuffer).
		Find(&records).Error
	if err != nil {
		return OrderPage{}, err
	}

	page := OrderPage{Orders: records}
	if len(records) > normalizedLimit {
		page.Orders = records[:normalizedLimit]
		last := page.Orders[len(page.Orders)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return page, nil
}

// ListByStatus returns orders in the given status, oldest first. The driver
// queue reads the ready status through this.
func (r *Repository) ListByStatus(ctx context.Context, status enums.OrderStatus) ([]models.Order, error) {
	var records []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListByDriver returns the driver's claimed orders, newest first.
func (r *Repository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]models.Order, error) {
	var records []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("driver_id = ?", driverID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListActiveDemo returns demo orders that have not reached a terminal status.
func (r *Repository) ListActiveDemo(ctx context.Context) ([]models.Order, error) {
	var records []models.Order
	err := r.db.WithContext(ctx).
		Where("is_demo = ?", true).
		Where("status NOT IN ?", []enums.OrderStatus{enums.OrderStatusDelivered, enums.OrderStatusCancelled}).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateStatus persists one lifecycle transition. The driver reference and
// the timestamp columns move together with the status.
func (r *Repository) UpdateStatus(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":       order.Status,
			"driver_id":    order.DriverID,
			"picked_up_at": order.PickedUpAt,
			"delivered_at": order.DeliveredAt,
			"cancelled_at": order.CancelledAt,
		}).Error
}

// ClaimForDriver atomically moves a ready, unclaimed order to picked_up with
// the driver assigned. Zero rows affected means another driver got there
// first or the order left the ready status.
func (r *Repository) ClaimForDriver(ctx context.Context, orderID, driverID uuid.UUID, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ? AND driver_id IS NULL", orderID, enums.OrderStatusReady).
		Updates(map[string]any{
			"status":       enums.OrderStatusPickedUp,
			"driver_id":    driverID,
			"picked_up_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
