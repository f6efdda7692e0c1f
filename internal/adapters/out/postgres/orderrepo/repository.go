package orderrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bolpurmart/internal/core/domain/model/event"
	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/order"
	"bolpurmart/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker eventTracker
}

// eventTracker collects the lifecycle events of a unit of work.
type eventTracker interface {
	TrackEvent(e event.Event)
}

var operations = map[event.Type]string{
	event.OrderAccepted:  order.OpAccept,
	event.OrderDeclined:  order.OpDecline,
	event.OrderPickedUp:  order.OpPickUp,
	event.OrderDelivered: order.OpDeliver,
	event.OrderArchived:  order.OpArchive,
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker eventTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Transition writes the lifecycle columns with a single UPDATE guarded by the expected
// status. Archived rows never match, so of two concurrent archive runs only one writes
// and tracks an event. When the guard fails the current status is read back for the error.
func (r *GormOrderRepository) Transition(ctx context.Context, aggregate *order.Order, from order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	typ, err := event.TypeFor(from, aggregate)
	if err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND archived_at IS NULL", dto.ID, string(from)).
		Updates(lifecycleColumns(dto))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.rejected(ctx, operations[typ], aggregate.ID())
	}

	occurredAt := aggregate.UpdatedAt()
	if typ == event.OrderArchived {
		occurredAt = *aggregate.ArchivedAt()
	}
	evt, err := event.NewOrderEvent(typ, aggregate, occurredAt)
	if err != nil {
		return err
	}
	r.tracker.TrackEvent(evt)

	return nil
}

// ListArchivable returns delivered, unarchived orders delivered before cutoff.
func (r *GormOrderRepository) ListArchivable(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("status = ? AND archived_at IS NULL AND delivery_time < ?", string(order.Delivered), cutoff).
		Order("delivery_time").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// ListConfirmed returns unclaimed orders, newest first.
func (r *GormOrderRepository) ListConfirmed(ctx context.Context, limit int) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(order.Confirmed)).
		Order("created_at DESC, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) rejected(ctx context.Context, op string, id kernel.ID) error {
	var current string
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("status").
		Where("id = ?", id.String()).
		Row().
		Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	if err != nil {
		return err
	}

	return errs.NewTransitionRejectedError(op, id.String(), order.Status(current).String())
}
