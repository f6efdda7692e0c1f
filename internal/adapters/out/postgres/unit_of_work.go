// Package postgres provides the GORM-based Unit of Work over the record stores.
//
// A unit of work owns one transaction. Repositories obtained from it run inside that
// transaction, and lifecycle events tracked by the order repository are inserted into
// the outbox by Commit before the transaction commits, so a transition and its event
// are stored together or not at all.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Transition(ctx, o, order.Confirmed); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Each goroutine must use its own UnitOfWork instance.
package postgres

import (
	"context"
	"time"

	"bolpurmart/internal/adapters/out/postgres/earningsrepo"
	"bolpurmart/internal/adapters/out/postgres/orderrepo"
	"bolpurmart/internal/adapters/out/postgres/outboxrepo"
	"bolpurmart/internal/adapters/out/postgres/partnerrepo"
	"bolpurmart/internal/core/domain/model/event"
	"bolpurmart/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    return err
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, now: time.Now}
}

// Create produces a new UnitOfWork with its own transaction state and event buffer.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm is Create returning the concrete type.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:     f.db,
		now:    f.now,
		events: make([]event.Event, 0),
	}
}

// GormUnitOfWork coordinates a database transaction and the outbox events tracked
// during it.
type GormUnitOfWork struct {
	db     *gorm.DB
	tx     *gorm.DB
	now    func() time.Time
	events []event.Event
}

// Begin starts the transaction. Calling Begin on an open unit of work is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit inserts tracked events into the outbox and commits. On any failure the
// transaction is rolled back and the events are dropped.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	tx := uow.tx
	uow.tx = nil
	events := uow.events
	uow.events = uow.events[:0]

	if err := outboxrepo.NewGormOutboxRepository(tx).Append(ctx, events, uow.now()); err != nil {
		_ = tx.Rollback().Error
		return err
	}

	return tx.Commit().Error
}

// Rollback discards the transaction and the tracked events.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.events = uow.events[:0]
	return err
}

// OrderRepository returns an order repository bound to the current transaction, or to
// the pool when no transaction is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// PartnerRepository returns a partner repository bound to the current transaction.
func (uow *GormUnitOfWork) PartnerRepository() ports.PartnerRepository {
	return partnerrepo.NewGormPartnerRepository(uow.conn())
}

// EarningsRepository returns an earnings repository bound to the current transaction.
func (uow *GormUnitOfWork) EarningsRepository() ports.EarningsRepository {
	return earningsrepo.NewGormEarningsRepository(uow.conn())
}

// TrackEvent buffers e until Commit.
func (uow *GormUnitOfWork) TrackEvent(e event.Event) {
	uow.events = append(uow.events, e)
}

// TrackedEvents returns the events buffered so far.
func (uow *GormUnitOfWork) TrackedEvents() []event.Event {
	return append([]event.Event(nil), uow.events...)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
