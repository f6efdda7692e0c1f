// Package outboxrepo stores lifecycle events written by units of work until the relay
// job has published them.
package outboxrepo

import (
	"context"
	"time"

	"bolpurmart/internal/core/domain/model/event"
	"bolpurmart/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// EventDTO is the outbox_events table row.
type EventDTO struct {
	ID          string     `gorm:"type:text;primaryKey"`
	AggregateID string     `gorm:"type:text;not null"`
	Type        string     `gorm:"type:text;not null"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null"`
	CreatedAt   time.Time  `gorm:"not null;index"`
	PublishedAt *time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming.
func (EventDTO) TableName() string {
	return "outbox_events"
}

// FromEvent maps a domain event to its row.
func FromEvent(e event.Event, createdAt time.Time) EventDTO {
	return EventDTO{
		ID:          e.ID.String(),
		AggregateID: e.AggregateID.String(),
		Type:        string(e.Type),
		Payload:     e.Payload,
		OccurredAt:  e.OccurredAt,
		CreatedAt:   createdAt,
	}
}

func (dto EventDTO) toEvent() (event.Event, error) {
	id, err := kernel.IDFromString(dto.ID)
	if err != nil {
		return event.Event{}, err
	}
	aggregateID, err := kernel.IDFromString(dto.AggregateID)
	if err != nil {
		return event.Event{}, err
	}
	return event.Event{
		ID:          id,
		AggregateID: aggregateID,
		Type:        event.Type(dto.Type),
		Payload:     dto.Payload,
		OccurredAt:  dto.OccurredAt,
	}, nil
}

// GormOutboxRepository implements ports.OutboxRepository.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates an outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Append inserts events. It is called by the unit of work inside its transaction.
func (r *GormOutboxRepository) Append(ctx context.Context, events []event.Event, createdAt time.Time) error {
	if len(events) == 0 {
		return nil
	}
	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, FromEvent(e, createdAt))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// ListUnpublished returns the oldest unpublished events first.
func (r *GormOutboxRepository) ListUnpublished(ctx context.Context, limit int) ([]event.Event, error) {
	var dtos []EventDTO
	if err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at, occurred_at, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]event.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := dto.toEvent()
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// MarkPublished sets published_at for the given events.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.ID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}
	return r.db.WithContext(ctx).
		Model(&EventDTO{}).
		Where("id IN ? AND published_at IS NULL", raw).
		Update("published_at", at).Error
}
