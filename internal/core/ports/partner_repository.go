package ports

import (
	"context"
	"time"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/partner"
)

// PartnerRepository defines the persistence contract for partner records.
// Writes other than Add are merges: they touch only the columns they name.
type PartnerRepository interface {
	// Add persists the record created at signup.
	Add(ctx context.Context, aggregate *partner.Partner) error

	// Get retrieves a partner by identifier.
	// Returns errs.ObjectNotFoundError if no such partner exists.
	Get(ctx context.Context, id kernel.ID) (*partner.Partner, error)

	// Merge writes the fields carried by patch without reading the record first.
	// Returns errs.ObjectNotFoundError if no such partner exists.
	Merge(ctx context.Context, id kernel.ID, patch partner.Patch, now time.Time) error

	// AddDeviceToken adds token to the partner's device token set. Adding a token that
	// is already present is not an error.
	AddDeviceToken(ctx context.Context, id kernel.ID, token string, now time.Time) error

	// IncrementDeliveries adds one to the partner's delivered orders counter.
	IncrementDeliveries(ctx context.Context, id kernel.ID, now time.Time) error

	// ListNotifiable returns approved, online partners that have device tokens.
	ListNotifiable(ctx context.Context) ([]*partner.Partner, error)
}
