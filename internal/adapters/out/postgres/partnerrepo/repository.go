package partnerrepo

import (
	"context"
	"errors"
	"time"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/partner"
	"bolpurmart/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPartnerRepository implements ports.PartnerRepository using GORM.
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewGormPartnerRepository creates a new GORM partner repository.
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// Add saves a new partner to the database.
func (r *GormPartnerRepository) Add(ctx context.Context, aggregate *partner.Partner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a partner by ID.
func (r *GormPartnerRepository) Get(ctx context.Context, id kernel.ID) (*partner.Partner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PartnerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery partner", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Merge updates only the columns carried by patch.
func (r *GormPartnerRepository) Merge(ctx context.Context, id kernel.ID, patch partner.Patch, now time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if patch.IsEmpty() {
		return errs.NewValueIsRequiredError("patch")
	}

	return r.update(ctx, id, patchColumns(patch, now))
}

// AddDeviceToken appends token unless the set already holds it.
func (r *GormPartnerRepository) AddDeviceToken(ctx context.Context, id kernel.ID, token string, now time.Time) error {
	token, err := partner.NormalizeDeviceToken(token)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&PartnerDTO{}).
		Where("id = ? AND NOT (device_tokens @> ARRAY[?]::text[])", id.String(), token).
		Updates(map[string]any{
			"device_tokens": gorm.Expr("array_append(device_tokens, ?)", token),
			"updated_at":    now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Either the token is already registered or the partner does not exist.
	var count int64
	if err = r.db.WithContext(ctx).Model(&PartnerDTO{}).Where("id = ?", id.String()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("delivery partner", id.String())
	}
	return nil
}

// IncrementDeliveries adds one to total_deliveries.
func (r *GormPartnerRepository) IncrementDeliveries(ctx context.Context, id kernel.ID, now time.Time) error {
	return r.update(ctx, id, map[string]any{
		"total_deliveries": gorm.Expr("total_deliveries + 1"),
		"updated_at":       now,
	})
}

// ListNotifiable returns approved, online partners with at least one device token.
func (r *GormPartnerRepository) ListNotifiable(ctx context.Context) ([]*partner.Partner, error) {
	var dtos []PartnerDTO
	if err := r.db.WithContext(ctx).
		Where("admin_approved AND status = ? AND cardinality(device_tokens) > 0", string(partner.Online)).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	partners := make([]*partner.Partner, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}

	return partners, nil
}

func (r *GormPartnerRepository) update(ctx context.Context, id kernel.ID, columns map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&PartnerDTO{}).
		Where("id = ?", id.String()).
		Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery partner", id.String())
	}
	return nil
}
