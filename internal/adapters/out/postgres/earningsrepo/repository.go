// Package earningsrepo appends earnings rows. Reads go through the queries package.
package earningsrepo

import (
	"context"
	"time"

	"bolpurmart/internal/core/domain/model/earnings"

	"gorm.io/gorm"
)

// EarningDTO is the earnings table row. Amount is in paise.
type EarningDTO struct {
	ID        string    `gorm:"type:text;primaryKey"`
	PartnerID string    `gorm:"type:text;not null;index:idx_earnings_partner_date,priority:1"`
	OrderID   string    `gorm:"type:text;not null;uniqueIndex"`
	Amount    int64     `gorm:"not null"`
	Date      time.Time `gorm:"not null;index:idx_earnings_partner_date,priority:2"`
}

// TableName overrides GORM's default naming.
func (EarningDTO) TableName() string {
	return "earnings"
}

// GormEarningsRepository implements ports.EarningsRepository.
type GormEarningsRepository struct {
	db *gorm.DB
}

// NewGormEarningsRepository creates a new GORM earnings repository.
func NewGormEarningsRepository(db *gorm.DB) *GormEarningsRepository {
	return &GormEarningsRepository{db: db}
}

// Add inserts e. An order earns at most once; a second insert for the same order fails
// on the unique index.
func (r *GormEarningsRepository) Add(ctx context.Context, e *earnings.Earning) error {
	if err := e.Validate(); err != nil {
		return err
	}

	dto := EarningDTO{
		ID:        e.ID().String(),
		PartnerID: e.PartnerID().String(),
		OrderID:   e.OrderID().String(),
		Amount:    e.Amount().Paise(),
		Date:      e.Date(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}
