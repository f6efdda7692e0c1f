package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/pkg/errs"

	"gorm.io/gorm"
)

func partnerApproved(ctx context.Context, db *gorm.DB, partnerID kernel.ID) (bool, error) {
	var approved bool
	err := db.WithContext(ctx).
		Raw(`SELECT admin_approved FROM delivery_partners WHERE id = ?`, partnerID.String()).
		Row().
		Scan(&approved)
	if errors.Is(err, sql.ErrNoRows) {
		return false, profileNotFound(partnerID)
	}
	if err != nil {
		return false, err
	}
	return approved, nil
}

func profileNotFound(partnerID kernel.ID) error {
	return fmt.Errorf("%w: %s", errs.ErrProfileNotFound, partnerID)
}
