package ports

import (
	"context"

	"bolpurmart/internal/core/domain/model/earnings"
)

// EarningsRepository appends earnings. Earnings are read through queries.
type EarningsRepository interface {
	Add(ctx context.Context, e *earnings.Earning) error
}
