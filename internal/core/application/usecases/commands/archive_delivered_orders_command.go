package commands

import (
	"errors"
	"time"

	"bolpurmart/internal/pkg/errs"
	"bolpurmart/internal/pkg/guard"
)

var ErrArchiveDeliveredOrdersCommandIsNotConstructed = errors.New(
	"ArchiveDeliveredOrdersCommand must be created via NewArchiveDeliveredOrdersCommand constructor",
)

// ArchiveDeliveredOrdersCommand archives delivered orders older than a retention period.
type ArchiveDeliveredOrdersCommand struct {
	retention time.Duration
	batchSize int

	guard guard.ConstructorGuard
}

// NewArchiveDeliveredOrdersCommand archives at most batchSize orders delivered more than
// retention ago.
func NewArchiveDeliveredOrdersCommand(retention time.Duration, batchSize int) (ArchiveDeliveredOrdersCommand, error) {
	if retention < 0 {
		return ArchiveDeliveredOrdersCommand{}, errs.NewValueIsInvalidError("retention")
	}
	if batchSize <= 0 {
		return ArchiveDeliveredOrdersCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded")
	}
	return ArchiveDeliveredOrdersCommand{
		retention: retention,
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ArchiveDeliveredOrdersCommand) Validate() error {
	return c.guard.Validate(ErrArchiveDeliveredOrdersCommandIsNotConstructed)
}

func (c ArchiveDeliveredOrdersCommand) Retention() time.Duration { return c.retention }
func (c ArchiveDeliveredOrdersCommand) BatchSize() int { return c.batchSize }
