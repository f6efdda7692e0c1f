package commands

import (
	"errors"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/pkg/guard"
)

var ErrMarkPickedUpCommandIsNotConstructed = errors.New(
	"MarkPickedUpCommand must be created via NewMarkPickedUpCommand constructor",
)

// MarkPickedUpCommand records that an accepted order was collected.
type MarkPickedUpCommand struct {
	orderID kernel.ID

	guard guard.ConstructorGuard
}

// NewMarkPickedUpCommand creates a command to mark orderID picked up.
func NewMarkPickedUpCommand(orderID kernel.ID) (MarkPickedUpCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkPickedUpCommand{}, err
	}
	return MarkPickedUpCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkPickedUpCommand) Validate() error {
	return c.guard.Validate(ErrMarkPickedUpCommandIsNotConstructed)
}

func (c MarkPickedUpCommand) OrderID() kernel.ID { return c.orderID }
