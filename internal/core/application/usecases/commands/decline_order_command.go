package commands

import (
	"errors"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/pkg/guard"
)

var ErrDeclineOrderCommandIsNotConstructed = errors.New(
	"DeclineOrderCommand must be created via NewDeclineOrderCommand constructor",
)

// DeclineOrderCommand removes an order from the available list.
// No caller identity is carried: any partner may decline any confirmed or accepted order.
type DeclineOrderCommand struct {
	orderID kernel.ID

	guard guard.ConstructorGuard
}

// NewDeclineOrderCommand creates a command to decline orderID.
func NewDeclineOrderCommand(orderID kernel.ID) (DeclineOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DeclineOrderCommand{}, err
	}
	return DeclineOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeclineOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeclineOrderCommandIsNotConstructed)
}

func (c DeclineOrderCommand) OrderID() kernel.ID { return c.orderID }
