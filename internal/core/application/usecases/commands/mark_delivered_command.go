package commands

import (
	"errors"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand completes an order on behalf of its assigned partner.
type MarkDeliveredCommand struct {
	orderID   kernel.ID
	partnerID kernel.ID

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates a command to deliver orderID by partnerID.
func NewMarkDeliveredCommand(orderID, partnerID kernel.ID) (MarkDeliveredCommand, error) {
	if err := errors.Join(orderID.Validate(), partnerID.Validate()); err != nil {
		return MarkDeliveredCommand{}, err
	}
	return MarkDeliveredCommand{
		orderID:   orderID,
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

func (c MarkDeliveredCommand) OrderID() kernel.ID { return c.orderID }
func (c MarkDeliveredCommand) PartnerID() kernel.ID { return c.partnerID }
