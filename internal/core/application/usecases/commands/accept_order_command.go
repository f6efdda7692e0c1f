package commands

import (
	"errors"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand claims a confirmed order for a delivery partner.
//
// Example:
//
//	cmd, err := NewAcceptOrderCommand(orderID, identity.PartnerID)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrTransitionRejected) {
//	    // another partner was first
//	}
type AcceptOrderCommand struct {
	orderID   kernel.ID
	partnerID kernel.ID

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a command to accept orderID on behalf of partnerID.
func NewAcceptOrderCommand(orderID, partnerID kernel.ID) (AcceptOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), partnerID.Validate()); err != nil {
		return AcceptOrderCommand{}, err
	}
	return AcceptOrderCommand{
		orderID:   orderID,
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) OrderID() kernel.ID { return c.orderID }
func (c AcceptOrderCommand) PartnerID() kernel.ID { return c.partnerID }
