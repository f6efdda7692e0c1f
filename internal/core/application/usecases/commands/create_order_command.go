package commands

import (
	"errors"
	"strings"

	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/pkg/errs"
	"bolpurmart/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrAddressIsRequired = errs.NewValueIsRequiredError("customer address")
)

// CreateOrderCommand inserts a confirmed order the way the external ordering system
// does. It is used by the seed command.
//
// Example:
//
//	fee, _ := kernel.Rupees(30)
//	cmd, err := NewCreateOrderCommand(kernel.NewID(), "9876543210", "Bolpur Station Road", &fee)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.ID
	customerPhone   string
	customerAddress string
	deliveryFee     *kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a confirmed order.
func NewCreateOrderCommand(
	orderID kernel.ID,
	customerPhone, customerAddress string,
	deliveryFee *kernel.Money,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		deliveryFee: deliveryFee,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerPhone(customerPhone),
		orderCommand.setCustomerAddress(customerAddress),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.ID { return c.orderID }
func (c CreateOrderCommand) CustomerPhone() string { return c.customerPhone }
func (c CreateOrderCommand) CustomerAddress() string { return c.customerAddress }
func (c CreateOrderCommand) DeliveryFee() *kernel.Money { return c.deliveryFee }

func (c *CreateOrderCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerPhone(phone string) error {
	p, err := kernel.NewPhone(phone)
	if err != nil {
		return err
	}

	c.customerPhone = p.String()
	return nil
}

func (c *CreateOrderCommand) setCustomerAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return ErrAddressIsRequired
	}

	c.customerAddress = address
	return nil
}
