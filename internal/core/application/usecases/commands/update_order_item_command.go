package commands

import (
	"errors"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/core/domain/model/order"
	"parceltracker/internal/pkg/guard"
)

var ErrUpdateOrderItemCommandIsNotConstructed = errors.New(
	"UpdateOrderItemCommand must be created via NewUpdateOrderItemCommand constructor",
)

// UpdateOrderItemCommand represents a request to edit a line item: its
// descriptive fields, ordered/received quantities, price and status.
// Quantity-ordered and price edits recompute the order totals; the rest
// never do.
type UpdateOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	userID           kernel.UUID
	itemID           kernel.UUID
	name             string
	tags             []string
	quantityOrdered  int
	quantityReceived int
	pricePerItem     *kernel.Money
	status           order.ItemStatus

	guard guard.ConstructorGuard
}

// NewUpdateOrderItemCommand creates a command carrying the item's full new
// state. Deep field validation stays with the aggregate; the command only
// checks identifiers and obvious range errors.
func NewUpdateOrderItemCommand(
	orderID kernel.UUID,
	userID kernel.UUID,
	itemID kernel.UUID,
	name string,
	tags []string,
	quantityOrdered int,
	quantityReceived int,
	pricePerItem *kernel.Money,
	status order.ItemStatus,
) (UpdateOrderItemCommand, error) {
	cmd := UpdateOrderItemCommand{
		name:             name,
		tags:             tags,
		quantityReceived: quantityReceived,
		pricePerItem:     pricePerItem,
		status:           status,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
		cmd.setItemID(itemID),
		cmd.setQuantityOrdered(quantityOrdered),
	); err != nil {
		return UpdateOrderItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderItemCommandIsNotConstructed)
}

// OrderID returns the identifier of the owning order.
func (c UpdateOrderItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the identifier of the caller.
func (c UpdateOrderItemCommand) UserID() kernel.UUID {
	return c.userID
}

// ItemID returns the identifier of the line item to edit.
func (c UpdateOrderItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Name returns the new display name.
func (c UpdateOrderItemCommand) Name() string {
	return c.name
}

// Tags returns the new classification tags.
func (c UpdateOrderItemCommand) Tags() []string {
	return c.tags
}

// QuantityOrdered returns the new ordered quantity.
func (c UpdateOrderItemCommand) QuantityOrdered() int {
	return c.quantityOrdered
}

// QuantityReceived returns the new received quantity.
func (c UpdateOrderItemCommand) QuantityReceived() int {
	return c.quantityReceived
}

// PricePerItem returns the new unit price, or nil for unknown.
func (c UpdateOrderItemCommand) PricePerItem() *kernel.Money {
	return c.pricePerItem
}

// Status returns the new lifecycle label.
func (c UpdateOrderItemCommand) Status() order.ItemStatus {
	return c.status
}

func (c *UpdateOrderItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderItemCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *UpdateOrderItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *UpdateOrderItemCommand) setQuantityOrdered(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantityOrdered = quantity
	return nil
}
