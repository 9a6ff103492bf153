package commands

import (
	"errors"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/core/domain/model/order"
	"parceltracker/internal/pkg/guard"
)

var (
	ErrAddOrderItemCommandIsNotConstructed = errors.New(
		"AddOrderItemCommand must be created via NewAddOrderItemCommand constructor",
	)
	ErrItemNameIsRequired = errors.New("item name is required")
	ErrQuantityIsInvalid  = errors.New("quantity must be greater than 0")
)

// AddOrderItemCommand represents a request to attach a new line item to an
// order. Attaching an item recomputes the order totals.
//
// Example:
//
//	price, _ := kernel.NewMoneyFromString("19.99")
//	cmd, err := NewAddOrderItemCommand(
//	    orderID, userID, kernel.NewUUID(),
//	    "USB-C cable 2m", []string{"electronics"}, 3, &price, "",
//	)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewAddOrderItemCommandHandler(uowFactory)
//	err = handler.Handle(ctx, cmd)
type AddOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	userID          kernel.UUID
	itemID          kernel.UUID
	name            string
	tags            []string
	quantityOrdered int
	pricePerItem    *kernel.Money
	status          order.ItemStatus

	guard guard.ConstructorGuard
}

// NewAddOrderItemCommand creates a command to attach a line item.
// pricePerItem may be nil (price not yet known); an empty status defaults
// inside the aggregate.
func NewAddOrderItemCommand(
	orderID kernel.UUID,
	userID kernel.UUID,
	itemID kernel.UUID,
	name string,
	tags []string,
	quantityOrdered int,
	pricePerItem *kernel.Money,
	status order.ItemStatus,
) (AddOrderItemCommand, error) {
	cmd := AddOrderItemCommand{
		tags:         tags,
		pricePerItem: pricePerItem,
		status:       status,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
		cmd.setItemID(itemID),
		cmd.setName(name),
		cmd.setQuantityOrdered(quantityOrdered),
	); err != nil {
		return AddOrderItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderItemCommandIsNotConstructed)
}

// OrderID returns the identifier of the target order.
func (c AddOrderItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the identifier of the caller.
func (c AddOrderItemCommand) UserID() kernel.UUID {
	return c.userID
}

// ItemID returns the identifier for the new line item.
func (c AddOrderItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Name returns the item's display name.
func (c AddOrderItemCommand) Name() string {
	return c.name
}

// Tags returns the item's classification tags.
func (c AddOrderItemCommand) Tags() []string {
	return c.tags
}

// QuantityOrdered returns how many units were ordered.
func (c AddOrderItemCommand) QuantityOrdered() int {
	return c.quantityOrdered
}

// PricePerItem returns the unit price, or nil when unknown.
func (c AddOrderItemCommand) PricePerItem() *kernel.Money {
	return c.pricePerItem
}

// Status returns the initial lifecycle label, possibly empty.
func (c AddOrderItemCommand) Status() order.ItemStatus {
	return c.status
}

func (c *AddOrderItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddOrderItemCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *AddOrderItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *AddOrderItemCommand) setName(name string) error {
	if name == "" {
		return ErrItemNameIsRequired
	}

	c.name = name
	return nil
}

func (c *AddOrderItemCommand) setQuantityOrdered(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantityOrdered = quantity
	return nil
}
