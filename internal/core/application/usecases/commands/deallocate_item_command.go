package commands

import (
	"errors"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/pkg/guard"
)

var ErrDeallocateItemCommandIsNotConstructed = errors.New(
	"DeallocateItemCommand must be created via NewDeallocateItemCommand constructor",
)

// DeallocateItemCommand represents a request to take an order item out of a
// parcel entirely, freeing its quantity for other parcels.
type DeallocateItemCommand struct { //nolint:recvcheck //using for validation
	userID      kernel.UUID
	parcelID    kernel.UUID
	orderItemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeallocateItemCommand creates a command to remove a (parcel, item)
// ledger row.
func NewDeallocateItemCommand(userID, parcelID, orderItemID kernel.UUID) (DeallocateItemCommand, error) {
	cmd := DeallocateItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setParcelID(parcelID),
		cmd.setOrderItemID(orderItemID),
	); err != nil {
		return DeallocateItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeallocateItemCommand) Validate() error {
	return c.guard.Validate(ErrDeallocateItemCommandIsNotConstructed)
}

// UserID returns the identifier of the caller.
func (c DeallocateItemCommand) UserID() kernel.UUID {
	return c.userID
}

// ParcelID returns the identifier of the parcel to take the item out of.
func (c DeallocateItemCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// OrderItemID returns the identifier of the item being taken out.
func (c DeallocateItemCommand) OrderItemID() kernel.UUID {
	return c.orderItemID
}

func (c *DeallocateItemCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *DeallocateItemCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *DeallocateItemCommand) setOrderItemID(orderItemID kernel.UUID) error {
	if err := orderItemID.Validate(); err != nil {
		return err
	}

	c.orderItemID = orderItemID
	return nil
}
