package commands

import (
	"errors"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/pkg/guard"
)

var ErrAllocateItemCommandIsNotConstructed = errors.New(
	"AllocateItemCommand must be created via NewAllocateItemCommand constructor",
)

// AllocateItemCommand represents a request to place a quantity of an order
// item into a parcel. The quantity is the new absolute value for the
// (parcel, item) pair, not an increment: repeating the same request is a
// no-op, and a different quantity replaces the previous one.
//
// Example:
//
//	cmd, err := NewAllocateItemCommand(userID, parcelID, orderItemID, 2)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewAllocateItemCommandHandler(uowFactory)
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidQuantity) {
//	    // the item's parcels already hold too many units
//	}
type AllocateItemCommand struct { //nolint:recvcheck //using for validation
	userID      kernel.UUID
	parcelID    kernel.UUID
	orderItemID kernel.UUID
	quantity    int

	guard guard.ConstructorGuard
}

// NewAllocateItemCommand creates a command to allocate item units to a
// parcel. The quantity must be positive; freeing a pair entirely is the
// deallocate command's job.
func NewAllocateItemCommand(
	userID kernel.UUID,
	parcelID kernel.UUID,
	orderItemID kernel.UUID,
	quantity int,
) (AllocateItemCommand, error) {
	cmd := AllocateItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setParcelID(parcelID),
		cmd.setOrderItemID(orderItemID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AllocateItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AllocateItemCommand) Validate() error {
	return c.guard.Validate(ErrAllocateItemCommandIsNotConstructed)
}

// UserID returns the identifier of the caller.
func (c AllocateItemCommand) UserID() kernel.UUID {
	return c.userID
}

// ParcelID returns the identifier of the target parcel.
func (c AllocateItemCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// OrderItemID returns the identifier of the item being placed.
func (c AllocateItemCommand) OrderItemID() kernel.UUID {
	return c.orderItemID
}

// Quantity returns the absolute unit count for the pair.
func (c AllocateItemCommand) Quantity() int {
	return c.quantity
}

func (c *AllocateItemCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *AllocateItemCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *AllocateItemCommand) setOrderItemID(orderItemID kernel.UUID) error {
	if err := orderItemID.Validate(); err != nil {
		return err
	}

	c.orderItemID = orderItemID
	return nil
}

func (c *AllocateItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}
