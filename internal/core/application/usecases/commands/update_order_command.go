package commands

import (
	"errors"
	"time"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand represents a request to edit an order's descriptive
// fields and its shipping/customs costs. Cost edits recompute the order
// totals; descriptive edits never do.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	userID            kernel.UUID
	platform          string
	externalNumber    string
	orderDate         time.Time
	protectionEndDate *time.Time
	comment           string
	shippingCost      *kernel.Money
	customsCost       *kernel.Money
	archived          bool

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to edit an order. The full new
// state of the editable fields is supplied; nil costs clear the stored ones.
func NewUpdateOrderCommand(
	orderID kernel.UUID,
	userID kernel.UUID,
	platform string,
	externalNumber string,
	orderDate time.Time,
	protectionEndDate *time.Time,
	comment string,
	shippingCost *kernel.Money,
	customsCost *kernel.Money,
	archived bool,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		platform:          platform,
		externalNumber:    externalNumber,
		orderDate:         orderDate,
		protectionEndDate: protectionEndDate,
		comment:           comment,
		shippingCost:      shippingCost,
		customsCost:       customsCost,
		archived:          archived,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to edit.
func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the identifier of the caller, checked against the owner.
func (c UpdateOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// Platform returns the new merchant platform identifier.
func (c UpdateOrderCommand) Platform() string {
	return c.platform
}

// ExternalNumber returns the new merchant order number.
func (c UpdateOrderCommand) ExternalNumber() string {
	return c.externalNumber
}

// OrderDate returns the new purchase date.
func (c UpdateOrderCommand) OrderDate() time.Time {
	return c.orderDate
}

// ProtectionEndDate returns the new buyer-protection deadline, or nil.
func (c UpdateOrderCommand) ProtectionEndDate() *time.Time {
	return c.protectionEndDate
}

// Comment returns the new free-form note.
func (c UpdateOrderCommand) Comment() string {
	return c.comment
}

// ShippingCost returns the new shipping cost, or nil to clear it.
func (c UpdateOrderCommand) ShippingCost() *kernel.Money {
	return c.shippingCost
}

// CustomsCost returns the new customs cost, or nil to clear it.
func (c UpdateOrderCommand) CustomsCost() *kernel.Money {
	return c.customsCost
}

// Archived returns the new archive flag.
func (c UpdateOrderCommand) Archived() bool {
	return c.archived
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
