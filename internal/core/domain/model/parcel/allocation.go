package parcel

import (
	"errors"
	"fmt"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/pkg/errs"
)

// ErrAllocationIsNotConstructed is returned when an Allocation instance was
// not created through the aggregate or RestoreAllocation.
var ErrAllocationIsNotConstructed = errors.New("Allocation must be created via Parcel.Allocate or RestoreAllocation")

// Allocation is a ledger row: how many units of a given order item are
// physically inside this parcel. Quantities are strictly positive and there
// is at most one allocation per (parcel, order item) pair.
type Allocation struct {
	id          kernel.UUID
	parcelID    kernel.UUID
	orderItemID kernel.UUID
	quantity    int

	isConstructed bool
}

// RestoreAllocation reconstructs a ledger row from persistence.
func RestoreAllocation(id, parcelID, orderItemID kernel.UUID, quantity int) (*Allocation, error) {
	a := &Allocation{isConstructed: true}

	if err := errors.Join(
		a.setID(id),
		a.setParcelID(parcelID),
		a.setOrderItemID(orderItemID),
		a.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate ensures the Allocation was properly constructed.
func (a *Allocation) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAllocationIsNotConstructed
	}
	return nil
}

// ID returns the ledger row's unique identifier.
func (a *Allocation) ID() kernel.UUID {
	return a.id
}

// ParcelID returns the parcel holding the units.
func (a *Allocation) ParcelID() kernel.UUID {
	return a.parcelID
}

// OrderItemID returns the allocated order item.
func (a *Allocation) OrderItemID() kernel.UUID {
	return a.orderItemID
}

// Quantity returns how many units the parcel holds. Always positive.
func (a *Allocation) Quantity() int {
	return a.quantity
}

func (a *Allocation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Allocation) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.parcelID = id
	return nil
}

func (a *Allocation) setOrderItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.orderItemID = id
	return nil
}

func (a *Allocation) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"allocation quantity",
			fmt.Errorf("%d is not strictly positive", quantity),
		)
	}
	a.quantity = quantity
	return nil
}
