package commands

import (
	"context"

	"parceltracker/internal/pkg/errs"
)

// AllocateItemCommandHandler handles placing order item units into a parcel.
//
// The over-allocation invariant is enforced here, across aggregate
// boundaries: summed over every parcel, allocations of an item never exceed
// its ordered quantity. The item row is locked for the duration of the
// transaction, so two concurrent allocations of the same item serialize and
// the second one sees the first one's row.
type AllocateItemCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewAllocateItemCommandHandler creates a handler for item allocation.
func NewAllocateItemCommandHandler(uowFactory LedgerUoWFactory) AllocateItemCommandHandler {
	return AllocateItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the allocation command. Same-quantity repeats commit
// without touching the parcel, which keeps the operation idempotent.
func (h *AllocateItemCommandHandler) Handle(ctx context.Context, cmd AllocateItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	owningOrder, err := uow.OrderRepository().GetWithItemLock(ctx, cmd.OrderItemID())
	if err != nil {
		return err
	}

	if err = ensureOwnedBy(owningOrder.UserID(), cmd.UserID()); err != nil {
		return err
	}

	item, err := owningOrder.Item(cmd.OrderItemID())
	if err != nil {
		return err
	}

	parcelRepo := uow.ParcelRepository()
	targetParcel, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if err = ensureOwnedBy(targetParcel.UserID(), cmd.UserID()); err != nil {
		return err
	}

	// Everything allocated elsewhere; the target parcel's own row is being
	// replaced, so it does not count against the budget.
	parcelID := cmd.ParcelID()
	allocatedElsewhere, err := uow.LedgerReader().SumAllocated(ctx, cmd.OrderItemID(), &parcelID)
	if err != nil {
		return err
	}

	attempted := allocatedElsewhere + cmd.Quantity()
	if attempted > item.QuantityOrdered() {
		return errs.NewInvalidQuantityError("quantity", attempted, item.QuantityOrdered())
	}

	_, changed, err := targetParcel.Allocate(cmd.OrderItemID(), cmd.Quantity())
	if err != nil {
		return err
	}

	if changed {
		if err = parcelRepo.Update(ctx, targetParcel); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
