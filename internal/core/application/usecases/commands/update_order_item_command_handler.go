package commands

import (
	"context"

	"parceltracker/internal/pkg/errs"
)

// UpdateOrderItemCommandHandler handles line item edits. The aggregate
// recomputes the order totals only for quantity-ordered and price changes.
//
// Shrinking the ordered quantity below what the ledger already allocated is
// rejected: allocations always stay within the ordered quantity.
type UpdateOrderItemCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewUpdateOrderItemCommandHandler creates a handler for line item edits.
func NewUpdateOrderItemCommandHandler(uowFactory LedgerUoWFactory) UpdateOrderItemCommandHandler {
	return UpdateOrderItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the line item edit command. The item row is locked so a
// concurrent allocation cannot slip in between the ledger check and the
// quantity write.
func (h *UpdateOrderItemCommandHandler) Handle(ctx context.Context, cmd UpdateOrderItemCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetWithItemLock(ctx, cmd.ItemID())
	if err != nil {
		return err
	}

	if err = ensureOwnedBy(aggregate.UserID(), cmd.UserID()); err != nil {
		return err
	}

	if !aggregate.ID().IsEqual(cmd.OrderID()) {
		return errs.NewObjectNotFoundError("orderItemId", cmd.ItemID().String())
	}

	allocated, err := uow.LedgerReader().SumAllocated(ctx, cmd.ItemID(), nil)
	if err != nil {
		return err
	}

	if cmd.QuantityOrdered() < allocated {
		return errs.NewInvalidQuantityError("allocated", allocated, cmd.QuantityOrdered())
	}

	itemID := cmd.ItemID()
	if err = aggregate.RenameItem(itemID, cmd.Name(), cmd.Tags()); err != nil {
		return err
	}

	if err = aggregate.SetItemQuantityOrdered(itemID, cmd.QuantityOrdered()); err != nil {
		return err
	}

	if err = aggregate.SetItemQuantityReceived(itemID, cmd.QuantityReceived()); err != nil {
		return err
	}

	if err = aggregate.SetItemPrice(itemID, cmd.PricePerItem()); err != nil {
		return err
	}

	if err = aggregate.SetItemStatus(itemID, cmd.Status()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
