package commands

import (
	"context"

	"parceltracker/internal/pkg/errs"
)

// RemoveOrderItemCommandHandler handles detaching a line item from an order.
// Ledger rows referencing the item cascade with it, so any parcel allocations
// of the removed item disappear in the same transaction.
type RemoveOrderItemCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewRemoveOrderItemCommandHandler creates a handler for line item removal.
func NewRemoveOrderItemCommandHandler(uowFactory LedgerUoWFactory) RemoveOrderItemCommandHandler {
	return RemoveOrderItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the detach command. The item row is locked so a
// concurrent allocation cannot slip in while the item and its ledger rows
// are being removed.
func (h *RemoveOrderItemCommandHandler) Handle(ctx context.Context, cmd RemoveOrderItemCommand) error {
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

	if err = aggregate.RemoveItem(cmd.ItemID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
