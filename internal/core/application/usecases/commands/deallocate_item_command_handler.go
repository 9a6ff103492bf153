package commands

import (
	"context"

	"parceltracker/internal/pkg/errs"
)

// DeallocateItemCommandHandler handles removing a (parcel, item) ledger row.
type DeallocateItemCommandHandler struct {
	uowFactory LedgerUoWFactory
}

// NewDeallocateItemCommandHandler creates a handler for item deallocation.
func NewDeallocateItemCommandHandler(uowFactory LedgerUoWFactory) DeallocateItemCommandHandler {
	return DeallocateItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the deallocation command.
func (h *DeallocateItemCommandHandler) Handle(ctx context.Context, cmd DeallocateItemCommand) error {
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

	parcelRepo := uow.ParcelRepository()
	targetParcel, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if err = ensureOwnedBy(targetParcel.UserID(), cmd.UserID()); err != nil {
		return err
	}

	allocation, ok := targetParcel.AllocationFor(cmd.OrderItemID())
	if !ok {
		return errs.NewObjectNotFoundError("orderItemId", cmd.OrderItemID().String())
	}

	if err = targetParcel.Deallocate(allocation.ID()); err != nil {
		return err
	}

	if err = parcelRepo.RemoveAllocation(ctx, allocation.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
