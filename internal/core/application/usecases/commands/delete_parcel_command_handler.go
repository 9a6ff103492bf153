package commands

import (
	"context"
)

// DeleteParcelCommandHandler handles parcel removal. The parcel's ledger
// rows go with it; referenced orders and items stay as they are.
type DeleteParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewDeleteParcelCommandHandler creates a handler for parcel removal.
func NewDeleteParcelCommandHandler(uowFactory ParcelUoWFactory) DeleteParcelCommandHandler {
	return DeleteParcelCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the parcel removal command.
func (h *DeleteParcelCommandHandler) Handle(ctx context.Context, cmd DeleteParcelCommand) error {
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
	aggregate, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if err = ensureOwnedBy(aggregate.UserID(), cmd.UserID()); err != nil {
		return err
	}

	if err = parcelRepo.Remove(ctx, aggregate.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
