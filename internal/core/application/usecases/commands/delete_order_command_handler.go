package commands

import (
	"context"
	"log/slog"
	"time"

	"parceltracker/internal/core/domain/services"
)

// DeleteOrderCommandHandler handles order deletion. The deletion mode is
// derived from the allocation ledger inside one transaction:
//
//   - No parcel references the order's items: the order is hard-deleted.
//   - Every referencing parcel is exclusive to the order: those parcels are
//     removed, then the order is hard-deleted.
//   - Any parcel also holds another order's items: exclusive parcels are
//     still removed, then the order is soft-deleted and the shared parcels
//     stay intact.
//
// Already soft-deleted orders delete idempotently: a repeat request resolves
// again and typically hard-deletes, since mutation of a deleted order is
// blocked and its ledger rows can only have disappeared.
type DeleteOrderCommandHandler struct {
	uowFactory LedgerUoWFactory
	resolver   services.DeletionResolver
	log        *slog.Logger
}

// NewDeleteOrderCommandHandler creates a handler for order deletion.
func NewDeleteOrderCommandHandler(
	uowFactory LedgerUoWFactory,
	resolver services.DeletionResolver,
	log *slog.Logger,
) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		log:        log,
	}
}

// Handle processes the deletion command. After removing exclusive parcels
// the ledger is re-checked in the same transaction: if a concurrent
// allocation made the snapshot stale, the handler downgrades to a soft
// delete instead of breaking referential integrity.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
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
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = ensureOwnedBy(aggregate.UserID(), cmd.UserID()); err != nil {
		return err
	}

	itemIDs := aggregate.ItemIDs()
	ledger := uow.LedgerReader()

	holdings, err := ledger.ParcelsHoldingItems(ctx, itemIDs)
	if err != nil {
		return err
	}

	plan, err := h.resolver.Resolve(aggregate.ID(), holdings)
	if err != nil {
		return err
	}

	// Exclusive parcels go regardless of the deletion mode: they carry no
	// foreign state, so shared parcels alone never keep them alive.
	parcelRepo := uow.ParcelRepository()
	for _, parcelID := range plan.ExclusiveParcelIDs {
		if err = parcelRepo.Remove(ctx, parcelID); err != nil {
			return err
		}
	}

	if !plan.HardDelete {
		aggregate.MarkDeleted(time.Now())
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		h.log.Info("order soft-deleted",
			"orderId", aggregate.ID().String(),
			"removedParcels", len(plan.ExclusiveParcelIDs),
			"sharedParcels", len(plan.SharedParcelIDs))
		return uow.Commit(ctx)
	}

	// The plan was computed from a snapshot; verify nothing new points at
	// the items now that the exclusive parcels are gone.
	stillReferenced, err := ledger.HasAllocationsForItems(ctx, itemIDs)
	if err != nil {
		return err
	}

	if stillReferenced {
		aggregate.MarkDeleted(time.Now())
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		h.log.Info("order soft-deleted after stale hard-delete plan",
			"orderId", aggregate.ID().String())
		return uow.Commit(ctx)
	}

	if err = orderRepo.Remove(ctx, aggregate.ID()); err != nil {
		return err
	}

	h.log.Info("order hard-deleted",
		"orderId", aggregate.ID().String(),
		"removedParcels", len(plan.ExclusiveParcelIDs))
	return uow.Commit(ctx)
}
