package commands

import (
	"context"
)

// UpdateOrderCommandHandler handles editing of an order's descriptive fields,
// costs and archive flag. Soft-deleted orders reject edits.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderCommandHandler creates a handler for order edits.
func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order edit command.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) error {
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

	if err = aggregate.UpdateDetails(
		cmd.Platform(),
		cmd.ExternalNumber(),
		cmd.OrderDate(),
		cmd.ProtectionEndDate(),
		cmd.Comment(),
	); err != nil {
		return err
	}

	if err = aggregate.SetShippingCost(cmd.ShippingCost()); err != nil {
		return err
	}

	if err = aggregate.SetCustomsCost(cmd.CustomsCost()); err != nil {
		return err
	}

	aggregate.SetArchived(cmd.Archived())

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
