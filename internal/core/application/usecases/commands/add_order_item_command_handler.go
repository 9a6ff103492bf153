package commands

import (
	"context"

	"parceltracker/internal/core/domain/model/order"
)

// AddOrderItemCommandHandler handles attaching a new line item to an order.
// The order totals are recomputed by the aggregate as part of the attach.
type AddOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAddOrderItemCommandHandler creates a handler for line item creation.
func NewAddOrderItemCommandHandler(uowFactory OrderUoWFactory) AddOrderItemCommandHandler {
	return AddOrderItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the attach command.
func (h *AddOrderItemCommandHandler) Handle(ctx context.Context, cmd AddOrderItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	item, err := order.NewItem(
		cmd.ItemID(),
		cmd.Name(),
		cmd.Tags(),
		cmd.QuantityOrdered(),
		cmd.PricePerItem(),
		cmd.Status(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
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

	if err = aggregate.AddItem(item); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
