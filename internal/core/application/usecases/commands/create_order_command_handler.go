package commands

import (
	"context"
	"log/slog"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/core/domain/model/order"
	"parceltracker/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for recording a
// purchase, including freezing the exchange rate on the new order.
//
// Rate freezing policy, in priority order:
//  1. An explicit rate on the command is stored verbatim; the estimated
//     flag is whatever the caller supplied, defaulting to exact.
//  2. Same original and base currency freezes the unit rate; exact.
//  3. A live quote from the rate resolver; the total is an estimate.
//  4. Resolver failure falls back to the unit rate and still creates the
//     order: losing a live quote must never lose the purchase record.
//     The failure is logged, the total marked estimated.
type CreateOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	rateResolver ports.RateResolver
	log          *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	rateResolver ports.RateResolver,
	log *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:   uowFactory,
		rateResolver: rateResolver,
		log:          log,
	}
}

// Handle processes the order creation command: resolves the frozen rate,
// builds the aggregate and persists it.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	owner, err := uow.UserRepository().Get(ctx, cmd.UserID())
	if err != nil {
		return err
	}

	rate, estimated := h.freezeRate(ctx, cmd, owner.BaseCurrency())

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.UserID(),
		cmd.Platform(),
		cmd.ExternalNumber(),
		cmd.OrderDate(),
		cmd.ProtectionEndDate(),
		cmd.PriceOriginal(),
		cmd.CurrencyOriginal(),
		rate,
		estimated,
		cmd.Comment(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// freezeRate applies the rate freezing policy and reports whether the
// resulting converted total is an estimate.
func (h *CreateOrderCommandHandler) freezeRate(
	ctx context.Context,
	cmd CreateOrderCommand,
	baseCurrency kernel.Currency,
) (kernel.ExchangeRate, bool) {
	if explicit := cmd.ExplicitRate(); explicit != nil {
		return *explicit, cmd.PriceEstimated()
	}

	if cmd.CurrencyOriginal().IsEqual(baseCurrency) {
		return kernel.UnitExchangeRate(), false
	}

	rate, err := h.rateResolver.Resolve(ctx, cmd.CurrencyOriginal(), baseCurrency)
	if err != nil {
		h.log.Warn("rate resolution failed, freezing unit rate",
			"from", cmd.CurrencyOriginal().Code(),
			"to", baseCurrency.Code(),
			"error", err)
		return kernel.UnitExchangeRate(), true
	}

	return rate, true
}
