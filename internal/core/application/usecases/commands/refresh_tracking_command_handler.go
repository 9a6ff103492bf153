package commands

import (
	"context"
	"log/slog"

	"parceltracker/internal/core/ports"
)

// RefreshTrackingCommandHandler polls the carrier feed for every active
// parcel and stamps the returned status and timestamp. A failed lookup for
// one parcel is logged and skipped; a single dead tracking number must not
// stall the whole refresh run.
type RefreshTrackingCommandHandler struct {
	uowFactory ParcelUoWFactory
	provider   ports.TrackingProvider
	log        *slog.Logger
}

// NewRefreshTrackingCommandHandler creates a handler for tracking refreshes.
func NewRefreshTrackingCommandHandler(
	uowFactory ParcelUoWFactory,
	provider ports.TrackingProvider,
	log *slog.Logger,
) RefreshTrackingCommandHandler {
	return RefreshTrackingCommandHandler{
		uowFactory: uowFactory,
		provider:   provider,
		log:        log,
	}
}

// Handle processes the tracking refresh command. All status updates commit
// in one transaction; lookup failures only shrink the batch.
func (h *RefreshTrackingCommandHandler) Handle(ctx context.Context, cmd RefreshTrackingCommand) error {
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

	parcels, err := parcelRepo.GetAllActive(ctx)
	if err != nil {
		return err
	}

	for _, aggregate := range parcels {
		event, fetchErr := h.provider.Fetch(ctx, aggregate.TrackingNumber(), aggregate.CarrierSlug())
		if fetchErr != nil {
			h.log.WarnContext(ctx, "tracking lookup failed",
				"parcel_id", aggregate.ID().String(),
				"tracking_number", aggregate.TrackingNumber(),
				"error", fetchErr)
			continue
		}

		if err = aggregate.RecordTrackingUpdate(event.Status, event.OccurredAt); err != nil {
			return err
		}

		if err = parcelRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
