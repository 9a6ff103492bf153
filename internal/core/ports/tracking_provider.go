package ports

import (
	"context"
	"time"

	"parceltracker/internal/core/domain/model/parcel"
)

// TrackingEvent is the latest known carrier state of a shipment.
type TrackingEvent struct {
	Status     parcel.Status
	OccurredAt time.Time
}

// TrackingProvider fetches shipment state from an external carrier
// aggregator. Implementations map carrier-specific payloads onto the
// domain's parcel statuses.
type TrackingProvider interface {
	// Fetch returns the latest tracking event for the shipment.
	Fetch(ctx context.Context, trackingNumber, carrierSlug string) (TrackingEvent, error)
}
