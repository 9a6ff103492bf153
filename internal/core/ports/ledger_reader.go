package ports

import (
	"context"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/core/domain/services"
)

// LedgerReader provides read-only views over the allocation ledger that span
// parcel aggregate boundaries. Implementations bound to a unit of work
// observe the transaction's own uncommitted writes, which makes the reader
// usable for invariant checks under row locks.
type LedgerReader interface {
	// SumAllocated returns the total quantity of the item allocated across
	// all parcels. When excludeParcelID is non-nil the row for that parcel
	// is left out, so an upsert can be validated against the remainder.
	SumAllocated(ctx context.Context, orderItemID kernel.UUID, excludeParcelID *kernel.UUID) (int, error)

	// ParcelsHoldingItems returns, for every parcel holding any of the given
	// items, the distinct orders whose items are allocated in it.
	ParcelsHoldingItems(ctx context.Context, orderItemIDs []kernel.UUID) ([]services.ParcelOwnership, error)

	// HasAllocationsForItems reports whether any ledger row still references
	// one of the given items.
	HasAllocationsForItems(ctx context.Context, orderItemIDs []kernel.UUID) (bool, error)
}
