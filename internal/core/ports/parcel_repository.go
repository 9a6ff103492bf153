package ports

import (
	"context"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
// Parcels are stored together with their allocation ledger rows.
type ParcelRepository interface {
	// Add persists a new parcel aggregate to storage.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate,
	// including added and changed allocations.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetAllActive retrieves every parcel whose status is not terminal.
	// Used by the tracking refresh job.
	GetAllActive(ctx context.Context) ([]*parcel.Parcel, error)

	// Remove physically deletes the parcel and its allocations.
	Remove(ctx context.Context, id kernel.UUID) error

	// RemoveAllocation physically deletes a single ledger row.
	RemoveAllocation(ctx context.Context, allocationID kernel.UUID) error
}
