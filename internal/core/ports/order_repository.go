package ports

import (
	"context"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are stored together with their owned items.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate,
	// including added, changed and removed items.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Soft-deleted orders are returned as well; callers inspect IsDeleted.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetWithItemLock retrieves the order owning the given item and takes a
	// row lock on that item for the duration of the transaction. Concurrent
	// allocation attempts against the same item serialize on this lock.
	GetWithItemLock(ctx context.Context, itemID kernel.UUID) (*order.Order, error)

	// Remove physically deletes the order and its items.
	// Used for hard deletion when no shared parcels reference the order.
	Remove(ctx context.Context, id kernel.UUID) error
}
