package services

import (
	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/pkg/errs"
)

// ParcelOwnership describes one parcel that holds items of the order being
// deleted, together with the distinct orders whose items are allocated in it.
// It is a read-model row produced by the allocation ledger.
type ParcelOwnership struct {
	ParcelID kernel.UUID
	// OwnerOrderIDs lists every distinct order with at least one allocation
	// in the parcel; it always includes the order under deletion.
	OwnerOrderIDs []kernel.UUID
}

// DeletionPlan is the outcome of resolving an order deletion request.
//
// When HardDelete is true the order and its items can be physically removed,
// after first removing the exclusive parcels. When false the order must be
// soft-deleted (stamped, kept on disk) because shared parcels still reference
// its items through the ledger.
type DeletionPlan struct {
	// ExclusiveParcelIDs are parcels whose every allocation belongs to the
	// order under deletion. They carry no foreign state and are removed
	// together with the order.
	ExclusiveParcelIDs []kernel.UUID

	// SharedParcelIDs are parcels that also hold items of other orders.
	// They survive the deletion untouched.
	SharedParcelIDs []kernel.UUID

	HardDelete bool
}

// DeletionResolver is a domain service that decides between hard and soft
// deletion of an order based on how the allocation ledger references its
// items.
//
// Business rules:
//   - An order with no ledger references is hard-deleted outright.
//   - Parcels referencing only the deleted order are exclusive: they are
//     removed and the order is hard-deleted.
//   - A single shared parcel forces a soft delete, because removing the
//     order's items would orphan that parcel's ledger rows.
//
// The resolver is pure: it classifies the snapshot it is given. Callers must
// take row locks and re-check the ledger inside the same transaction before
// acting on the plan, since allocations may change between read and write.
//
// Example usage:
//
//	resolver := services.NewDeletionResolver()
//	holdings, _ := ledger.ParcelsHoldingItems(ctx, itemIDs)
//	plan, err := resolver.Resolve(orderID, holdings)
//	if err != nil {
//	    return err
//	}
//	if plan.HardDelete {
//	    // remove plan.ExclusiveParcelIDs, then the order itself
//	} else {
//	    // stamp the order as deleted, keep everything on disk
//	}
type DeletionResolver struct{}

// NewDeletionResolver creates a new DeletionResolver instance.
func NewDeletionResolver() DeletionResolver {
	return DeletionResolver{}
}

// Resolve classifies every parcel holding the order's items as exclusive or
// shared and derives the deletion mode.
//
// Returns an error when orderID or any parcel ID is invalid, or when a
// holding does not reference the order under deletion (which indicates the
// snapshot was queried for the wrong order).
func (r DeletionResolver) Resolve(orderID kernel.UUID, holdings []ParcelOwnership) (DeletionPlan, error) {
	if err := orderID.Validate(); err != nil {
		return DeletionPlan{}, err
	}

	plan := DeletionPlan{HardDelete: true}

	for _, holding := range holdings {
		if err := holding.ParcelID.Validate(); err != nil {
			return DeletionPlan{}, err
		}

		exclusive, err := r.classify(orderID, holding)
		if err != nil {
			return DeletionPlan{}, err
		}

		if exclusive {
			plan.ExclusiveParcelIDs = append(plan.ExclusiveParcelIDs, holding.ParcelID)
		} else {
			plan.SharedParcelIDs = append(plan.SharedParcelIDs, holding.ParcelID)
			plan.HardDelete = false
		}
	}

	return plan, nil
}

// classify reports whether the parcel belongs exclusively to the order under
// deletion.
func (r DeletionResolver) classify(orderID kernel.UUID, holding ParcelOwnership) (bool, error) {
	references := false
	exclusive := true

	for _, ownerID := range holding.OwnerOrderIDs {
		if err := ownerID.Validate(); err != nil {
			return false, err
		}

		if ownerID.IsEqual(orderID) {
			references = true
		} else {
			exclusive = false
		}
	}

	if !references {
		return false, errs.NewValueIsInvalidError("holdings")
	}

	return exclusive, nil
}
