// Package parcel provides domain entities for physical shipments in transit.
// It implements the Parcel aggregate root and its Allocation child entities,
// the rows of the split-shipment ledger.
//
// The package includes:
//   - Parcel: A tracked shipment container owned by a user
//   - Allocation: A ledger row recording how many units of a given order
//     item are physically inside this parcel
//   - Status: Descriptive lifecycle labels for parcels
//
// Key business rules:
//   - At most one allocation per (parcel, order item) pair; re-allocating
//     the same pair updates the quantity instead of duplicating the row
//   - Allocation quantities are strictly positive; deallocate instead of
//     setting zero
//   - Tracking numbers are not unique (carriers reuse them over time)
//   - Parcel statuses are labels validated for membership only, not a
//     state machine
//
// The over-allocation invariant (the sum across parcels never exceeds the
// ordered quantity) spans aggregates and is enforced by the allocation use
// case under a row lock, not here.
package parcel
