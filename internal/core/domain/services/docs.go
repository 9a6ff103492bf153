// Package services provides domain services that implement business rules
// spanning multiple aggregates of the parcel tracking system.
//
// The package includes:
//   - DeletionResolver: decides between hard and soft order deletion based on
//     how the allocation ledger references the order's items
//
// Domain services here are pure: they operate on snapshots supplied by the
// caller and never touch persistence themselves.
package services
