// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves a user's orders enriched with allocation data:
// for every line item, which parcels hold it and how many units remain
// unallocated. Soft-deleted orders are excluded unless requested.
//
// Example:
//
//	query, err := NewListOrdersQuery(userID, false, false)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewListOrdersQueryHandler(db)
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	userID          kernel.UUID
	includeArchived bool
	includeDeleted  bool

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a query for a user's enriched order list.
func NewListOrdersQuery(userID kernel.UUID, includeArchived, includeDeleted bool) (ListOrdersQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		userID:          userID,
		includeArchived: includeArchived,
		includeDeleted:  includeDeleted,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// UserID returns the identifier of the user whose orders are listed.
func (q ListOrdersQuery) UserID() kernel.UUID {
	return q.userID
}

// IncludeArchived reports whether archived orders are included.
func (q ListOrdersQuery) IncludeArchived() bool {
	return q.includeArchived
}

// IncludeDeleted reports whether soft-deleted orders are included.
func (q ListOrdersQuery) IncludeDeleted() bool {
	return q.includeDeleted
}

// OrderParcelRef identifies a parcel holding units of a line item.
type OrderParcelRef struct {
	ParcelID       kernel.UUID
	TrackingNumber string
	Label          string
	Status         string
	Quantity       int
}

// OrderItemResponse is the read model of a line item, enriched with its
// placement across parcels. Remaining is the unallocated unit count.
type OrderItemResponse struct {
	ID               kernel.UUID
	Name             string
	Tags             []string
	QuantityOrdered  int
	QuantityReceived int
	PricePerItem     *kernel.Money
	Status           string
	InParcels        []OrderParcelRef
	Remaining        int
}

// ListOrdersQueryResponse is the read model of one order in the list.
type ListOrdersQueryResponse struct {
	ID                kernel.UUID
	Platform          string
	ExternalNumber    string
	OrderDate         time.Time
	ProtectionEndDate *time.Time
	PriceOriginal     kernel.Money
	CurrencyOriginal  string
	PriceFinalBase    kernel.Money
	IsPriceEstimated  bool
	Comment           string
	Archived          bool
	DeletedAt         *time.Time
	Items             []OrderItemResponse
}
