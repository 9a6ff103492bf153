package queries

import (
	"errors"
	"time"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/pkg/guard"
)

var ErrGetParcelQueryIsNotConstructed = errors.New(
	"GetParcelQuery must be created via NewGetParcelQuery constructor",
)

// GetParcelQuery retrieves one parcel with its contents: every allocated
// item together with its owning order. Items of soft-deleted orders stay
// visible and are marked as belonging to a deleted order.
//
// Example:
//
//	query, err := NewGetParcelQuery(userID, parcelID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetParcelQueryHandler(db)
//	view, err := handler.Handle(ctx, query)
type GetParcelQuery struct {
	userID   kernel.UUID
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetParcelQuery creates a query for one parcel's contents view.
func NewGetParcelQuery(userID, parcelID kernel.UUID) (GetParcelQuery, error) {
	if err := errors.Join(userID.Validate(), parcelID.Validate()); err != nil {
		return GetParcelQuery{}, err
	}

	return GetParcelQuery{
		userID:   userID,
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

// UserID returns the identifier of the caller.
func (q GetParcelQuery) UserID() kernel.UUID {
	return q.userID
}

// ParcelID returns the identifier of the parcel to view.
func (q GetParcelQuery) ParcelID() kernel.UUID {
	return q.parcelID
}

// ParcelContentResponse is one allocated item inside the parcel view.
type ParcelContentResponse struct {
	OrderItemID     kernel.UUID
	ItemName        string
	Quantity        int
	OrderID         kernel.UUID
	OrderPlatform   string
	OrderExternalNo string
	OrderDeleted    bool
}

// GetParcelQueryResponse is the read model of one parcel and its contents.
type GetParcelQueryResponse struct {
	ID                kernel.UUID
	TrackingNumber    string
	CarrierSlug       string
	Label             string
	Status            string
	TrackingUpdatedAt *time.Time
	WeightKg          *kernel.Weight
	Archived          bool
	Contents          []ParcelContentResponse
}
