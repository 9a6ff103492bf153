package parcel

import (
	"errors"
	"time"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/pkg/errs"
)

// ErrParcelIsNotConstructed is returned when a Parcel instance was not
// created through the NewParcel factory method.
var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

// Parcel represents a physical shipment container in transit, tracked by a
// carrier and owned by a user. A parcel may carry items from several orders
// (consolidation warehouses merge shipments); the contents are recorded as
// Allocation children, the split-shipment ledger rows.
//
// Parcel invariants:
//   - Must have a valid unique identifier and owner
//   - Tracking number and carrier slug are required; the tracking number is
//     deliberately NOT unique, carriers reuse numbers across time
//   - At most one allocation per order item; repeated allocation updates
//     the quantity in place
//   - Allocation quantities are strictly positive
type Parcel struct {
	id     kernel.UUID
	userID kernel.UUID

	trackingNumber string
	carrierSlug    string

	// label is an optional human-readable name for the parcel
	label string

	status            Status
	trackingUpdatedAt *time.Time
	weight            *kernel.Weight
	archived          bool

	allocations []*Allocation

	isConstructed bool
}

// NewParcel creates a new Parcel in Created status with no allocations.
func NewParcel(
	id kernel.UUID,
	userID kernel.UUID,
	trackingNumber string,
	carrierSlug string,
	label string,
) (*Parcel, error) {
	p := &Parcel{
		label:         label,
		status:        StatusCreated,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setUserID(userID),
		p.setTrackingNumber(trackingNumber),
		p.setCarrierSlug(carrierSlug),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel reconstructs a parcel from persistence with its full state
// and allocations.
func RestoreParcel(
	id kernel.UUID,
	userID kernel.UUID,
	trackingNumber string,
	carrierSlug string,
	label string,
	status Status,
	trackingUpdatedAt *time.Time,
	weight *kernel.Weight,
	archived bool,
	allocations []*Allocation,
) (*Parcel, error) {
	p, err := NewParcel(id, userID, trackingNumber, carrierSlug, label)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	for _, a := range allocations {
		if err = a.Validate(); err != nil {
			return nil, err
		}
	}

	p.status = status
	p.trackingUpdatedAt = trackingUpdatedAt
	p.weight = weight
	p.archived = archived
	p.allocations = allocations
	return p, nil
}

// Validate ensures the Parcel instance was properly constructed through NewParcel.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// UserID returns the identifier of the owning user.
func (p *Parcel) UserID() kernel.UUID {
	return p.userID
}

// TrackingNumber returns the carrier tracking number.
func (p *Parcel) TrackingNumber() string {
	return p.trackingNumber
}

// CarrierSlug returns the carrier identifier.
func (p *Parcel) CarrierSlug() string {
	return p.carrierSlug
}

// Label returns the optional human-readable name.
func (p *Parcel) Label() string {
	return p.label
}

// Status returns the current lifecycle label.
func (p *Parcel) Status() Status {
	return p.status
}

// TrackingUpdatedAt returns when tracking data was last refreshed, or nil.
func (p *Parcel) TrackingUpdatedAt() *time.Time {
	return p.trackingUpdatedAt
}

// Weight returns the parcel weight, or nil when unknown.
func (p *Parcel) Weight() *kernel.Weight {
	return p.weight
}

// IsArchived reports whether the parcel is archived.
func (p *Parcel) IsArchived() bool {
	return p.archived
}

// Allocations returns the ledger rows held by this parcel. The returned
// slice is a copy.
func (p *Parcel) Allocations() []*Allocation {
	out := make([]*Allocation, len(p.allocations))
	copy(out, p.allocations)
	return out
}

// AllocationFor finds the ledger row for an order item, if any.
func (p *Parcel) AllocationFor(orderItemID kernel.UUID) (*Allocation, bool) {
	for _, a := range p.allocations {
		if a.OrderItemID().IsEqual(orderItemID) {
			return a, true
		}
	}
	return nil, false
}

// AllocatedQuantityFor returns how many units of an order item this parcel
// holds, zero when none.
func (p *Parcel) AllocatedQuantityFor(orderItemID kernel.UUID) int {
	if a, ok := p.AllocationFor(orderItemID); ok {
		return a.Quantity()
	}
	return 0
}

// Allocate upserts the ledger row for an order item: a new row when the pair
// does not exist yet, a quantity update when it does. Re-allocating the same
// quantity is a no-op. Returns the row and whether anything changed.
//
// The cross-parcel over-allocation check belongs to the allocation use case,
// which runs it under a row lock before calling this method.
func (p *Parcel) Allocate(orderItemID kernel.UUID, quantity int) (*Allocation, bool, error) {
	if err := p.Validate(); err != nil {
		return nil, false, err
	}
	if err := orderItemID.Validate(); err != nil {
		return nil, false, err
	}
	if quantity < 1 {
		return nil, false, errs.NewValueIsOutOfRangeError("allocation quantity", quantity, 1, int(^uint(0)>>1))
	}

	if existing, ok := p.AllocationFor(orderItemID); ok {
		if existing.quantity == quantity {
			return existing, false, nil
		}
		existing.quantity = quantity
		return existing, true, nil
	}

	a := &Allocation{
		id:            kernel.NewUUID(),
		parcelID:      p.id,
		orderItemID:   orderItemID,
		quantity:      quantity,
		isConstructed: true,
	}
	p.allocations = append(p.allocations, a)
	return a, true, nil
}

// Deallocate removes a ledger row by its identifier.
func (p *Parcel) Deallocate(allocationID kernel.UUID) error {
	if err := p.Validate(); err != nil {
		return err
	}
	for idx, a := range p.allocations {
		if a.ID().IsEqual(allocationID) {
			p.allocations = append(p.allocations[:idx], p.allocations[idx+1:]...)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("parcelItemId", allocationID.String())
}

// SetStatus sets the lifecycle label.
func (p *Parcel) SetStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}

// RecordTrackingUpdate applies a status reported by the carrier feed and
// stamps the refresh time. Used by the tracking refresh job.
func (p *Parcel) RecordTrackingUpdate(status Status, at time.Time) error {
	if err := p.SetStatus(status); err != nil {
		return err
	}
	t := at.UTC()
	p.trackingUpdatedAt = &t
	return nil
}

// SetWeight records the parcel weight; nil clears it.
func (p *Parcel) SetWeight(weight *kernel.Weight) {
	p.weight = weight
}

// SetArchived flips the archive flag.
func (p *Parcel) SetArchived(archived bool) {
	p.archived = archived
}

// UpdateDetails edits the tracking number, carrier, and label.
func (p *Parcel) UpdateDetails(trackingNumber, carrierSlug, label string) error {
	if err := errors.Join(
		p.setTrackingNumber(trackingNumber),
		p.setCarrierSlug(carrierSlug),
	); err != nil {
		return err
	}
	p.label = label
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	p.userID = userID
	return nil
}

func (p *Parcel) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}
	p.trackingNumber = trackingNumber
	return nil
}

func (p *Parcel) setCarrierSlug(carrierSlug string) error {
	if carrierSlug == "" {
		return errs.NewValueIsRequiredError("carrier slug")
	}
	p.carrierSlug = carrierSlug
	return nil
}
