package commands

import (
	"errors"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/core/domain/model/parcel"
	"parceltracker/internal/pkg/guard"
)

var ErrUpdateParcelCommandIsNotConstructed = errors.New(
	"UpdateParcelCommand must be created via NewUpdateParcelCommand constructor",
)

// UpdateParcelCommand represents a request to edit a parcel: tracking
// details, label, status, weight and the archive flag.
type UpdateParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID       kernel.UUID
	userID         kernel.UUID
	trackingNumber string
	carrierSlug    string
	label          string
	status         parcel.Status
	weight         *kernel.Weight
	archived       bool

	guard guard.ConstructorGuard
}

// NewUpdateParcelCommand creates a command carrying the parcel's full new
// state. The status must be one of the known labels; weight may be nil.
func NewUpdateParcelCommand(
	parcelID kernel.UUID,
	userID kernel.UUID,
	trackingNumber string,
	carrierSlug string,
	label string,
	status parcel.Status,
	weight *kernel.Weight,
	archived bool,
) (UpdateParcelCommand, error) {
	cmd := UpdateParcelCommand{
		label:    label,
		weight:   weight,
		archived: archived,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setUserID(userID),
		cmd.setTrackingNumber(trackingNumber),
		cmd.setCarrierSlug(carrierSlug),
		cmd.setStatus(status),
	); err != nil {
		return UpdateParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateParcelCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParcelCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel to edit.
func (c UpdateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// UserID returns the identifier of the caller.
func (c UpdateParcelCommand) UserID() kernel.UUID {
	return c.userID
}

// TrackingNumber returns the new tracking number.
func (c UpdateParcelCommand) TrackingNumber() string {
	return c.trackingNumber
}

// CarrierSlug returns the new carrier identifier.
func (c UpdateParcelCommand) CarrierSlug() string {
	return c.carrierSlug
}

// Label returns the new user-facing label.
func (c UpdateParcelCommand) Label() string {
	return c.label
}

// Status returns the new shipment status.
func (c UpdateParcelCommand) Status() parcel.Status {
	return c.status
}

// Weight returns the new weight, or nil when unknown.
func (c UpdateParcelCommand) Weight() *kernel.Weight {
	return c.weight
}

// Archived returns the new archive flag.
func (c UpdateParcelCommand) Archived() bool {
	return c.archived
}

func (c *UpdateParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *UpdateParcelCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *UpdateParcelCommand) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return ErrTrackingNumberIsRequired
	}

	c.trackingNumber = trackingNumber
	return nil
}

func (c *UpdateParcelCommand) setCarrierSlug(carrierSlug string) error {
	if carrierSlug == "" {
		return ErrCarrierSlugIsRequired
	}

	c.carrierSlug = carrierSlug
	return nil
}

func (c *UpdateParcelCommand) setStatus(status parcel.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
