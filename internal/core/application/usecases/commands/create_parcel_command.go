package commands

import (
	"errors"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/pkg/guard"
)

var (
	ErrCreateParcelCommandIsNotConstructed = errors.New(
		"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
	)
	ErrTrackingNumberIsRequired = errors.New("tracking number is required")
	ErrCarrierSlugIsRequired    = errors.New("carrier slug is required")
)

// CreateParcelCommand represents a request to register a new shipment.
// A parcel starts empty; items are placed into it through allocation.
//
// Example:
//
//	cmd, err := NewCreateParcelCommand(
//	    kernel.NewUUID(), userID, "RB123456785SG", "sgpost", "Black Friday haul",
//	)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewCreateParcelCommandHandler(uowFactory)
//	err = handler.Handle(ctx, cmd)
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID       kernel.UUID
	userID         kernel.UUID
	trackingNumber string
	carrierSlug    string
	label          string

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand creates a command to register a shipment.
// The tracking number is required but not unique: carriers reuse them, and
// one physical shipment may be tracked by several users.
func NewCreateParcelCommand(
	parcelID kernel.UUID,
	userID kernel.UUID,
	trackingNumber string,
	carrierSlug string,
	label string,
) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		label: label,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setUserID(userID),
		cmd.setTrackingNumber(trackingNumber),
		cmd.setCarrierSlug(carrierSlug),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

// ParcelID returns the identifier for the new parcel.
func (c CreateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// UserID returns the identifier of the owning user.
func (c CreateParcelCommand) UserID() kernel.UUID {
	return c.userID
}

// TrackingNumber returns the carrier tracking number.
func (c CreateParcelCommand) TrackingNumber() string {
	return c.trackingNumber
}

// CarrierSlug returns the carrier identifier used by the tracking provider.
func (c CreateParcelCommand) CarrierSlug() string {
	return c.carrierSlug
}

// Label returns the user-facing parcel label.
func (c CreateParcelCommand) Label() string {
	return c.label
}

func (c *CreateParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *CreateParcelCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *CreateParcelCommand) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return ErrTrackingNumberIsRequired
	}

	c.trackingNumber = trackingNumber
	return nil
}

func (c *CreateParcelCommand) setCarrierSlug(carrierSlug string) error {
	if carrierSlug == "" {
		return ErrCarrierSlugIsRequired
	}

	c.carrierSlug = carrierSlug
	return nil
}
