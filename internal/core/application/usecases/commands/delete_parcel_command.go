package commands

import (
	"errors"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/pkg/guard"
)

var ErrDeleteParcelCommandIsNotConstructed = errors.New(
	"DeleteParcelCommand must be created via NewDeleteParcelCommand constructor",
)

// DeleteParcelCommand represents a request to remove a parcel. Its ledger
// rows are removed with it, which frees the allocated quantities of every
// referenced item. Orders are never touched.
type DeleteParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	userID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteParcelCommand creates a command to remove a parcel.
func NewDeleteParcelCommand(parcelID, userID kernel.UUID) (DeleteParcelCommand, error) {
	cmd := DeleteParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setUserID(userID),
	); err != nil {
		return DeleteParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteParcelCommand) Validate() error {
	return c.guard.Validate(ErrDeleteParcelCommandIsNotConstructed)
}

// ParcelID returns the identifier of the parcel to remove.
func (c DeleteParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// UserID returns the identifier of the caller.
func (c DeleteParcelCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *DeleteParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *DeleteParcelCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
