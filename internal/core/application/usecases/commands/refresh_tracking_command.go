package commands

import (
	"errors"

	"parceltracker/internal/pkg/guard"
)

// RefreshTrackingCommand triggers a tracking poll for every non-terminal
// parcel. This batch operation stamps fresh carrier statuses onto parcels.
//
// Example:
//
//	cmd := NewRefreshTrackingCommand()
//	handler := NewRefreshTrackingCommandHandler(uowFactory, provider, logger)
//
//	// Run periodically from the job scheduler
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("tracking refresh failed: %v", err)
//	}
type RefreshTrackingCommand struct {
	guard guard.ConstructorGuard
}

var ErrRefreshTrackingCommandIsNotConstructed = errors.New(
	"RefreshTrackingCommand must be created via NewRefreshTrackingCommand constructor",
)

// NewRefreshTrackingCommand creates a command to trigger a tracking poll.
// This is a parameterless command that processes all active parcels.
func NewRefreshTrackingCommand() RefreshTrackingCommand {
	return RefreshTrackingCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrRefreshTrackingCommandIsNotConstructed if validation fails.
func (c *RefreshTrackingCommand) Validate() error {
	return c.guard.Validate(ErrRefreshTrackingCommandIsNotConstructed)
}
