package commands

import (
	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/pkg/errs"
)

// ensureOwnedBy verifies that the caller owns the aggregate.
// Handlers run it right after loading an aggregate and before any mutation.
func ensureOwnedBy(ownerID, callerID kernel.UUID) error {
	if !ownerID.IsEqual(callerID) {
		return errs.NewNotAuthorizedError("resource belongs to another user")
	}
	return nil
}
