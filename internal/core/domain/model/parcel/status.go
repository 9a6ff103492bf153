package parcel

import (
	"fmt"

	"parceltracker/internal/pkg/errs"
)

// Status is a descriptive lifecycle label for a parcel, set by user action
// or by the tracking refresh job. Membership is validated; transitions are not.
type Status string

// The set of parcel labels. Delivered, Lost, and Archived are terminal in
// the sense that the tracking refresh job stops polling them.
const (
	StatusCreated     Status = "Created"
	StatusInTransit   Status = "In_Transit"
	StatusPickUpReady Status = "PickUp_Ready"
	StatusDelivered   Status = "Delivered"
	StatusLost        Status = "Lost"
	StatusArchived    Status = "Archived"
)

func validStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		StatusCreated:     {},
		StatusInTransit:   {},
		StatusPickUpReady: {},
		StatusDelivered:   {},
		StatusLost:        {},
		StatusArchived:    {},
	}
}

// Validate checks whether the label is one of the known statuses.
func (s Status) Validate() error {
	if _, ok := validStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"parcel status",
			fmt.Errorf("%q is not a valid parcel status", string(s)),
		)
	}
	return nil
}

// IsTerminal reports whether the tracking refresh job should stop polling
// a parcel in this status.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusLost || s == StatusArchived
}

// String returns the label as stored.
func (s Status) String() string {
	return string(s)
}
