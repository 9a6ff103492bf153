package order

import (
	"fmt"

	"parceltracker/internal/pkg/errs"
)

// ItemStatus is a descriptive lifecycle label for an order line item.
// Statuses are set by user action and validated for membership only;
// no transition machine is enforced server-side.
type ItemStatus string

// The full set of item lifecycle labels. The main flow runs from
// WaitingPayment through Received, with Cancelled, DisputeOpen, and
// Refunded as side branches reachable at any point.
const (
	ItemStatusWaitingPayment      ItemStatus = "Waiting_Payment"
	ItemStatusPaymentVerification ItemStatus = "Payment_Verification"
	ItemStatusSellerPacking       ItemStatus = "Seller_Packing"
	ItemStatusPartiallyShipped    ItemStatus = "Partially_Shipped"
	ItemStatusShipped             ItemStatus = "Shipped"
	ItemStatusPartiallyReceived   ItemStatus = "Partially_Received"
	ItemStatusReceived            ItemStatus = "Received"
	ItemStatusCancelled           ItemStatus = "Cancelled"
	ItemStatusDisputeOpen         ItemStatus = "Dispute_Open"
	ItemStatusRefunded            ItemStatus = "Refunded"
)

func validItemStatuses() map[ItemStatus]struct{} {
	return map[ItemStatus]struct{}{
		ItemStatusWaitingPayment:      {},
		ItemStatusPaymentVerification: {},
		ItemStatusSellerPacking:       {},
		ItemStatusPartiallyShipped:    {},
		ItemStatusShipped:             {},
		ItemStatusPartiallyReceived:   {},
		ItemStatusReceived:            {},
		ItemStatusCancelled:           {},
		ItemStatusDisputeOpen:         {},
		ItemStatusRefunded:            {},
	}
}

// Validate checks whether the label is one of the known statuses.
// Any known label may be set at any time.
func (s ItemStatus) Validate() error {
	if _, ok := validItemStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"item status",
			fmt.Errorf("%q is not a valid item status", string(s)),
		)
	}
	return nil
}

// String returns the label as stored.
func (s ItemStatus) String() string {
	return string(s)
}
