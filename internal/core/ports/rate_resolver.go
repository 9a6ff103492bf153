package ports

import (
	"context"

	"parceltracker/internal/core/domain/model/kernel"
)

// RateResolver supplies exchange rates between currencies at order creation
// time. The resolved rate is frozen on the order and never re-fetched.
type RateResolver interface {
	// Resolve returns the rate that converts one unit of from into to.
	// Identical currencies resolve to the unit rate without any lookup.
	Resolve(ctx context.Context, from, to kernel.Currency) (kernel.ExchangeRate, error)

	// ClearCache drops any cached rate data so the next Resolve call
	// fetches fresh values.
	ClearCache()
}
