// Package kernel provides shared value objects used across the domain model:
// identifiers, currency codes, and exact decimal quantities for money,
// exchange rates, and weight.
//
// All monetary values are exact decimals, never binary floating point.
// Money carries two decimal places, exchange rates six, weight three;
// rounding is always half-up (ties away from zero).
//
// Value objects in this package are immutable and validated on construction,
// following the constructor-guard convention used throughout the domain.
package kernel
