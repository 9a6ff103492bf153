// Package order provides domain entities and business logic for purchase
// orders in the parcel tracker. It implements the Order aggregate root with
// its line items and derived financial totals.
//
// The package includes:
//   - Order: The aggregate root holding the financial record of a purchase,
//     its line items, and the frozen exchange rate
//   - Item: A purchased line item within an order
//   - ItemStatus: Descriptive lifecycle labels for line items
//
// Key business rules:
//   - price_final_base always equals price_original * exchange_rate_frozen,
//     rounded half-up to two decimal places
//   - The frozen exchange rate is fixed at creation and never silently
//     recomputed by later currency-market moves
//   - Any item mutation that changes quantity or price, and any shipping or
//     customs cost edit, recomputes price_original from the current items;
//     unrelated edits never do
//   - Item statuses are descriptive labels validated for membership only;
//     no transition is enforced
//   - Orders are soft-deleted by stamping deleted_at; the Deletion Resolver
//     decides between hard and soft removal
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
