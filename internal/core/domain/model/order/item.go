package order

import (
	"errors"
	"fmt"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item represents one purchased line item within an order.
//
// Item invariants:
//   - Must have a valid unique identifier and a non-empty display name
//   - quantityOrdered is at least 1
//   - quantityReceived is at least 0
//   - Unit price, when present, is non-negative
//
// Items are owned exclusively by their Order and are removed when the order
// is hard-deleted. The many-to-many relationship to parcels lives in the
// split-shipment ledger, not here.
type Item struct {
	id kernel.UUID

	// name is the display name of the purchased item
	name string

	// tags is an unordered set of free-form labels
	tags []string

	quantityOrdered  int
	quantityReceived int

	// pricePerItem is the unit price; nil means not yet known and is
	// treated as zero by the order total recompute
	pricePerItem *kernel.Money

	status ItemStatus

	isConstructed bool
}

// NewItem creates a new line item with validation. Quantity received starts
// at zero and the status defaults to WaitingPayment when empty.
func NewItem(
	id kernel.UUID,
	name string,
	tags []string,
	quantityOrdered int,
	pricePerItem *kernel.Money,
	status ItemStatus,
) (*Item, error) {
	if status == "" {
		status = ItemStatusWaitingPayment
	}

	item := &Item{isConstructed: true}

	if err := errors.Join(
		item.setID(id),
		item.setName(name),
		item.setQuantityOrdered(quantityOrdered),
		item.setPricePerItem(pricePerItem),
		item.setStatus(status),
	); err != nil {
		return nil, err
	}

	item.tags = normalizeTags(tags)
	return item, nil
}

// RestoreItem reconstructs an item from persistence without re-running
// creation defaults.
func RestoreItem(
	id kernel.UUID,
	name string,
	tags []string,
	quantityOrdered int,
	quantityReceived int,
	pricePerItem *kernel.Money,
	status ItemStatus,
) (*Item, error) {
	item, err := NewItem(id, name, tags, quantityOrdered, pricePerItem, status)
	if err != nil {
		return nil, err
	}

	if err = item.setQuantityReceived(quantityReceived); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate ensures the Item instance was properly constructed through NewItem.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// Name returns the display name.
func (i *Item) Name() string {
	return i.name
}

// Tags returns the item's labels. The returned slice is a copy.
func (i *Item) Tags() []string {
	out := make([]string, len(i.tags))
	copy(out, i.tags)
	return out
}

// QuantityOrdered returns how many units were ordered.
func (i *Item) QuantityOrdered() int {
	return i.quantityOrdered
}

// QuantityReceived returns how many units arrived so far.
func (i *Item) QuantityReceived() int {
	return i.quantityReceived
}

// PricePerItem returns the unit price, or nil when unknown.
func (i *Item) PricePerItem() *kernel.Money {
	return i.pricePerItem
}

// Status returns the current lifecycle label.
func (i *Item) Status() ItemStatus {
	return i.status
}

// subtotal is the item's contribution to the order total;
// a nil unit price counts as zero.
func (i *Item) subtotal() kernel.Money {
	if i.pricePerItem == nil {
		return kernel.ZeroMoney()
	}
	return i.pricePerItem.MulInt(i.quantityOrdered)
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantityOrdered(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity ordered",
			fmt.Errorf("%d is not at least 1", quantity),
		)
	}
	i.quantityOrdered = quantity
	return nil
}

func (i *Item) setQuantityReceived(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity received",
			fmt.Errorf("%d is negative", quantity),
		)
	}
	i.quantityReceived = quantity
	return nil
}

func (i *Item) setPricePerItem(price *kernel.Money) error {
	if price != nil && price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"price per item",
			fmt.Errorf("%s is negative", price.String()),
		)
	}
	i.pricePerItem = price
	return nil
}

func (i *Item) setStatus(status ItemStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	i.status = status
	return nil
}

// normalizeTags drops empty strings and duplicates while keeping first-seen order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
