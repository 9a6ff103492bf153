package order

import (
	"errors"
	"time"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIsDeleted is returned when mutating an order that has already
	// been soft-deleted.
	ErrOrderIsDeleted = errors.New("order is deleted")
)

// Order represents a purchase made with a merchant: the financial record of
// money paid, in the original currency and converted to the owner's base
// currency with a rate frozen at creation time.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and owner
//   - priceFinalBase == priceOriginal * exchangeRateFrozen, rounded half-up
//     to two decimal places
//   - The frozen rate never changes after construction
//   - Item mutations that change quantity or price, and shipping/customs
//     edits, recompute the totals; nothing else does
//   - Can only be created through NewOrder / RestoreOrder
//
// The physical side of the purchase lives in the parcel aggregate; the two
// are joined through the split-shipment ledger.
type Order struct {
	id     kernel.UUID
	userID kernel.UUID

	// platform is the merchant platform identifier (AliExpress, Ozon, ...)
	platform string

	// externalNumber is the order number on the merchant platform
	externalNumber string

	orderDate         time.Time
	protectionEndDate *time.Time

	priceOriginal      kernel.Money
	currencyOriginal   kernel.Currency
	exchangeRateFrozen kernel.ExchangeRate
	priceFinalBase     kernel.Money
	isPriceEstimated   bool

	comment      string
	shippingCost *kernel.Money
	customsCost  *kernel.Money

	deletedAt *time.Time
	archived  bool

	items []*Item

	isConstructed bool
}

// NewOrder creates a new Order with validation. The exchange rate passed in
// is frozen: the final base price is derived from it here and on every later
// recompute, regardless of currency-market moves.
//
// The caller (the create-order use case) is responsible for resolving the
// rate according to the freezing policy; the aggregate only records it.
func NewOrder(
	id kernel.UUID,
	userID kernel.UUID,
	platform string,
	externalNumber string,
	orderDate time.Time,
	protectionEndDate *time.Time,
	priceOriginal kernel.Money,
	currencyOriginal kernel.Currency,
	exchangeRateFrozen kernel.ExchangeRate,
	isPriceEstimated bool,
	comment string,
) (*Order, error) {
	o := &Order{
		isPriceEstimated: isPriceEstimated,
		comment:          comment,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setPlatform(platform),
		o.setExternalNumber(externalNumber),
		o.setOrderDate(orderDate),
		o.setPriceOriginal(priceOriginal),
		o.setCurrencyOriginal(currencyOriginal),
		o.setExchangeRateFrozen(exchangeRateFrozen),
	); err != nil {
		return nil, err
	}

	o.protectionEndDate = protectionEndDate
	o.priceFinalBase = o.exchangeRateFrozen.Apply(o.priceOriginal)
	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including state that
// NewOrder never produces: stored totals, costs, soft-delete stamp, archive
// flag, and items.
func RestoreOrder(
	id kernel.UUID,
	userID kernel.UUID,
	platform string,
	externalNumber string,
	orderDate time.Time,
	protectionEndDate *time.Time,
	priceOriginal kernel.Money,
	currencyOriginal kernel.Currency,
	exchangeRateFrozen kernel.ExchangeRate,
	priceFinalBase kernel.Money,
	isPriceEstimated bool,
	comment string,
	shippingCost *kernel.Money,
	customsCost *kernel.Money,
	deletedAt *time.Time,
	archived bool,
	items []*Item,
) (*Order, error) {
	o, err := NewOrder(
		id, userID, platform, externalNumber, orderDate, protectionEndDate,
		priceOriginal, currencyOriginal, exchangeRateFrozen, isPriceEstimated, comment,
	)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if err = item.Validate(); err != nil {
			return nil, err
		}
	}

	o.priceFinalBase = priceFinalBase
	o.shippingCost = shippingCost
	o.customsCost = customsCost
	o.deletedAt = deletedAt
	o.archived = archived
	o.items = items
	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// UserID returns the identifier of the owning user.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// Platform returns the merchant platform identifier.
func (o *Order) Platform() string {
	return o.platform
}

// ExternalNumber returns the order number on the merchant platform.
func (o *Order) ExternalNumber() string {
	return o.externalNumber
}

// OrderDate returns when the purchase was made.
func (o *Order) OrderDate() time.Time {
	return o.orderDate
}

// ProtectionEndDate returns the buyer-protection/dispute deadline, or nil.
func (o *Order) ProtectionEndDate() *time.Time {
	return o.protectionEndDate
}

// PriceOriginal returns the total in the original currency.
func (o *Order) PriceOriginal() kernel.Money {
	return o.priceOriginal
}

// CurrencyOriginal returns the currency the merchant was paid in.
func (o *Order) CurrencyOriginal() kernel.Currency {
	return o.currencyOriginal
}

// ExchangeRateFrozen returns the conversion rate fixed at creation.
func (o *Order) ExchangeRateFrozen() kernel.ExchangeRate {
	return o.exchangeRateFrozen
}

// PriceFinalBase returns the total converted to the owner's base currency.
func (o *Order) PriceFinalBase() kernel.Money {
	return o.priceFinalBase
}

// IsPriceEstimated reports whether the frozen rate came from a live quote
// or fallback rather than an explicit caller-supplied value.
func (o *Order) IsPriceEstimated() bool {
	return o.isPriceEstimated
}

// Comment returns the free-form note on the order.
func (o *Order) Comment() string {
	return o.comment
}

// ShippingCost returns the shipping cost, or nil when not recorded.
func (o *Order) ShippingCost() *kernel.Money {
	return o.shippingCost
}

// CustomsCost returns the customs cost, or nil when not recorded.
func (o *Order) CustomsCost() *kernel.Money {
	return o.customsCost
}

// DeletedAt returns the soft-delete timestamp, or nil for live orders.
func (o *Order) DeletedAt() *time.Time {
	return o.deletedAt
}

// IsDeleted reports whether the order has been soft-deleted.
func (o *Order) IsDeleted() bool {
	return o.deletedAt != nil
}

// IsArchived reports whether the order is archived.
func (o *Order) IsArchived() bool {
	return o.archived
}

// Items returns the order's line items. The returned slice is a copy;
// the items themselves are the aggregate's entities.
func (o *Order) Items() []*Item {
	out := make([]*Item, len(o.items))
	copy(out, o.items)
	return out
}

// ItemIDs returns the identifiers of all line items.
func (o *Order) ItemIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(o.items))
	for _, item := range o.items {
		ids = append(ids, item.ID())
	}
	return ids
}

// Item finds a line item by id.
func (o *Order) Item(itemID kernel.UUID) (*Item, error) {
	for _, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("orderItemId", itemID.String())
}

// AddItem attaches a new line item to the order and recomputes the totals.
func (o *Order) AddItem(item *Item) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	for _, existing := range o.items {
		if existing.ID().IsEqual(item.ID()) {
			return errs.NewConflictError("item " + item.ID().String() + " is already attached to the order")
		}
	}

	o.items = append(o.items, item)
	o.recalculateTotals()
	return nil
}

// RemoveItem detaches a line item and recomputes the totals.
// Ledger rows referencing the item are removed by cascade in persistence.
func (o *Order) RemoveItem(itemID kernel.UUID) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	for idx, item := range o.items {
		if item.ID().IsEqual(itemID) {
			o.items = append(o.items[:idx], o.items[idx+1:]...)
			o.recalculateTotals()
			return nil
		}
	}
	return errs.NewObjectNotFoundError("orderItemId", itemID.String())
}

// SetItemQuantityOrdered changes how many units of an item were ordered
// and recomputes the totals.
func (o *Order) SetItemQuantityOrdered(itemID kernel.UUID, quantity int) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if err = item.setQuantityOrdered(quantity); err != nil {
		return err
	}
	o.recalculateTotals()
	return nil
}

// SetItemPrice changes an item's unit price and recomputes the totals.
// A nil price marks the price as unknown (counted as zero).
func (o *Order) SetItemPrice(itemID kernel.UUID, price *kernel.Money) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if err = item.setPricePerItem(price); err != nil {
		return err
	}
	o.recalculateTotals()
	return nil
}

// SetItemQuantityReceived records arrived units. Does not touch the totals.
func (o *Order) SetItemQuantityReceived(itemID kernel.UUID, quantity int) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	return item.setQuantityReceived(quantity)
}

// SetItemStatus sets an item's lifecycle label. Does not touch the totals.
func (o *Order) SetItemStatus(itemID kernel.UUID, status ItemStatus) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	return item.setStatus(status)
}

// RenameItem changes an item's display name and tags. Does not touch the totals.
func (o *Order) RenameItem(itemID kernel.UUID, name string, tags []string) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	item, err := o.Item(itemID)
	if err != nil {
		return err
	}
	if err = item.setName(name); err != nil {
		return err
	}
	item.tags = normalizeTags(tags)
	return nil
}

// SetShippingCost records the shipping cost and recomputes the totals.
func (o *Order) SetShippingCost(cost *kernel.Money) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	if cost != nil && cost.IsNegative() {
		return errs.NewValueIsInvalidError("shipping cost")
	}
	o.shippingCost = cost
	o.recalculateTotals()
	return nil
}

// SetCustomsCost records the customs cost and recomputes the totals.
func (o *Order) SetCustomsCost(cost *kernel.Money) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	if cost != nil && cost.IsNegative() {
		return errs.NewValueIsInvalidError("customs cost")
	}
	o.customsCost = cost
	o.recalculateTotals()
	return nil
}

// UpdateDetails edits descriptive fields. Never touches the totals.
func (o *Order) UpdateDetails(
	platform string,
	externalNumber string,
	orderDate time.Time,
	protectionEndDate *time.Time,
	comment string,
) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	if err := errors.Join(
		o.setPlatform(platform),
		o.setExternalNumber(externalNumber),
		o.setOrderDate(orderDate),
	); err != nil {
		return err
	}
	o.protectionEndDate = protectionEndDate
	o.comment = comment
	return nil
}

// SetArchived flips the archive flag.
func (o *Order) SetArchived(archived bool) {
	o.archived = archived
}

// MarkDeleted stamps the soft-delete timestamp. Used by the Deletion
// Resolver when the order's items still share a parcel with another order.
func (o *Order) MarkDeleted(now time.Time) {
	t := now.UTC()
	o.deletedAt = &t
}

// RecalculateTotals recomputes price_original from the current items plus
// shipping and customs, and price_final_base from the frozen rate.
// Idempotent: calling it twice without intervening changes yields the same
// totals.
func (o *Order) RecalculateTotals() {
	o.recalculateTotals()
}

// recalculateTotals applies the recompute rule:
// items_subtotal + shipping + customs, then the frozen rate, half-up to 2dp.
func (o *Order) recalculateTotals() {
	subtotal := kernel.ZeroMoney()
	for _, item := range o.items {
		subtotal = subtotal.Add(item.subtotal())
	}
	if o.shippingCost != nil {
		subtotal = subtotal.Add(*o.shippingCost)
	}
	if o.customsCost != nil {
		subtotal = subtotal.Add(*o.customsCost)
	}

	o.priceOriginal = subtotal
	o.priceFinalBase = o.exchangeRateFrozen.Apply(subtotal)
}

func (o *Order) ensureMutable() error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.IsDeleted() {
		return ErrOrderIsDeleted
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setPlatform(platform string) error {
	if platform == "" {
		return errs.NewValueIsRequiredError("platform")
	}
	o.platform = platform
	return nil
}

func (o *Order) setExternalNumber(externalNumber string) error {
	if externalNumber == "" {
		return errs.NewValueIsRequiredError("external order number")
	}
	o.externalNumber = externalNumber
	return nil
}

func (o *Order) setOrderDate(orderDate time.Time) error {
	if orderDate.IsZero() {
		return errs.NewValueIsRequiredError("order date")
	}
	o.orderDate = orderDate
	return nil
}

func (o *Order) setPriceOriginal(price kernel.Money) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidError("price original")
	}
	o.priceOriginal = price
	return nil
}

func (o *Order) setCurrencyOriginal(currency kernel.Currency) error {
	if err := currency.Validate(); err != nil {
		return err
	}
	o.currencyOriginal = currency
	return nil
}

func (o *Order) setExchangeRateFrozen(rate kernel.ExchangeRate) error {
	if err := rate.Validate(); err != nil {
		return err
	}
	o.exchangeRateFrozen = rate
	return nil
}
