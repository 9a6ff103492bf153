package commands

import (
	"errors"
	"time"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrPlatformIsRequired  = errors.New("platform is required")
	ErrOrderDateIsRequired = errors.New("order date is required")
	ErrPriceIsNegative     = errors.New("price must not be negative")
)

// CreateOrderCommand represents a request to record a new purchase.
//
// The command carries the price paid in the merchant's currency and,
// optionally, an explicit exchange rate. How the rate gets frozen on the
// order is the handler's concern; see CreateOrderCommandHandler.
//
// Example:
//
//	usd, _ := kernel.NewCurrency("USD")
//	price, _ := kernel.NewMoneyFromString("59.97")
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), userID, "AliExpress", "8123456789012345",
//	    time.Now(), nil, price, usd, nil, false, "",
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, rateResolver, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	userID            kernel.UUID
	platform          string
	externalNumber    string
	orderDate         time.Time
	protectionEndDate *time.Time
	priceOriginal     kernel.Money
	currencyOriginal  kernel.Currency
	explicitRate      *kernel.ExchangeRate
	priceEstimated    bool
	comment           string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to record a new purchase.
// explicitRate may be nil, in which case the handler resolves a live rate.
// priceEstimated marks an explicitly supplied rate as approximate; it is
// ignored when no explicit rate is given, since the handler derives the flag
// from how the rate was obtained.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	userID kernel.UUID,
	platform string,
	externalNumber string,
	orderDate time.Time,
	protectionEndDate *time.Time,
	priceOriginal kernel.Money,
	currencyOriginal kernel.Currency,
	explicitRate *kernel.ExchangeRate,
	priceEstimated bool,
	comment string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		protectionEndDate: protectionEndDate,
		priceEstimated:    priceEstimated,
		comment:           comment,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
		cmd.setPlatform(platform),
		cmd.setExternalNumber(externalNumber),
		cmd.setOrderDate(orderDate),
		cmd.setPriceOriginal(priceOriginal),
		cmd.setCurrencyOriginal(currencyOriginal),
		cmd.setExplicitRate(explicitRate),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the identifier of the owning user.
func (c CreateOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// Platform returns the merchant platform identifier.
func (c CreateOrderCommand) Platform() string {
	return c.platform
}

// ExternalNumber returns the order number on the merchant platform.
func (c CreateOrderCommand) ExternalNumber() string {
	return c.externalNumber
}

// OrderDate returns when the purchase was made.
func (c CreateOrderCommand) OrderDate() time.Time {
	return c.orderDate
}

// ProtectionEndDate returns the buyer-protection deadline, or nil.
func (c CreateOrderCommand) ProtectionEndDate() *time.Time {
	return c.protectionEndDate
}

// PriceOriginal returns the total paid in the merchant's currency.
func (c CreateOrderCommand) PriceOriginal() kernel.Money {
	return c.priceOriginal
}

// CurrencyOriginal returns the merchant's currency.
func (c CreateOrderCommand) CurrencyOriginal() kernel.Currency {
	return c.currencyOriginal
}

// ExplicitRate returns the caller-supplied exchange rate, or nil.
func (c CreateOrderCommand) ExplicitRate() *kernel.ExchangeRate {
	return c.explicitRate
}

// PriceEstimated reports whether the caller marked the converted total
// approximate. Only meaningful together with an explicit rate.
func (c CreateOrderCommand) PriceEstimated() bool {
	return c.priceEstimated
}

// Comment returns the free-form note on the order.
func (c CreateOrderCommand) Comment() string {
	return c.comment
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setPlatform(platform string) error {
	if platform == "" {
		return ErrPlatformIsRequired
	}

	c.platform = platform
	return nil
}

func (c *CreateOrderCommand) setExternalNumber(externalNumber string) error {
	if externalNumber == "" {
		return errors.New("external order number is required")
	}

	c.externalNumber = externalNumber
	return nil
}

func (c *CreateOrderCommand) setOrderDate(orderDate time.Time) error {
	if orderDate.IsZero() {
		return ErrOrderDateIsRequired
	}

	c.orderDate = orderDate
	return nil
}

func (c *CreateOrderCommand) setPriceOriginal(price kernel.Money) error {
	if price.IsNegative() {
		return ErrPriceIsNegative
	}

	c.priceOriginal = price
	return nil
}

func (c *CreateOrderCommand) setCurrencyOriginal(currency kernel.Currency) error {
	if err := currency.Validate(); err != nil {
		return err
	}

	c.currencyOriginal = currency
	return nil
}

func (c *CreateOrderCommand) setExplicitRate(rate *kernel.ExchangeRate) error {
	if rate != nil {
		if err := rate.Validate(); err != nil {
			return err
		}
	}

	c.explicitRate = rate
	return nil
}
