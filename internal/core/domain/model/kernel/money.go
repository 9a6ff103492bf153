package kernel

import (
	"fmt"

	"parceltracker/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Decimal scales mandated for the corresponding value objects.
const (
	MoneyScale  = 2
	RateScale   = 6
	WeightScale = 3
)

// Money is an exact decimal monetary amount with two decimal places.
// Construction rounds half-up (ties away from zero), mirroring the
// NUMERIC(14,2) columns it is persisted to. The zero value is a valid
// zero amount.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money value rounded half-up to two decimal places.
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount.Round(MoneyScale)}
}

// NewMoneyFromString parses a decimal string into a Money value.
// Returns an error for non-numeric input.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d), nil
}

// ZeroMoney returns the zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// MulInt returns the amount multiplied by an integer quantity.
func (m Money) MulInt(n int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n)))}
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsEqual compares two amounts for numeric equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the amount formatted with exactly two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

// ExchangeRate is a currency conversion factor with six decimal places.
// A rate converts an original-currency amount into the user's base
// currency: base = original * rate. Rates are strictly positive.
type ExchangeRate struct {
	rate decimal.Decimal
}

// NewExchangeRate creates an ExchangeRate rounded half-up to six decimal
// places. Returns an error for zero or negative rates.
func NewExchangeRate(rate decimal.Decimal) (ExchangeRate, error) {
	if !rate.IsPositive() {
		return ExchangeRate{}, errs.NewValueIsInvalidErrorWithCause(
			"exchange rate",
			fmt.Errorf("%s is not greater than 0", rate.String()),
		)
	}
	return ExchangeRate{rate: rate.Round(RateScale)}, nil
}

// UnitExchangeRate returns the identity rate 1.0, used for same-currency
// orders and as the fallback when a live rate lookup fails.
func UnitExchangeRate() ExchangeRate {
	return ExchangeRate{rate: decimal.NewFromInt(1)}
}

// Apply converts an amount with this rate, rounding the result half-up
// to two decimal places.
func (r ExchangeRate) Apply(m Money) Money {
	return NewMoney(m.Decimal().Mul(r.rate))
}

// Decimal returns the underlying decimal value.
func (r ExchangeRate) Decimal() decimal.Decimal {
	return r.rate
}

// Validate checks that the rate was constructed through NewExchangeRate
// or UnitExchangeRate. A zero rate is invalid.
func (r ExchangeRate) Validate() error {
	if !r.rate.IsPositive() {
		return errs.NewValueIsRequiredError("exchange rate must be created via NewExchangeRate")
	}
	return nil
}

// String returns the rate formatted with six decimal places.
func (r ExchangeRate) String() string {
	return r.rate.StringFixed(RateScale)
}

// Weight is a parcel weight in kilograms with three decimal places.
type Weight struct {
	kg decimal.Decimal
}

// NewWeight creates a Weight rounded half-up to three decimal places.
// Returns an error for negative weights.
func NewWeight(kg decimal.Decimal) (Weight, error) {
	if kg.IsNegative() {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause(
			"weight",
			fmt.Errorf("%s is negative", kg.String()),
		)
	}
	return Weight{kg: kg.Round(WeightScale)}, nil
}

// Decimal returns the underlying decimal value.
func (w Weight) Decimal() decimal.Decimal {
	return w.kg
}

// String returns the weight formatted with three decimal places.
func (w Weight) String() string {
	return w.kg.StringFixed(WeightScale)
}
