package kernel

import (
	"fmt"
	"strings"

	"parceltracker/internal/pkg/errs"
)

// Currency is a three-letter ISO 4217 currency code value object.
// Codes are normalized to upper case on construction. The zero value
// is invalid and fails Validate.
type Currency struct {
	code string
}

// NewCurrency creates a Currency from a three-letter code.
// The code is upper-cased; anything that is not exactly three ASCII
// letters is rejected.
func NewCurrency(code string) (Currency, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) != 3 {
		return Currency{}, errs.NewValueIsInvalidErrorWithCause(
			"currency",
			fmt.Errorf("%q is not a three-letter currency code", code),
		)
	}
	for _, r := range normalized {
		if r < 'A' || r > 'Z' {
			return Currency{}, errs.NewValueIsInvalidErrorWithCause(
				"currency",
				fmt.Errorf("%q is not a three-letter currency code", code),
			)
		}
	}
	return Currency{code: normalized}, nil
}

// Code returns the upper-case three-letter code.
func (c Currency) Code() string {
	return c.code
}

// IsEqual compares two currency codes.
func (c Currency) IsEqual(other Currency) bool {
	return c.code == other.code
}

// Validate checks that the currency was constructed through NewCurrency.
func (c Currency) Validate() error {
	if c.code == "" {
		return errs.NewValueIsRequiredError("currency must be created via NewCurrency")
	}
	return nil
}

// String returns the three-letter code.
func (c Currency) String() string {
	return c.code
}
