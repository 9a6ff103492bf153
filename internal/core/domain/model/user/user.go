// Package user provides the account entity owning orders and parcels.
// Authentication itself happens upstream; the domain only needs the verified
// identity and the base reporting currency used to freeze exchange rates.
package user

import (
	"errors"
	"strings"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/pkg/errs"
)

// ErrUserIsNotConstructed is returned when a User instance was not created
// through the NewUser factory method.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User is an account that owns orders and parcels. Deleting a user cascades
// to everything it owns. The password hash is opaque to the domain; hashing
// and verification belong to the authentication layer.
type User struct {
	id           kernel.UUID
	email        string
	passwordHash string
	baseCurrency kernel.Currency

	isConstructed bool
}

// NewUser creates a new account. The email is lower-cased; uniqueness is
// enforced by the repository (duplicate registration surfaces as Conflict).
func NewUser(id kernel.UUID, email, passwordHash string, baseCurrency kernel.Currency) (*User, error) {
	u := &User{isConstructed: true}

	if err := errors.Join(
		u.setID(id),
		u.setEmail(email),
		u.setPasswordHash(passwordHash),
		u.setBaseCurrency(baseCurrency),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser reconstructs an account from persistence.
func RestoreUser(id kernel.UUID, email, passwordHash string, baseCurrency kernel.Currency) (*User, error) {
	return NewUser(id, email, passwordHash, baseCurrency)
}

// Validate ensures the User instance was properly constructed through NewUser.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// ID returns the account's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Email returns the lower-cased account email.
func (u *User) Email() string {
	return u.email
}

// PasswordHash returns the opaque password hash.
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// BaseCurrency returns the reporting currency order totals are converted to.
func (u *User) BaseCurrency() kernel.Currency {
	return u.baseCurrency
}

// ChangeBaseCurrency switches the reporting currency. Existing orders keep
// their frozen rates; only future orders are affected.
func (u *User) ChangeBaseCurrency(currency kernel.Currency) error {
	return u.setBaseCurrency(currency)
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setEmail(email string) error {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" || !strings.Contains(normalized, "@") {
		return errs.NewValueIsInvalidError("email")
	}
	u.email = normalized
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password hash")
	}
	u.passwordHash = hash
	return nil
}

func (u *User) setBaseCurrency(currency kernel.Currency) error {
	if err := currency.Validate(); err != nil {
		return err
	}
	u.baseCurrency = currency
	return nil
}
