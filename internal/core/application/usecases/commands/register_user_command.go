package commands

import (
	"errors"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/pkg/guard"
)

var (
	ErrRegisterUserCommandIsNotConstructed = errors.New(
		"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
	)
	ErrEmailIsRequired    = errors.New("email is required")
	ErrPasswordIsTooShort = errors.New("password must be at least 8 characters")
)

const minPasswordLength = 8

// RegisterUserCommand represents a request to register a new account.
// Carries the plaintext password; hashing happens in the handler.
//
// Example:
//
//	userID := kernel.NewUUID()
//	rub, _ := kernel.NewCurrency("RUB")
//	cmd, err := NewRegisterUserCommand(userID, "alice@example.com", "s3cret-pass", rub)
//	if err != nil {
//	    return fmt.Errorf("invalid registration data: %w", err)
//	}
//
//	handler := NewRegisterUserCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("registration failed: %w", err)
//	}
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	userID       kernel.UUID
	email        string
	password     string
	baseCurrency kernel.Currency

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand creates a command to register a new account.
// Validates that the user ID and base currency are valid, the email is not
// empty, and the password meets the minimum length.
func NewRegisterUserCommand(
	userID kernel.UUID,
	email string,
	password string,
	baseCurrency kernel.Currency,
) (RegisterUserCommand, error) {
	cmd := RegisterUserCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setEmail(email),
		cmd.setPassword(password),
		cmd.setBaseCurrency(baseCurrency),
	); err != nil {
		return RegisterUserCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

// UserID returns the identifier for the new account.
func (c RegisterUserCommand) UserID() kernel.UUID {
	return c.userID
}

// Email returns the registration email.
func (c RegisterUserCommand) Email() string {
	return c.email
}

// Password returns the plaintext password to be hashed.
func (c RegisterUserCommand) Password() string {
	return c.password
}

// BaseCurrency returns the account's reporting currency.
func (c RegisterUserCommand) BaseCurrency() kernel.Currency {
	return c.baseCurrency
}

func (c *RegisterUserCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *RegisterUserCommand) setEmail(email string) error {
	if email == "" {
		return ErrEmailIsRequired
	}

	c.email = email
	return nil
}

func (c *RegisterUserCommand) setPassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordIsTooShort
	}

	c.password = password
	return nil
}

func (c *RegisterUserCommand) setBaseCurrency(currency kernel.Currency) error {
	if err := currency.Validate(); err != nil {
		return err
	}

	c.baseCurrency = currency
	return nil
}
