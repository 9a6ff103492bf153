package commands

import (
	"context"

	"parceltracker/internal/core/domain/model/user"

	"golang.org/x/crypto/bcrypt"
)

// RegisterUserCommandHandler handles the business logic for account
// registration: password hashing and persistence. Email uniqueness is
// enforced by the repository and surfaces as a conflict error.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
}

// NewRegisterUserCommandHandler creates a handler for account registration.
func NewRegisterUserCommandHandler(uowFactory UserUoWFactory) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command. The plaintext password is
// hashed with bcrypt before it reaches the domain or storage.
func (h *RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password()), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	account, err := user.NewUser(cmd.UserID(), cmd.Email(), string(hash), cmd.BaseCurrency())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UserRepository().Add(ctx, account); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
