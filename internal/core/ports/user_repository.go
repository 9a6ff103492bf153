package ports

import (
	"context"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {
	// Add persists a new account. Returns a conflict error when the email
	// is already registered.
	Add(ctx context.Context, aggregate *user.User) error

	// Update persists changes to an existing account.
	Update(ctx context.Context, aggregate *user.User) error

	// Get retrieves an account by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByEmail retrieves an account by its lower-cased email.
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
