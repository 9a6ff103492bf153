package user_test

import (
	"testing"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/core/domain/model/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCurrency(t *testing.T, code string) kernel.Currency {
	t.Helper()
	c, err := kernel.NewCurrency(code)
	require.NoError(t, err)
	return c
}

func TestNewUser(t *testing.T) {
	u, err := user.NewUser(kernel.NewUUID(), "Alice@Example.COM", "argon2id$hash", mustCurrency(t, "RUB"))
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", u.Email())
	assert.Equal(t, "argon2id$hash", u.PasswordHash())
	assert.Equal(t, "RUB", u.BaseCurrency().Code())
	assert.NoError(t, u.Validate())
}

func TestNewUserInvalid(t *testing.T) {
	rub := mustCurrency(t, "RUB")

	_, err := user.NewUser(kernel.NewUUID(), "not-an-email", "hash", rub)
	assert.Error(t, err)

	_, err = user.NewUser(kernel.NewUUID(), "a@b.c", "", rub)
	assert.Error(t, err)

	_, err = user.NewUser(kernel.UUID{}, "a@b.c", "hash", rub)
	assert.Error(t, err)
}

func TestUserChangeBaseCurrency(t *testing.T) {
	u, err := user.NewUser(kernel.NewUUID(), "a@b.c", "hash", mustCurrency(t, "RUB"))
	require.NoError(t, err)

	require.NoError(t, u.ChangeBaseCurrency(mustCurrency(t, "usd")))
	assert.Equal(t, "USD", u.BaseCurrency().Code())
}

func TestUserValidate(t *testing.T) {
	var u *user.User
	assert.ErrorIs(t, u.Validate(), user.ErrUserIsNotConstructed)
	assert.ErrorIs(t, (&user.User{}).Validate(), user.ErrUserIsNotConstructed)
}
