package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"parceltracker/internal/core/application/usecases/commands"
	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/core/domain/model/order"
	"parceltracker/internal/core/domain/model/user"
	"parceltracker/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCreateOrderRepository struct{ mock.Mock }

func (m *MockCreateOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockCreateOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockCreateOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockCreateOrderRepository) GetWithItemLock(ctx context.Context, itemID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockCreateOrderRepository) Remove(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCreateUserRepository struct{ mock.Mock }

func (m *MockCreateUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockCreateUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockCreateUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockCreateUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockRateResolver struct{ mock.Mock }

func (m *MockRateResolver) Resolve(ctx context.Context, from, to kernel.Currency) (kernel.ExchangeRate, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(kernel.ExchangeRate), args.Error(1)
}

func (m *MockRateResolver) ClearCache() {
	m.Called()
}

type MockCreateOrderUoW struct{ mock.Mock }

func (m *MockCreateOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCreateOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCreateOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCreateOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockCreateOrderUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockCreateOrderUoWFactory struct{ mock.Mock }

func (m *MockCreateOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func makeAccount(t *testing.T, userID kernel.UUID, baseCurrency string) *user.User {
	t.Helper()

	cur, err := kernel.NewCurrency(baseCurrency)
	require.NoError(t, err)
	account, err := user.NewUser(userID, "owner@example.com", "hash", cur)
	require.NoError(t, err)
	return account
}

func makeCreateOrderCommand(
	t *testing.T, userID kernel.UUID, currency string, explicitRate *kernel.ExchangeRate,
) commands.CreateOrderCommand {
	t.Helper()

	cur, err := kernel.NewCurrency(currency)
	require.NoError(t, err)
	price, err := kernel.NewMoneyFromString("100.50")
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), userID, "AliExpress", "8123456789",
		time.Now(), nil, price, cur, explicitRate, false, "",
	)
	require.NoError(t, err)
	return cmd
}

// setupCreateOrderUoW wires a happy-path unit of work and returns a pointer
// that captures the order handed to the repository.
func setupCreateOrderUoW(
	t *testing.T, ctx context.Context, userID kernel.UUID, account *user.User,
) (*MockCreateOrderUoWFactory, **order.Order) {
	t.Helper()

	created := new(*order.Order)
	orderRepo := new(MockCreateOrderRepository)
	userRepo := new(MockCreateUserRepository)
	uow := new(MockCreateOrderUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("UserRepository").Return(userRepo).Once()
	userRepo.On("Get", ctx, userID).Return(account, nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			*created = args.Get(1).(*order.Order)
		}).
		Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, created
}

func TestCreateOrderCommandHandler_Handle_ExplicitRate(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	account := makeAccount(t, userID, "RUB")

	explicit, err := kernel.NewExchangeRate(decimal.RequireFromString("92.45"))
	require.NoError(t, err)
	cmd := makeCreateOrderCommand(t, userID, "USD", &explicit)

	factory, captured := setupCreateOrderUoW(t, ctx, userID, account)
	resolver := new(MockRateResolver)

	handler := commands.NewCreateOrderCommandHandler(factory, resolver, discardLogger())
	require.NoError(t, handler.Handle(ctx, cmd))

	created := *captured
	require.NotNil(t, created)
	assert.False(t, created.IsPriceEstimated())
	assert.Equal(t, "92.450000", created.ExchangeRateFrozen().String())
	assert.Equal(t, "9291.23", created.PriceFinalBase().String())
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_ExplicitRateCallerMarkedEstimated(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	account := makeAccount(t, userID, "RUB")

	explicit, err := kernel.NewExchangeRate(decimal.RequireFromString("92.45"))
	require.NoError(t, err)
	price, err := kernel.NewMoneyFromString("100.50")
	require.NoError(t, err)
	usd, err := kernel.NewCurrency("USD")
	require.NoError(t, err)

	// the caller knows the supplied rate is approximate
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), userID, "AliExpress", "8123456789",
		time.Now(), nil, price, usd, &explicit, true, "",
	)
	require.NoError(t, err)

	factory, captured := setupCreateOrderUoW(t, ctx, userID, account)
	resolver := new(MockRateResolver)

	handler := commands.NewCreateOrderCommandHandler(factory, resolver, discardLogger())
	require.NoError(t, handler.Handle(ctx, cmd))

	created := *captured
	require.NotNil(t, created)
	assert.True(t, created.IsPriceEstimated())
	assert.Equal(t, "92.450000", created.ExchangeRateFrozen().String())
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_SameCurrencyUnitRate(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	account := makeAccount(t, userID, "RUB")
	cmd := makeCreateOrderCommand(t, userID, "RUB", nil)

	factory, captured := setupCreateOrderUoW(t, ctx, userID, account)
	resolver := new(MockRateResolver)

	handler := commands.NewCreateOrderCommandHandler(factory, resolver, discardLogger())
	require.NoError(t, handler.Handle(ctx, cmd))

	created := *captured
	require.NotNil(t, created)
	assert.False(t, created.IsPriceEstimated())
	assert.Equal(t, "100.50", created.PriceFinalBase().String())
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_LiveRate(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	account := makeAccount(t, userID, "RUB")
	cmd := makeCreateOrderCommand(t, userID, "USD", nil)

	factory, captured := setupCreateOrderUoW(t, ctx, userID, account)

	live, err := kernel.NewExchangeRate(decimal.RequireFromString("92.45"))
	require.NoError(t, err)

	resolver := new(MockRateResolver)
	resolver.On("Resolve", ctx, cmd.CurrencyOriginal(), account.BaseCurrency()).
		Return(live, nil).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, resolver, discardLogger())
	require.NoError(t, handler.Handle(ctx, cmd))

	created := *captured
	require.NotNil(t, created)
	assert.True(t, created.IsPriceEstimated())
	assert.Equal(t, "9291.23", created.PriceFinalBase().String())
	resolver.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ResolverFailureFallsBack(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	account := makeAccount(t, userID, "RUB")
	cmd := makeCreateOrderCommand(t, userID, "USD", nil)

	factory, captured := setupCreateOrderUoW(t, ctx, userID, account)

	resolver := new(MockRateResolver)
	resolver.On("Resolve", ctx, cmd.CurrencyOriginal(), account.BaseCurrency()).
		Return(kernel.ExchangeRate{}, errors.New("feed unavailable")).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, resolver, discardLogger())

	// The order must still be created: the rate falls back to 1.0.
	require.NoError(t, handler.Handle(ctx, cmd))

	created := *captured
	require.NotNil(t, created)
	assert.True(t, created.IsPriceEstimated())
	assert.Equal(t, "100.50", created.PriceFinalBase().String())
}
