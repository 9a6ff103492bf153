package commands_test

import (
	"context"
	"testing"
	"time"

	"parceltracker/internal/core/application/usecases/commands"
	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/core/domain/model/order"
	"parceltracker/internal/core/domain/model/parcel"
	"parceltracker/internal/core/domain/services"
	"parceltracker/internal/core/ports"
	"parceltracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAllocOrderRepository struct{ mock.Mock }

func (m *MockAllocOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockAllocOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockAllocOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockAllocOrderRepository) GetWithItemLock(ctx context.Context, itemID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockAllocOrderRepository) Remove(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAllocParcelRepository struct{ mock.Mock }

func (m *MockAllocParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockAllocParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockAllocParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockAllocParcelRepository) GetAllActive(ctx context.Context) ([]*parcel.Parcel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockAllocParcelRepository) Remove(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAllocParcelRepository) RemoveAllocation(ctx context.Context, allocationID kernel.UUID) error {
	args := m.Called(ctx, allocationID)
	return args.Error(0)
}

type MockAllocLedgerReader struct{ mock.Mock }

func (m *MockAllocLedgerReader) SumAllocated(
	ctx context.Context, orderItemID kernel.UUID, excludeParcelID *kernel.UUID,
) (int, error) {
	args := m.Called(ctx, orderItemID, excludeParcelID)
	return args.Int(0), args.Error(1)
}

func (m *MockAllocLedgerReader) ParcelsHoldingItems(
	ctx context.Context, orderItemIDs []kernel.UUID,
) ([]services.ParcelOwnership, error) {
	args := m.Called(ctx, orderItemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.ParcelOwnership), args.Error(1)
}

func (m *MockAllocLedgerReader) HasAllocationsForItems(
	ctx context.Context, orderItemIDs []kernel.UUID,
) (bool, error) {
	args := m.Called(ctx, orderItemIDs)
	return args.Bool(0), args.Error(1)
}

type MockAllocUoW struct{ mock.Mock }

func (m *MockAllocUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAllocUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAllocUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAllocUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockAllocUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockAllocUoW) LedgerReader() ports.LedgerReader {
	args := m.Called()
	return args.Get(0).(ports.LedgerReader)
}

type MockAllocUoWFactory struct{ mock.Mock }

func (m *MockAllocUoWFactory) Create() commands.LedgerUoW {
	args := m.Called()
	return args.Get(0).(commands.LedgerUoW)
}

func makeOrderWithItem(t *testing.T, userID, itemID kernel.UUID, quantityOrdered int) *order.Order {
	t.Helper()

	usd, err := kernel.NewCurrency("USD")
	require.NoError(t, err)
	price, err := kernel.NewMoneyFromString("10.00")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), userID, "AliExpress", "8123456789",
		time.Now(), nil, price, usd, kernel.UnitExchangeRate(), false, "",
	)
	require.NoError(t, err)

	item, err := order.NewItem(itemID, "cable", nil, quantityOrdered, &price, "")
	require.NoError(t, err)
	require.NoError(t, o.AddItem(item))

	return o
}

func makeParcel(t *testing.T, parcelID, userID kernel.UUID) *parcel.Parcel {
	t.Helper()

	p, err := parcel.NewParcel(parcelID, userID, "RB123456785SG", "sgpost", "")
	require.NoError(t, err)
	return p
}

func TestAllocateItemCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	parcelID := kernel.NewUUID()
	itemID := kernel.NewUUID()

	testOrder := makeOrderWithItem(t, userID, itemID, 5)
	testParcel := makeParcel(t, parcelID, userID)

	orderRepo := new(MockAllocOrderRepository)
	parcelRepo := new(MockAllocParcelRepository)
	ledger := new(MockAllocLedgerReader)
	uow := new(MockAllocUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetWithItemLock", ctx, itemID).Return(testOrder, nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, parcelID).Return(testParcel, nil).Once(),
		uow.On("LedgerReader").Return(ledger).Once(),
		ledger.On("SumAllocated", ctx, itemID, &parcelID).Return(3, nil).Once(),
		parcelRepo.On("Update", ctx, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAllocUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewAllocateItemCommand(userID, parcelID, itemID, 2)
	require.NoError(t, err)

	handler := commands.NewAllocateItemCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, testParcel.AllocatedQuantityFor(itemID))
	orderRepo.AssertExpectations(t)
	parcelRepo.AssertExpectations(t)
	ledger.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAllocateItemCommandHandler_Handle_OverAllocation(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	parcelID := kernel.NewUUID()
	itemID := kernel.NewUUID()

	testOrder := makeOrderWithItem(t, userID, itemID, 5)
	testParcel := makeParcel(t, parcelID, userID)

	orderRepo := new(MockAllocOrderRepository)
	parcelRepo := new(MockAllocParcelRepository)
	ledger := new(MockAllocLedgerReader)
	uow := new(MockAllocUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetWithItemLock", ctx, itemID).Return(testOrder, nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, parcelID).Return(testParcel, nil).Once(),
		uow.On("LedgerReader").Return(ledger).Once(),
		// 4 elsewhere + 2 requested > 5 ordered
		ledger.On("SumAllocated", ctx, itemID, &parcelID).Return(4, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAllocUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewAllocateItemCommand(userID, parcelID, itemID, 2)
	require.NoError(t, err)

	handler := commands.NewAllocateItemCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidQuantity)
	assert.Equal(t, 0, testParcel.AllocatedQuantityFor(itemID))
	parcelRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAllocateItemCommandHandler_Handle_SameQuantityIsNoOp(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	parcelID := kernel.NewUUID()
	itemID := kernel.NewUUID()

	testOrder := makeOrderWithItem(t, userID, itemID, 5)
	testParcel := makeParcel(t, parcelID, userID)
	_, changed, err := testParcel.Allocate(itemID, 2)
	require.NoError(t, err)
	require.True(t, changed)

	orderRepo := new(MockAllocOrderRepository)
	parcelRepo := new(MockAllocParcelRepository)
	ledger := new(MockAllocLedgerReader)
	uow := new(MockAllocUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetWithItemLock", ctx, itemID).Return(testOrder, nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, parcelID).Return(testParcel, nil).Once(),
		uow.On("LedgerReader").Return(ledger).Once(),
		ledger.On("SumAllocated", ctx, itemID, &parcelID).Return(0, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAllocUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewAllocateItemCommand(userID, parcelID, itemID, 2)
	require.NoError(t, err)

	handler := commands.NewAllocateItemCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	parcelRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestAllocateItemCommandHandler_Handle_ForeignParcel(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	parcelID := kernel.NewUUID()
	itemID := kernel.NewUUID()

	testOrder := makeOrderWithItem(t, userID, itemID, 5)
	foreignParcel := makeParcel(t, parcelID, kernel.NewUUID())

	orderRepo := new(MockAllocOrderRepository)
	parcelRepo := new(MockAllocParcelRepository)
	uow := new(MockAllocUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetWithItemLock", ctx, itemID).Return(testOrder, nil).Once(),
		uow.On("ParcelRepository").Return(parcelRepo).Once(),
		parcelRepo.On("Get", ctx, parcelID).Return(foreignParcel, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAllocUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewAllocateItemCommand(userID, parcelID, itemID, 1)
	require.NoError(t, err)

	handler := commands.NewAllocateItemCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)
}

func TestAllocateItemCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AllocateItemCommand{} // not constructed properly

	factory := new(MockAllocUoWFactory)
	handler := commands.NewAllocateItemCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAllocateItemCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
