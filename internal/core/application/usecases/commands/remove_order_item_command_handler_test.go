package commands_test

import (
	"testing"

	"parceltracker/internal/core/application/usecases/commands"
	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRemoveOrderItemCommandHandler_Handle_RemovesItemAndRecomputesTotal(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	itemID := kernel.NewUUID()
	testOrder := makeOrderWithItem(t, userID, itemID, 3)

	orderRepo := new(MockAllocOrderRepository)
	ledger := new(MockAllocLedgerReader)
	uow := new(MockAllocUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetWithItemLock", ctx, itemID).Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAllocUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewRemoveOrderItemCommand(testOrder.ID(), userID, itemID)
	require.NoError(t, err)

	handler := commands.NewRemoveOrderItemCommandHandler(factory)
	require.NoError(t, handler.Handle(ctx, cmd))

	require.Empty(t, testOrder.Items())
	require.Equal(t, "0.00", testOrder.PriceOriginal().String())
	// ledger rows cascade with the item; removal never consults the ledger
	ledger.AssertNotCalled(t, "HasAllocationsForItems", mock.Anything, mock.Anything)
	orderRepo.AssertExpectations(t)
}

func TestRemoveOrderItemCommandHandler_Handle_WrongOrderReturnsNotFound(t *testing.T) {
	ctx := t.Context()
	userID := kernel.NewUUID()
	itemID := kernel.NewUUID()
	testOrder := makeOrderWithItem(t, userID, itemID, 3)

	orderRepo := new(MockAllocOrderRepository)
	uow := new(MockAllocUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetWithItemLock", ctx, itemID).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAllocUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewRemoveOrderItemCommand(kernel.NewUUID(), userID, itemID)
	require.NoError(t, err)

	handler := commands.NewRemoveOrderItemCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Len(t, testOrder.Items(), 1)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
