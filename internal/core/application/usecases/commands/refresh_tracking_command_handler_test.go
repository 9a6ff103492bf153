package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"parceltracker/internal/core/application/usecases/commands"
	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/core/domain/model/parcel"
	"parceltracker/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTrackParcelRepository struct{ mock.Mock }

func (m *MockTrackParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockTrackParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockTrackParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockTrackParcelRepository) GetAllActive(ctx context.Context) ([]*parcel.Parcel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockTrackParcelRepository) Remove(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTrackParcelRepository) RemoveAllocation(ctx context.Context, allocationID kernel.UUID) error {
	args := m.Called(ctx, allocationID)
	return args.Error(0)
}

type MockTrackingProvider struct{ mock.Mock }

func (m *MockTrackingProvider) Fetch(
	ctx context.Context, trackingNumber, carrierSlug string,
) (ports.TrackingEvent, error) {
	args := m.Called(ctx, trackingNumber, carrierSlug)
	return args.Get(0).(ports.TrackingEvent), args.Error(1)
}

type MockTrackUoW struct {
	mock.Mock
	parcelRepo *MockTrackParcelRepository
}

func (m *MockTrackUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTrackUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTrackUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTrackUoW) ParcelRepository() ports.ParcelRepository {
	return m.parcelRepo
}

type MockTrackUoWFactory struct {
	uow *MockTrackUoW
}

func (f *MockTrackUoWFactory) Create() commands.ParcelUoW {
	return f.uow
}

func makeActiveParcel(t *testing.T, trackingNumber string) *parcel.Parcel {
	t.Helper()

	aggregate, err := parcel.NewParcel(
		kernel.NewUUID(),
		kernel.NewUUID(),
		trackingNumber,
		"cainiao",
		"",
	)
	require.NoError(t, err)
	return aggregate
}

func TestRefreshTrackingCommandHandler_Handle_StampsStatuses(t *testing.T) {
	ctx := t.Context()

	first := makeActiveParcel(t, "RB111111111CN")
	second := makeActiveParcel(t, "RB222222222CN")
	occurredAt := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	parcelRepo := new(MockTrackParcelRepository)
	provider := new(MockTrackingProvider)
	uow := &MockTrackUoW{parcelRepo: parcelRepo}
	factory := &MockTrackUoWFactory{uow: uow}

	uow.On("Begin", ctx).Return(nil).Once()
	parcelRepo.On("GetAllActive", ctx).Return([]*parcel.Parcel{first, second}, nil).Once()
	provider.On("Fetch", ctx, "RB111111111CN", "cainiao").
		Return(ports.TrackingEvent{Status: parcel.StatusInTransit, OccurredAt: occurredAt}, nil).Once()
	parcelRepo.On("Update", ctx, first).Return(nil).Once()
	provider.On("Fetch", ctx, "RB222222222CN", "cainiao").
		Return(ports.TrackingEvent{Status: parcel.StatusDelivered, OccurredAt: occurredAt}, nil).Once()
	parcelRepo.On("Update", ctx, second).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewRefreshTrackingCommandHandler(factory, provider, discardLogger())
	cmd := commands.NewRefreshTrackingCommand()

	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.StatusInTransit, first.Status())
	assert.Equal(t, parcel.StatusDelivered, second.Status())
	require.NotNil(t, first.TrackingUpdatedAt())
	assert.True(t, first.TrackingUpdatedAt().Equal(occurredAt))
	parcelRepo.AssertExpectations(t)
	provider.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRefreshTrackingCommandHandler_Handle_LookupFailureSkipsParcel(t *testing.T) {
	ctx := t.Context()

	dead := makeActiveParcel(t, "DEAD00000000CN")
	alive := makeActiveParcel(t, "RB333333333CN")
	occurredAt := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	parcelRepo := new(MockTrackParcelRepository)
	provider := new(MockTrackingProvider)
	uow := &MockTrackUoW{parcelRepo: parcelRepo}
	factory := &MockTrackUoWFactory{uow: uow}

	uow.On("Begin", ctx).Return(nil).Once()
	parcelRepo.On("GetAllActive", ctx).Return([]*parcel.Parcel{dead, alive}, nil).Once()
	provider.On("Fetch", ctx, "DEAD00000000CN", "cainiao").
		Return(ports.TrackingEvent{}, errors.New("carrier timeout")).Once()
	provider.On("Fetch", ctx, "RB333333333CN", "cainiao").
		Return(ports.TrackingEvent{Status: parcel.StatusPickUpReady, OccurredAt: occurredAt}, nil).Once()
	parcelRepo.On("Update", ctx, alive).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewRefreshTrackingCommandHandler(factory, provider, discardLogger())
	cmd := commands.NewRefreshTrackingCommand()

	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, parcel.StatusCreated, dead.Status())
	assert.Equal(t, parcel.StatusPickUpReady, alive.Status())
	parcelRepo.AssertNotCalled(t, "Update", ctx, dead)
	parcelRepo.AssertExpectations(t)
	provider.AssertExpectations(t)
	uow.AssertExpectations(t)
}
