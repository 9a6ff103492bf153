package services_test

import (
	"testing"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveNoHoldings(t *testing.T) {
	resolver := services.NewDeletionResolver()

	plan, err := resolver.Resolve(kernel.NewUUID(), nil)
	require.NoError(t, err)

	assert.True(t, plan.HardDelete)
	assert.Empty(t, plan.ExclusiveParcelIDs)
	assert.Empty(t, plan.SharedParcelIDs)
}

func TestResolveAllParcelsExclusive(t *testing.T) {
	resolver := services.NewDeletionResolver()
	orderID := kernel.NewUUID()
	parcelA := kernel.NewUUID()
	parcelB := kernel.NewUUID()

	plan, err := resolver.Resolve(orderID, []services.ParcelOwnership{
		{ParcelID: parcelA, OwnerOrderIDs: []kernel.UUID{orderID}},
		{ParcelID: parcelB, OwnerOrderIDs: []kernel.UUID{orderID}},
	})
	require.NoError(t, err)

	assert.True(t, plan.HardDelete)
	assert.ElementsMatch(t, []kernel.UUID{parcelA, parcelB}, plan.ExclusiveParcelIDs)
	assert.Empty(t, plan.SharedParcelIDs)
}

func TestResolveSharedParcelForcesSoftDelete(t *testing.T) {
	resolver := services.NewDeletionResolver()
	orderID := kernel.NewUUID()
	otherOrderID := kernel.NewUUID()
	exclusiveParcel := kernel.NewUUID()
	sharedParcel := kernel.NewUUID()

	plan, err := resolver.Resolve(orderID, []services.ParcelOwnership{
		{ParcelID: exclusiveParcel, OwnerOrderIDs: []kernel.UUID{orderID}},
		{ParcelID: sharedParcel, OwnerOrderIDs: []kernel.UUID{otherOrderID, orderID}},
	})
	require.NoError(t, err)

	assert.False(t, plan.HardDelete)
	assert.Equal(t, []kernel.UUID{exclusiveParcel}, plan.ExclusiveParcelIDs)
	assert.Equal(t, []kernel.UUID{sharedParcel}, plan.SharedParcelIDs)
}

func TestResolveOnlySharedParcels(t *testing.T) {
	resolver := services.NewDeletionResolver()
	orderID := kernel.NewUUID()

	plan, err := resolver.Resolve(orderID, []services.ParcelOwnership{
		{ParcelID: kernel.NewUUID(), OwnerOrderIDs: []kernel.UUID{orderID, kernel.NewUUID()}},
	})
	require.NoError(t, err)

	assert.False(t, plan.HardDelete)
	assert.Empty(t, plan.ExclusiveParcelIDs)
	assert.Len(t, plan.SharedParcelIDs, 1)
}

func TestResolveRejectsForeignHolding(t *testing.T) {
	resolver := services.NewDeletionResolver()

	// A holding that never references the order under deletion means the
	// snapshot was built for a different order.
	_, err := resolver.Resolve(kernel.NewUUID(), []services.ParcelOwnership{
		{ParcelID: kernel.NewUUID(), OwnerOrderIDs: []kernel.UUID{kernel.NewUUID()}},
	})
	assert.Error(t, err)
}

func TestResolveRejectsInvalidIDs(t *testing.T) {
	resolver := services.NewDeletionResolver()
	orderID := kernel.NewUUID()

	_, err := resolver.Resolve(kernel.UUID{}, nil)
	assert.Error(t, err)

	_, err = resolver.Resolve(orderID, []services.ParcelOwnership{
		{ParcelID: kernel.UUID{}, OwnerOrderIDs: []kernel.UUID{orderID}},
	})
	assert.Error(t, err)
}
