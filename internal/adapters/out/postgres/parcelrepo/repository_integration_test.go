package parcelrepo_test

import (
	"context"
	"testing"
	"time"

	"parceltracker/internal/adapters/out/postgres/orderrepo"
	"parceltracker/internal/adapters/out/postgres/parcelrepo"
	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/core/domain/model/order"
	"parceltracker/internal/core/domain/model/parcel"
	"parceltracker/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// ParcelRepositoryIntegrationTestSuite provides integration tests for
// ParcelRepository using PostgreSQL containers to verify persistence behavior.
type ParcelRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *parcelrepo.GormParcelRepository
	tracker    *MockAggregateTracker
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.ItemDTO{},
		&parcelrepo.ParcelDTO{},
		&parcelrepo.AllocationDTO{},
	))
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE parcel_items, parcels, order_items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = parcelrepo.NewGormParcelRepository(suite.db, suite.tracker)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAdd_ValidParcel_Success() {
	ctx := context.Background()

	aggregate := suite.createTestParcel()
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()

	err := suite.repository.Add(ctx, aggregate)
	suite.Require().NoError(err)

	suite.assertParcelCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdate_Allocation_RoundTrips() {
	ctx := context.Background()

	aggregate := suite.createTestParcel()
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	orderItemID := suite.createOrderItemRow()
	_, changed, err := aggregate.Allocate(orderItemID, 3)
	suite.Require().NoError(err)
	suite.True(changed)
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(3, retrieved.AllocatedQuantityFor(orderItemID))
	suite.assertAllocationCount(1)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdate_RepeatedAllocation_UpdatesQuantityInPlace() {
	ctx := context.Background()

	aggregate := suite.createTestParcel()
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Times(3)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	orderItemID := suite.createOrderItemRow()
	_, _, err := aggregate.Allocate(orderItemID, 3)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	_, changed, err := aggregate.Allocate(orderItemID, 5)
	suite.Require().NoError(err)
	suite.True(changed)
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(5, retrieved.AllocatedQuantityFor(orderItemID))
	suite.assertAllocationCount(1)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestRemoveAllocation_DeletesSingleRow() {
	ctx := context.Background()

	aggregate := suite.createTestParcel()
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	orderItemID := suite.createOrderItemRow()
	allocation, _, err := aggregate.Allocate(orderItemID, 2)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	suite.Require().NoError(suite.repository.RemoveAllocation(ctx, allocation.ID()))
	suite.assertAllocationCount(0)

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(0, retrieved.AllocatedQuantityFor(orderItemID))
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestItemRowDeletion_CascadesLedgerRows() {
	ctx := context.Background()

	aggregate := suite.createTestParcel()
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	orderItemID := suite.createOrderItemRow()
	_, _, err := aggregate.Allocate(orderItemID, 2)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))
	suite.assertAllocationCount(1)

	// the foreign key carries the deletion down to the ledger
	suite.Require().NoError(suite.db.Delete(&orderrepo.ItemDTO{}, "id = ?", orderItemID.Bytes()).Error)
	suite.assertAllocationCount(0)

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(0, retrieved.AllocatedQuantityFor(orderItemID))
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestRemove_DeletesParcelAndLedgerRows() {
	ctx := context.Background()

	aggregate := suite.createTestParcel()
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	_, _, err := aggregate.Allocate(suite.createOrderItemRow(), 2)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	suite.Require().NoError(suite.repository.Remove(ctx, aggregate.ID()))
	suite.assertParcelCount(0)
	suite.assertAllocationCount(0)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGetAllActive_ExcludesTerminalAndArchived() {
	ctx := context.Background()

	active := suite.createTestParcel()
	suite.tracker.On("TrackAggregate", active.ID(), active).Once()
	suite.Require().NoError(suite.repository.Add(ctx, active))

	delivered := suite.createTestParcel()
	suite.Require().NoError(delivered.SetStatus(parcel.StatusDelivered))
	suite.tracker.On("TrackAggregate", delivered.ID(), delivered).Once()
	suite.Require().NoError(suite.repository.Add(ctx, delivered))

	archived := suite.createTestParcel()
	archived.SetArchived(true)
	suite.tracker.On("TrackAggregate", archived.ID(), archived).Once()
	suite.Require().NoError(suite.repository.Add(ctx, archived))

	parcels, err := suite.repository.GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(parcels, 1)
	suite.Equal(active.ID(), parcels[0].ID())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGet_WeightAndTracking_RoundTrip() {
	ctx := context.Background()

	aggregate := suite.createTestParcel()
	weight, err := kernel.NewWeight(decimal.RequireFromString("1.250"))
	suite.Require().NoError(err)
	aggregate.SetWeight(&weight)

	updatedAt := time.Now().Truncate(time.Second)
	suite.Require().NoError(aggregate.RecordTrackingUpdate(parcel.StatusInTransit, updatedAt))

	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrieved.Weight())
	suite.Equal("1.250", retrieved.Weight().String())
	suite.Equal(parcel.StatusInTransit, retrieved.Status())
	suite.Require().NotNil(retrieved.TrackingUpdatedAt())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGet_NonExistentParcel_ReturnsNotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)

	var notFound *errs.ObjectNotFoundError
	suite.ErrorAs(err, &notFound)
}

// createOrderItemRow persists a minimal order item so allocations have a row
// to reference through the foreign key.
func (suite *ParcelRepositoryIntegrationTestSuite) createOrderItemRow() kernel.UUID {
	itemID := kernel.NewUUID()
	row := orderrepo.ItemDTO{
		ID:              itemID.Bytes(),
		OrderID:         kernel.NewUUID().Bytes(),
		Name:            "usb cable",
		QuantityOrdered: 10,
		Status:          string(order.ItemStatusShipped),
	}
	suite.Require().NoError(suite.db.Create(&row).Error)
	return itemID
}

func (suite *ParcelRepositoryIntegrationTestSuite) createTestParcel() *parcel.Parcel {
	aggregate, err := parcel.NewParcel(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"RB123456789CN",
		"cainiao",
		"spring haul",
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *ParcelRepositoryIntegrationTestSuite) assertParcelCount(expected int) {
	var count int64
	err := suite.db.Model(&parcelrepo.ParcelDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func (suite *ParcelRepositoryIntegrationTestSuite) assertAllocationCount(expected int) {
	var count int64
	err := suite.db.Model(&parcelrepo.AllocationDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestParcelRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ParcelRepositoryIntegrationTestSuite))
}
