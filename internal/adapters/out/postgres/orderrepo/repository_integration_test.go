package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"parceltracker/internal/adapters/out/postgres/orderrepo"
	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/core/domain/model/order"
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

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers to verify persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items, orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	aggregate := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()

	err := suite.repository.Add(ctx, aggregate)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.assertItemCount(len(aggregate.Items()))
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTripsAllFields() {
	ctx := context.Background()

	original := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.UserID(), retrieved.UserID())
	suite.Equal(original.Platform(), retrieved.Platform())
	suite.Equal(original.ExternalNumber(), retrieved.ExternalNumber())
	suite.Equal(original.PriceOriginal().String(), retrieved.PriceOriginal().String())
	suite.Equal(original.CurrencyOriginal(), retrieved.CurrencyOriginal())
	suite.Equal(original.ExchangeRateFrozen().String(), retrieved.ExchangeRateFrozen().String())
	suite.Equal(original.PriceFinalBase().String(), retrieved.PriceFinalBase().String())
	suite.Equal(original.IsPriceEstimated(), retrieved.IsPriceEstimated())
	suite.False(retrieved.IsDeleted())

	suite.Require().Len(retrieved.Items(), len(original.Items()))
	originalItem := original.Items()[0]
	retrievedItem, err := retrieved.Item(originalItem.ID())
	suite.Require().NoError(err)
	suite.Equal(originalItem.Name(), retrievedItem.Name())
	suite.Equal(originalItem.Tags(), retrievedItem.Tags())
	suite.Equal(originalItem.QuantityOrdered(), retrievedItem.QuantityOrdered())
	suite.Equal(originalItem.Status(), retrievedItem.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)

	var notFound *errs.ObjectNotFoundError
	suite.ErrorAs(err, &notFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_RemovedItem_DeletesRow() {
	ctx := context.Background()

	aggregate := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	itemID := aggregate.Items()[0].ID()
	suite.Require().NoError(aggregate.RemoveItem(itemID))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	suite.assertItemCount(0)

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Empty(retrieved.Items())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_SoftDelete_RoundTrips() {
	ctx := context.Background()

	aggregate := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	aggregate.MarkDeleted(time.Now())
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.IsDeleted())
	suite.NotNil(retrieved.DeletedAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetWithItemLock_ReturnsOwningOrder() {
	ctx := context.Background()

	aggregate := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	itemID := aggregate.Items()[0].ID()

	// Lock in a transaction the way the allocation use case does.
	tx := suite.db.Begin()
	suite.Require().NoError(tx.Error)
	defer tx.Rollback()

	txRepo := orderrepo.NewGormOrderRepository(tx, suite.tracker)
	retrieved, err := txRepo.GetWithItemLock(ctx, itemID)
	suite.Require().NoError(err)
	suite.Equal(aggregate.ID(), retrieved.ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetWithItemLock_UnknownItem_ReturnsNotFound() {
	ctx := context.Background()

	_, err := suite.repository.GetWithItemLock(ctx, kernel.NewUUID())
	suite.Require().Error(err)

	var notFound *errs.ObjectNotFoundError
	suite.ErrorAs(err, &notFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRemove_DeletesOrderAndItems() {
	ctx := context.Background()

	aggregate := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(suite.repository.Remove(ctx, aggregate.ID()))

	suite.assertOrderCount(0)
	suite.assertItemCount(0)
}

// createTestOrder builds a USD order with one line item.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	currency, err := kernel.NewCurrency("USD")
	suite.Require().NoError(err)

	price, err := kernel.NewMoneyFromString("100.50")
	suite.Require().NoError(err)

	rate, err := kernel.NewExchangeRate(decimal.RequireFromString("92.45"))
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"aliexpress",
		"8123456789",
		time.Now().Truncate(time.Second),
		nil,
		price,
		currency,
		rate,
		false,
		"birthday gifts",
	)
	suite.Require().NoError(err)

	itemPrice, err := kernel.NewMoneyFromString("25.00")
	suite.Require().NoError(err)

	item, err := order.NewItem(
		kernel.NewUUID(),
		"usb cable",
		[]string{"electronics", "gift"},
		4,
		&itemPrice,
		order.ItemStatusWaitingPayment,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AddItem(item))

	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func (suite *OrderRepositoryIntegrationTestSuite) assertItemCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.ItemDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
