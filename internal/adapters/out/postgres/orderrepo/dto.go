// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling conversion between domain entities and database rows.
// Orders are stored across two tables: orders and order_items.
package orderrepo

import (
	"time"

	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Monetary columns store the frozen-rate snapshot: the original price, the
// rate it was frozen at, and the derived base-currency total.
type OrderDTO struct {
	ID                 uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID           `gorm:"type:uuid;not null;index"`
	Platform           string              `gorm:"type:varchar(255);not null"`
	ExternalNumber     string              `gorm:"type:varchar(255)"`
	OrderDate          time.Time           `gorm:"not null"`
	ProtectionEndDate  *time.Time          ``
	PriceOriginal      decimal.Decimal     `gorm:"type:numeric(14,2);not null"`
	CurrencyOriginal   string              `gorm:"type:varchar(3);not null"`
	ExchangeRateFrozen decimal.Decimal     `gorm:"type:numeric(18,6);not null"`
	PriceFinalBase     decimal.Decimal     `gorm:"type:numeric(14,2);not null"`
	IsPriceEstimated   bool                `gorm:"not null"`
	Comment            string              `gorm:"type:text"`
	ShippingCost       decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	CustomsCost        decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	DeletedAt          *time.Time          `gorm:"index"`
	Archived           bool                `gorm:"not null;default:false"`
	Items              []ItemDTO           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents the database structure for persisting order line items.
// Links to the order via foreign key; tags use a native PostgreSQL array.
type ItemDTO struct {
	ID               uuid.UUID           `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	Name             string              `gorm:"type:varchar(255);not null"`
	Tags             pq.StringArray      `gorm:"type:text[]"`
	QuantityOrdered  int                 `gorm:"not null"`
	QuantityReceived int                 `gorm:"not null"`
	PricePerItem     decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	Status           string              `gorm:"type:varchar(32);not null"`
}

// TableName specifies the database table name for order item entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation,
// including all line items.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()
	items := make([]ItemDTO, 0, len(aggregate.Items()))

	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:               item.ID().Bytes(),
			OrderID:          orderID,
			Name:             item.Name(),
			Tags:             item.Tags(),
			QuantityOrdered:  item.QuantityOrdered(),
			QuantityReceived: item.QuantityReceived(),
			PricePerItem:     nullDecimalFromMoney(item.PricePerItem()),
			Status:           string(item.Status()),
		})
	}

	return OrderDTO{
		ID:                 orderID,
		UserID:             aggregate.UserID().Bytes(),
		Platform:           aggregate.Platform(),
		ExternalNumber:     aggregate.ExternalNumber(),
		OrderDate:          aggregate.OrderDate(),
		ProtectionEndDate:  aggregate.ProtectionEndDate(),
		PriceOriginal:      aggregate.PriceOriginal().Decimal(),
		CurrencyOriginal:   aggregate.CurrencyOriginal().Code(),
		ExchangeRateFrozen: aggregate.ExchangeRateFrozen().Decimal(),
		PriceFinalBase:     aggregate.PriceFinalBase().Decimal(),
		IsPriceEstimated:   aggregate.IsPriceEstimated(),
		Comment:            aggregate.Comment(),
		ShippingCost:       nullDecimalFromMoney(aggregate.ShippingCost()),
		CustomsCost:        nullDecimalFromMoney(aggregate.CustomsCost()),
		DeletedAt:          aggregate.DeletedAt(),
		Archived:           aggregate.IsArchived(),
		Items:              items,
	}
}

// toDomain converts a database DTO back to an order aggregate using
// RestoreOrder, reconstructing all line items.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	currency, err := kernel.NewCurrency(dto.CurrencyOriginal)
	if err != nil {
		return nil, err
	}

	rate, err := kernel.NewExchangeRate(dto.ExchangeRateFrozen)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		userID,
		dto.Platform,
		dto.ExternalNumber,
		dto.OrderDate,
		dto.ProtectionEndDate,
		kernel.NewMoney(dto.PriceOriginal),
		currency,
		rate,
		kernel.NewMoney(dto.PriceFinalBase),
		dto.IsPriceEstimated,
		dto.Comment,
		moneyFromNullDecimal(dto.ShippingCost),
		moneyFromNullDecimal(dto.CustomsCost),
		dto.DeletedAt,
		dto.Archived,
		items,
	)
}

// itemToDomain converts an item DTO to its domain entity via RestoreItem.
func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(
		id,
		dto.Name,
		dto.Tags,
		dto.QuantityOrdered,
		dto.QuantityReceived,
		moneyFromNullDecimal(dto.PricePerItem),
		order.ItemStatus(dto.Status),
	)
}

func nullDecimalFromMoney(m *kernel.Money) decimal.NullDecimal {
	if m == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: m.Decimal(), Valid: true}
}

func moneyFromNullDecimal(d decimal.NullDecimal) *kernel.Money {
	if !d.Valid {
		return nil
	}
	m := kernel.NewMoney(d.Decimal)
	return &m
}
