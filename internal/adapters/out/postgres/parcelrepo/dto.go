// Package parcelrepo provides data transfer objects and mapping functions
// for parcel persistence. It implements the repository pattern for the
// parcel aggregate; the allocation ledger rows live in the parcel_items
// table as children of the parcel.
package parcelrepo

import (
	"time"

	"parceltracker/internal/adapters/out/postgres/orderrepo"
	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParcelDTO represents the database structure for persisting parcel
// aggregates. The tracking number is deliberately not unique, carriers reuse
// numbers across time.
type ParcelDTO struct {
	ID                uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID           `gorm:"type:uuid;not null;index"`
	TrackingNumber    string              `gorm:"type:varchar(255);not null;index"`
	CarrierSlug       string              `gorm:"type:varchar(64);not null"`
	Label             string              `gorm:"type:varchar(255)"`
	Status            string              `gorm:"type:varchar(32);not null"`
	TrackingUpdatedAt *time.Time          ``
	WeightKg          decimal.NullDecimal `gorm:"column:weight_kg;type:numeric(8,3)"`
	Archived          bool                `gorm:"not null;default:false"`
	Allocations       []AllocationDTO     `gorm:"foreignKey:ParcelID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// AllocationDTO represents one ledger row: a quantity of an order item
// placed in a parcel. At most one row exists per (parcel, order item) pair.
// The foreign key to order_items cascades, so deleting an item removes its
// ledger rows at the database level.
type AllocationDTO struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	ParcelID    uuid.UUID         `gorm:"type:uuid;not null;index;uniqueIndex:idx_parcel_order_item"`
	OrderItemID uuid.UUID         `gorm:"type:uuid;not null;index;uniqueIndex:idx_parcel_order_item"`
	OrderItem   orderrepo.ItemDTO `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE"`
	Quantity    int               `gorm:"not null"`
}

// TableName specifies the database table name for allocation entities.
func (AllocationDTO) TableName() string {
	return "parcel_items"
}

// fromDomain converts a parcel aggregate to its database representation,
// including all ledger rows.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	parcelID := aggregate.ID().Bytes()
	allocations := make([]AllocationDTO, 0, len(aggregate.Allocations()))

	for _, a := range aggregate.Allocations() {
		allocations = append(allocations, AllocationDTO{
			ID:          a.ID().Bytes(),
			ParcelID:    parcelID,
			OrderItemID: a.OrderItemID().Bytes(),
			Quantity:    a.Quantity(),
		})
	}

	var weight decimal.NullDecimal
	if aggregate.Weight() != nil {
		weight = decimal.NullDecimal{Decimal: aggregate.Weight().Decimal(), Valid: true}
	}

	return ParcelDTO{
		ID:                parcelID,
		UserID:            aggregate.UserID().Bytes(),
		TrackingNumber:    aggregate.TrackingNumber(),
		CarrierSlug:       aggregate.CarrierSlug(),
		Label:             aggregate.Label(),
		Status:            string(aggregate.Status()),
		TrackingUpdatedAt: aggregate.TrackingUpdatedAt(),
		WeightKg:          weight,
		Archived:          aggregate.IsArchived(),
		Allocations:       allocations,
	}
}

// toDomain converts a database DTO back to a parcel aggregate using
// RestoreParcel, reconstructing all ledger rows.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var weight *kernel.Weight
	if dto.WeightKg.Valid {
		w, weightErr := kernel.NewWeight(dto.WeightKg.Decimal)
		if weightErr != nil {
			return nil, weightErr
		}
		weight = &w
	}

	allocations := make([]*parcel.Allocation, 0, len(dto.Allocations))
	for _, aDto := range dto.Allocations {
		a, aErr := allocationToDomain(aDto)
		if aErr != nil {
			return nil, aErr
		}
		allocations = append(allocations, a)
	}

	return parcel.RestoreParcel(
		id,
		userID,
		dto.TrackingNumber,
		dto.CarrierSlug,
		dto.Label,
		parcel.Status(dto.Status),
		dto.TrackingUpdatedAt,
		weight,
		dto.Archived,
		allocations,
	)
}

// allocationToDomain converts a ledger row DTO to its domain entity.
func allocationToDomain(dto AllocationDTO) (*parcel.Allocation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	orderItemID, err := kernel.UUIDFromBytes(dto.OrderItemID[:])
	if err != nil {
		return nil, err
	}

	return parcel.RestoreAllocation(id, parcelID, orderItemID, dto.Quantity)
}
