// Package userrepo provides data transfer objects and mapping functions for
// account persistence. It implements the repository pattern for the user
// aggregate, handling conversion between domain entities and database rows.
package userrepo

import (
	"parceltracker/internal/core/domain/model/kernel"
	"parceltracker/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for persisting user accounts.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	BaseCurrency string    `gorm:"type:varchar(3);not null"`
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

// fromDomain converts a user aggregate to its database representation.
func fromDomain(account *user.User) UserDTO {
	return UserDTO{
		ID:           account.ID().Bytes(),
		Email:        account.Email(),
		PasswordHash: account.PasswordHash(),
		BaseCurrency: account.BaseCurrency().Code(),
	}
}

// toDomain converts a database DTO back to a user aggregate using RestoreUser.
func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	currency, err := kernel.NewCurrency(dto.BaseCurrency)
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, dto.Email, dto.PasswordHash, currency)
}
