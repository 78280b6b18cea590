package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Database row shapes. Statuses and types are stored as smallint so the
// numeric codes in the domain round-trip without string mapping.

type OrderModel struct {
	ID                uuid.UUID
	Number            string
	UserID            string
	ProductID         uuid.UUID
	VoucherID         *uuid.UUID
	Status            int16
	ExternalReference *string
	Gateway           int16
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type ProductModel struct {
	ID          uuid.UUID
	Title       string
	Slug        string
	Description string
	Price       decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type VoucherModel struct {
	ID        uuid.UUID
	Number    string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TransactionModel struct {
	ID               uuid.UUID
	UserID           string
	CategoryID       uuid.UUID
	Title            string
	Amount           decimal.Decimal
	Type             int16
	PaidOrReceivedAt time.Time
	CreatedAt        time.Time
}
