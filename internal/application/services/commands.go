package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefin/backend/internal/domain"
)

type CreateOrderCommand struct {
	ProductID uuid.UUID
	VoucherID *uuid.UUID
}

type CreateTransactionCommand struct {
	CategoryID       uuid.UUID
	Title            string
	Amount           decimal.Decimal
	Type             domain.TransactionType
	PaidOrReceivedAt time.Time
}

type UpdateTransactionCommand struct {
	ID               uuid.UUID
	CategoryID       uuid.UUID
	Title            string
	Amount           decimal.Decimal
	Type             domain.TransactionType
	PaidOrReceivedAt time.Time
}

// Page describes 1-based pagination; Skip is what repositories feed into
// their OFFSET clause.
type Page struct {
	Number int
	Size   int
}

func (p Page) Skip() int {
	n := p.Number
	if n < 1 {
		n = 1
	}
	return (n - 1) * p.Size
}

// PagedResult couples one page of items with the unpaginated match count.
type PagedResult[T any] struct {
	Items      []T
	TotalCount int64
}
