package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType int16

const (
	TypeDeposit TransactionType = iota + 1
	TypeWithdraw
)

func (t TransactionType) String() string {
	switch t {
	case TypeDeposit:
		return "DEPOSIT"
	case TypeWithdraw:
		return "WITHDRAW"
	default:
		return "UNKNOWN"
	}
}

// Transaction is one movement of money for a user. Withdrawals are stored
// with a non-positive amount; see NormalizeAmount.
type Transaction struct {
	ID               uuid.UUID
	UserID           string
	CategoryID       uuid.UUID
	Title            string
	Amount           decimal.Decimal
	Type             TransactionType
	PaidOrReceivedAt time.Time
	CreatedAt        time.Time
}

func NewTransaction(
	userID string,
	categoryID uuid.UUID,
	title string,
	amount decimal.Decimal,
	txType TransactionType,
	paidOrReceivedAt time.Time,
) (*Transaction, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	if categoryID == uuid.Nil {
		return nil, errors.New("category ID is required")
	}
	if title == "" {
		return nil, errors.New("title is required")
	}

	return &Transaction{
		ID:               uuid.New(),
		UserID:           userID,
		CategoryID:       categoryID,
		Title:            title,
		Amount:           NormalizeAmount(txType, amount),
		Type:             txType,
		PaidOrReceivedAt: paidOrReceivedAt,
		CreatedAt:        time.Now(),
	}, nil
}

// Apply overwrites the mutable fields, re-normalizing the amount sign.
func (t *Transaction) Apply(
	categoryID uuid.UUID,
	title string,
	amount decimal.Decimal,
	txType TransactionType,
	paidOrReceivedAt time.Time,
) {
	t.CategoryID = categoryID
	t.Title = title
	t.Amount = NormalizeAmount(txType, amount)
	t.Type = txType
	t.PaidOrReceivedAt = paidOrReceivedAt
}

// NormalizeAmount enforces the sign invariant: a withdrawal submitted with
// a non-negative magnitude is negated. Deposits pass through as submitted.
func NormalizeAmount(txType TransactionType, amount decimal.Decimal) decimal.Decimal {
	if txType == TypeWithdraw && amount.Sign() >= 0 {
		return amount.Neg()
	}
	return amount
}

// Category groups transactions for reporting. Category management lives
// outside this core; the type exists for joins and ownership checks.
type Category struct {
	ID          uuid.UUID
	UserID      string
	Title       string
	Description string
}
