// Package application defines the ports this core consumes and the
// HTTP-facing error mapping for its domain errors.
package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/storefin/backend/internal/domain"
)

// ErrRecordNotFound is the repository-level sentinel for an absent row.
// Services translate it into the appropriate domain error.
var ErrRecordNotFound = errors.New("record not found")

// Charge is the gateway's record of a captured or refunded payment,
// correlated to an order through a metadata tag.
type Charge struct {
	ID             string
	Email          string
	Amount         int64
	AmountCaptured int64
	Status         string
	Paid           bool
	Refunded       bool
}

// CheckoutSessionRequest carries everything the gateway needs to build a
// hosted payment page for one order.
type CheckoutSessionRequest struct {
	CustomerEmail      string
	OrderNumber        string
	ProductTitle       string
	ProductDescription string
	UnitAmount         int64
	Currency           string
	SuccessURL         string
	CancelURL          string
}

// PaymentGateway is the port for the external payment processor.
// An empty charge list from SearchChargesByOrderTag is a valid outcome
// meaning "no payment yet", not an error.
type PaymentGateway interface {
	CreateSession(ctx context.Context, req CheckoutSessionRequest) (string, error)
	SearchChargesByOrderTag(ctx context.Context, orderNumber string) ([]Charge, error)
}

// OrderRepository is the port for order persistence. Lookups are scoped to
// the owning user; a foreign order behaves exactly like an absent one.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uuid.UUID, userID string) (*domain.Order, error)
	FindByNumber(ctx context.Context, number, userID string) (*domain.Order, error)
	FindByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, int64, error)
}

// ProductRepository reads catalog items. Every lookup filters on the
// active flag; an inactive product is invisible.
type ProductRepository interface {
	FindActiveByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindActiveBySlug(ctx context.Context, slug string) (*domain.Product, error)
	ListActive(ctx context.Context, limit, offset int) ([]*domain.Product, int64, error)
}

type VoucherRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Voucher, error)
	Update(ctx context.Context, voucher *domain.Voucher) error
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	Update(ctx context.Context, tx *domain.Transaction) error
	Delete(ctx context.Context, id uuid.UUID, userID string) error
	FindByID(ctx context.Context, id uuid.UUID, userID string) (*domain.Transaction, error)
	FindByPeriod(ctx context.Context, userID string, start, end time.Time, limit, offset int) ([]*domain.Transaction, int64, error)
}

type ReportRepository interface {
	IncomesAndExpenses(ctx context.Context, userID string) ([]domain.IncomesAndExpenses, error)
	IncomesByCategory(ctx context.Context, userID string) ([]domain.IncomesByCategory, error)
	ExpensesByCategory(ctx context.Context, userID string) ([]domain.ExpensesByCategory, error)
	FinancialSummary(ctx context.Context, userID string, start, end time.Time) (domain.FinancialSummary, error)
}

// UnitOfWork runs fn against transaction-bound repositories; either every
// write in fn commits or none does.
type UnitOfWork interface {
	WithTransaction(ctx context.Context, fn func(orders OrderRepository, vouchers VoucherRepository) error) error
}
