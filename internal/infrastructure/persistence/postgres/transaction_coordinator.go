package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/storefin/backend/internal/application"
	"github.com/storefin/backend/internal/infrastructure/persistence"
)

// TransactionCoordinator manages transactions across multiple repositories
type TransactionCoordinator struct {
	pool *pgxpool.Pool
}

func NewTransactionCoordinator(db *persistence.DB) *TransactionCoordinator {
	return &TransactionCoordinator{
		pool: db.Pool,
	}
}

// WithTransaction executes a function within a database transaction.
// The function receives repository instances bound to the transaction,
// so every write inside fn commits or rolls back together.
func (tc *TransactionCoordinator) WithTransaction(
	ctx context.Context,
	fn func(orders application.OrderRepository, vouchers application.VoucherRepository) error,
) error {
	tx, err := tc.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txOrderRepo := &OrderRepository{q: tx}
	txVoucherRepo := &VoucherRepository{q: tx}

	if err := fn(txOrderRepo, txVoucherRepo); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
