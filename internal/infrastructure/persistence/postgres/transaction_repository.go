package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/storefin/backend/internal/application"
	"github.com/storefin/backend/internal/domain"
	"github.com/storefin/backend/internal/infrastructure/persistence"
)

const transactionColumns = `id, user_id, category_id, title, amount, type,
	       paid_or_received_at, created_at`

type TransactionRepository struct {
	q persistence.Executor
}

func NewTransactionRepository(db *persistence.DB) *TransactionRepository {
	return &TransactionRepository{q: db.Pool}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (
		    id, user_id, category_id, title, amount, type,
		    paid_or_received_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	m := toTransactionModel(tx)
	_, err := r.q.Exec(ctx, query,
		m.ID,
		m.UserID,
		m.CategoryID,
		m.Title,
		m.Amount,
		m.Type,
		m.PaidOrReceivedAt,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

func (r *TransactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	query := `
		UPDATE transactions
		SET category_id = $1, title = $2, amount = $3, type = $4, paid_or_received_at = $5
		WHERE id = $6 AND user_id = $7
	`

	m := toTransactionModel(tx)
	result, err := r.q.Exec(ctx, query,
		m.CategoryID,
		m.Title,
		m.Amount,
		m.Type,
		m.PaidOrReceivedAt,
		m.ID,
		m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return application.ErrRecordNotFound
	}

	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`

	result, err := r.q.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return application.ErrRecordNotFound
	}

	return nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id uuid.UUID, userID string) (*domain.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE id = $1 AND user_id = $2
	`, transactionColumns)

	var m TransactionModel
	err := r.q.QueryRow(ctx, query, id, userID).Scan(
		&m.ID, &m.UserID, &m.CategoryID, &m.Title, &m.Amount, &m.Type,
		&m.PaidOrReceivedAt, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}
	return toDomainTransaction(m), nil
}

func (r *TransactionRepository) FindByPeriod(ctx context.Context, userID string, start, end time.Time, limit, offset int) ([]*domain.Transaction, int64, error) {
	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM transactions
		WHERE user_id = $1 AND paid_or_received_at >= $2 AND paid_or_received_at <= $3
	`
	if err := r.q.QueryRow(ctx, countQuery, userID, start, end).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions by period: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE user_id = $1 AND paid_or_received_at >= $2 AND paid_or_received_at <= $3
		ORDER BY paid_or_received_at ASC
		LIMIT $4 OFFSET $5
	`, transactionColumns)

	rows, err := r.q.Query(ctx, query, userID, start, end, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query transactions by period: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Transaction, error) {
		var m TransactionModel
		err := row.Scan(
			&m.ID, &m.UserID, &m.CategoryID, &m.Title, &m.Amount, &m.Type,
			&m.PaidOrReceivedAt, &m.CreatedAt,
		)
		return toDomainTransaction(m), err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan transactions by period: %w", err)
	}

	return results, total, nil
}
