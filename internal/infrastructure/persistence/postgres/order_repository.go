// Package postgres holds the pgx-backed repository implementations.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/storefin/backend/internal/application"
	"github.com/storefin/backend/internal/domain"
	"github.com/storefin/backend/internal/infrastructure/persistence"
)

const orderColumns = `id, number, user_id, product_id, voucher_id, status,
	       external_reference, gateway, created_at, updated_at`

type OrderRepository struct {
	q persistence.Executor
}

func NewOrderRepository(db *persistence.DB) *OrderRepository {
	return &OrderRepository{q: db.Pool}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (
		    id, number, user_id, product_id, voucher_id, status,
		    external_reference, gateway, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	m := toOrderModel(order)
	_, err := r.q.Exec(ctx, query,
		m.ID,
		m.Number,
		m.UserID,
		m.ProductID,
		m.VoucherID,
		m.Status,
		m.ExternalReference,
		m.Gateway,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders
		SET status = $1, external_reference = $2, updated_at = $3
		WHERE id = $4
	`

	m := toOrderModel(order)
	result, err := r.q.Exec(ctx, query,
		m.Status,
		m.ExternalReference,
		m.UpdatedAt,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	if result.RowsAffected() == 0 {
		return application.ErrRecordNotFound
	}

	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID, userID string) (*domain.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE id = $1 AND user_id = $2
	`, orderColumns)

	row := r.q.QueryRow(ctx, query, id, userID)
	return scanOrder(row)
}

func (r *OrderRepository) FindByNumber(ctx context.Context, number, userID string) (*domain.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE number = $1 AND user_id = $2
	`, orderColumns)

	row := r.q.QueryRow(ctx, query, number, userID)
	return scanOrder(row)
}

func (r *OrderRepository) FindByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM orders WHERE user_id = $1`
	if err := r.q.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders by user: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`, orderColumns)

	rows, err := r.q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query orders by user: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Order, error) {
		var m OrderModel
		err := row.Scan(
			&m.ID, &m.Number, &m.UserID, &m.ProductID, &m.VoucherID, &m.Status,
			&m.ExternalReference, &m.Gateway, &m.CreatedAt, &m.UpdatedAt,
		)
		return toDomainOrder(m), err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan orders by user: %w", err)
	}

	return results, total, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var m OrderModel
	err := row.Scan(
		&m.ID, &m.Number, &m.UserID, &m.ProductID, &m.VoucherID, &m.Status,
		&m.ExternalReference, &m.Gateway, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	return toDomainOrder(m), nil
}
