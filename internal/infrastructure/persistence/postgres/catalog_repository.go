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

const productColumns = `id, title, slug, description, price, is_active, created_at, updated_at`

// ProductRepository reads catalog rows. All lookups filter on is_active;
// a deactivated product is indistinguishable from an absent one.
type ProductRepository struct {
	q persistence.Executor
}

func NewProductRepository(db *persistence.DB) *ProductRepository {
	return &ProductRepository{q: db.Pool}
}

func (r *ProductRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id = $1 AND is_active = true
	`, productColumns)

	row := r.q.QueryRow(ctx, query, id)
	return scanProduct(row)
}

func (r *ProductRepository) FindActiveBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE slug = $1 AND is_active = true
	`, productColumns)

	row := r.q.QueryRow(ctx, query, slug)
	return scanProduct(row)
}

func (r *ProductRepository) ListActive(ctx context.Context, limit, offset int) ([]*domain.Product, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM products WHERE is_active = true`
	if err := r.q.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count active products: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE is_active = true
		ORDER BY title ASC
		LIMIT $1 OFFSET $2
	`, productColumns)

	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query active products: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Product, error) {
		var m ProductModel
		err := row.Scan(
			&m.ID, &m.Title, &m.Slug, &m.Description, &m.Price,
			&m.IsActive, &m.CreatedAt, &m.UpdatedAt,
		)
		return toDomainProduct(m), err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan active products: %w", err)
	}

	return results, total, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var m ProductModel
	err := row.Scan(
		&m.ID, &m.Title, &m.Slug, &m.Description, &m.Price,
		&m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}
	return toDomainProduct(m), nil
}

// VoucherRepository persists single-use vouchers.
type VoucherRepository struct {
	q persistence.Executor
}

func NewVoucherRepository(db *persistence.DB) *VoucherRepository {
	return &VoucherRepository{q: db.Pool}
}

func (r *VoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Voucher, error) {
	query := `
		SELECT id, number, is_active, created_at, updated_at
		FROM vouchers
		WHERE id = $1
	`

	var m VoucherModel
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Number, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to scan voucher: %w", err)
	}
	return toDomainVoucher(m), nil
}

// Update persists a redemption. The is_active guard makes the flip
// conditional, so of two concurrent redemptions exactly one commits.
func (r *VoucherRepository) Update(ctx context.Context, voucher *domain.Voucher) error {
	query := `
		UPDATE vouchers
		SET is_active = $1, updated_at = $2
		WHERE id = $3 AND is_active = true
	`

	result, err := r.q.Exec(ctx, query, voucher.IsActive, voucher.UpdatedAt, voucher.ID)
	if err != nil {
		return fmt.Errorf("failed to update voucher: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewVoucherAlreadyUsedError()
	}

	return nil
}
