package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/storefin/backend/internal/domain"
	"github.com/storefin/backend/internal/infrastructure/persistence"
)

// ReportRepository computes the aggregate views directly in SQL. Nothing
// here writes; every method is a grouped read over the transactions table.
type ReportRepository struct {
	q persistence.Executor
}

func NewReportRepository(db *persistence.DB) *ReportRepository {
	return &ReportRepository{q: db.Pool}
}

func (r *ReportRepository) IncomesAndExpenses(ctx context.Context, userID string) ([]domain.IncomesAndExpenses, error) {
	query := `
		SELECT EXTRACT(YEAR FROM paid_or_received_at)::int AS year,
		       EXTRACT(MONTH FROM paid_or_received_at)::int AS month,
		       COALESCE(SUM(amount) FILTER (WHERE type = 1), 0) AS incomes,
		       COALESCE(SUM(amount) FILTER (WHERE type = 2), 0) AS expenses
		FROM transactions
		WHERE user_id = $1
		GROUP BY 1, 2
		ORDER BY year DESC, month ASC
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query incomes and expenses: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.IncomesAndExpenses, error) {
		var rec domain.IncomesAndExpenses
		err := row.Scan(&rec.Year, &rec.Month, &rec.Incomes, &rec.Expenses)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan incomes and expenses: %w", err)
	}

	return results, nil
}

func (r *ReportRepository) IncomesByCategory(ctx context.Context, userID string) ([]domain.IncomesByCategory, error) {
	query := `
		SELECT EXTRACT(YEAR FROM t.paid_or_received_at)::int AS year,
		       c.title AS category,
		       SUM(t.amount) AS amount
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.type = 1
		GROUP BY 1, 2
		ORDER BY year DESC, category ASC
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query incomes by category: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.IncomesByCategory, error) {
		var rec domain.IncomesByCategory
		err := row.Scan(&rec.Year, &rec.Category, &rec.Amount)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan incomes by category: %w", err)
	}

	return results, nil
}

func (r *ReportRepository) ExpensesByCategory(ctx context.Context, userID string) ([]domain.ExpensesByCategory, error) {
	query := `
		SELECT EXTRACT(YEAR FROM t.paid_or_received_at)::int AS year,
		       c.title AS category,
		       SUM(t.amount) AS amount
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.type = 2
		GROUP BY 1, 2
		ORDER BY year DESC, category ASC
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query expenses by category: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ExpensesByCategory, error) {
		var rec domain.ExpensesByCategory
		err := row.Scan(&rec.Year, &rec.Category, &rec.Amount)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan expenses by category: %w", err)
	}

	return results, nil
}

func (r *ReportRepository) FinancialSummary(ctx context.Context, userID string, start, end time.Time) (domain.FinancialSummary, error) {
	query := `
		SELECT COALESCE(SUM(amount) FILTER (WHERE type = 1), 0) AS incomes,
		       COALESCE(SUM(amount) FILTER (WHERE type = 2), 0) AS expenses
		FROM transactions
		WHERE user_id = $1 AND paid_or_received_at >= $2 AND paid_or_received_at <= $3
	`

	var summary domain.FinancialSummary
	err := r.q.QueryRow(ctx, query, userID, start, end).Scan(&summary.Incomes, &summary.Expenses)
	if err != nil {
		return domain.FinancialSummary{}, fmt.Errorf("query financial summary: %w", err)
	}

	return summary, nil
}
