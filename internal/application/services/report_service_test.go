package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefin/backend/internal/application/services"
	"github.com/storefin/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_FinancialSummary(t *testing.T) {
	t.Run("windows the current month", func(t *testing.T) {
		repo := &services.MockReportRepository{}
		var gotStart, gotEnd time.Time
		repo.FinancialSummaryFn = func(ctx context.Context, userID string, start, end time.Time) (domain.FinancialSummary, error) {
			gotStart, gotEnd = start, end
			return domain.FinancialSummary{
				Incomes:  decimal.NewFromInt(500),
				Expenses: decimal.NewFromInt(-200),
			}, nil
		}
		service := services.NewReportService(repo)

		summary, err := service.FinancialSummary(context.Background(), "user-1")

		require.NoError(t, err)
		assert.True(t, summary.Incomes.Equal(decimal.NewFromInt(500)))
		assert.True(t, summary.Expenses.Equal(decimal.NewFromInt(-200)))

		now := time.Now()
		assert.Equal(t, 1, gotStart.Day())
		assert.Equal(t, now.Month(), gotStart.Month())
		assert.Equal(t, now.Year(), gotStart.Year())
		assert.WithinDuration(t, now, gotEnd, time.Minute)
	})

	t.Run("empty month yields zero totals", func(t *testing.T) {
		service := services.NewReportService(&services.MockReportRepository{})

		summary, err := service.FinancialSummary(context.Background(), "user-1")

		require.NoError(t, err)
		assert.True(t, summary.Incomes.IsZero())
		assert.True(t, summary.Expenses.IsZero())
	})

	t.Run("storage fault", func(t *testing.T) {
		repo := &services.MockReportRepository{}
		repo.FinancialSummaryFn = func(ctx context.Context, userID string, start, end time.Time) (domain.FinancialSummary, error) {
			return domain.FinancialSummary{}, errors.New("connection refused")
		}
		service := services.NewReportService(repo)

		_, err := service.FinancialSummary(context.Background(), "user-1")

		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeStorageUnavailable))
	})
}

func TestReportService_Series(t *testing.T) {
	repo := &services.MockReportRepository{}
	repo.IncomesAndExpensesFn = func(ctx context.Context, userID string) ([]domain.IncomesAndExpenses, error) {
		return []domain.IncomesAndExpenses{
			{Year: 2026, Month: 1, Incomes: decimal.NewFromInt(100), Expenses: decimal.NewFromInt(-40)},
			{Year: 2025, Month: 12, Incomes: decimal.NewFromInt(80), Expenses: decimal.NewFromInt(-10)},
		}, nil
	}
	repo.IncomesByCategoryFn = func(ctx context.Context, userID string) ([]domain.IncomesByCategory, error) {
		return []domain.IncomesByCategory{{Year: 2026, Category: "Salary", Amount: decimal.NewFromInt(100)}}, nil
	}
	repo.ExpensesByCategoryFn = func(ctx context.Context, userID string) ([]domain.ExpensesByCategory, error) {
		return []domain.ExpensesByCategory{{Year: 2026, Category: "Rent", Amount: decimal.NewFromInt(-40)}}, nil
	}
	service := services.NewReportService(repo)

	series, err := service.IncomesAndExpenses(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, 2026, series[0].Year)

	incomes, err := service.IncomesByCategory(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	assert.Equal(t, "Salary", incomes[0].Category)

	expenses, err := service.ExpensesByCategory(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.True(t, expenses[0].Amount.IsNegative())
}
