package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefin/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAmount(t *testing.T) {
	t.Run("negates positive withdrawals", func(t *testing.T) {
		got := domain.NormalizeAmount(domain.TypeWithdraw, decimal.NewFromInt(200))

		assert.True(t, got.Equal(decimal.NewFromInt(-200)))
	})

	t.Run("negates zero withdrawals to zero", func(t *testing.T) {
		got := domain.NormalizeAmount(domain.TypeWithdraw, decimal.Zero)

		assert.True(t, got.IsZero())
	})

	t.Run("keeps already negative withdrawals", func(t *testing.T) {
		got := domain.NormalizeAmount(domain.TypeWithdraw, decimal.NewFromInt(-50))

		assert.True(t, got.Equal(decimal.NewFromInt(-50)))
	})

	t.Run("passes deposits through unchanged", func(t *testing.T) {
		got := domain.NormalizeAmount(domain.TypeDeposit, decimal.NewFromInt(500))
		assert.True(t, got.Equal(decimal.NewFromInt(500)))

		// Deposits are not a second normalization rule: a negative
		// deposit stays negative.
		got = domain.NormalizeAmount(domain.TypeDeposit, decimal.NewFromInt(-500))
		assert.True(t, got.Equal(decimal.NewFromInt(-500)))
	})
}

func TestNewTransaction(t *testing.T) {
	paidAt := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	t.Run("creates a deposit", func(t *testing.T) {
		categoryID := uuid.New()

		tx, err := domain.NewTransaction("user-1", categoryID, "salary", decimal.NewFromInt(500), domain.TypeDeposit, paidAt)

		require.NoError(t, err)
		assert.Equal(t, "user-1", tx.UserID)
		assert.Equal(t, categoryID, tx.CategoryID)
		assert.True(t, tx.Amount.Equal(decimal.NewFromInt(500)))
		assert.Equal(t, domain.TypeDeposit, tx.Type)
		assert.Equal(t, paidAt, tx.PaidOrReceivedAt)
		assert.NotZero(t, tx.CreatedAt)
	})

	t.Run("stores withdrawals with a non-positive amount", func(t *testing.T) {
		tx, err := domain.NewTransaction("user-1", uuid.New(), "groceries", decimal.NewFromInt(200), domain.TypeWithdraw, paidAt)

		require.NoError(t, err)
		assert.True(t, tx.Amount.LessThanOrEqual(decimal.Zero))
		assert.True(t, tx.Amount.Equal(decimal.NewFromInt(-200)))
	})

	t.Run("rejects empty user ID", func(t *testing.T) {
		_, err := domain.NewTransaction("", uuid.New(), "salary", decimal.NewFromInt(500), domain.TypeDeposit, paidAt)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "user ID is required")
	})

	t.Run("rejects nil category ID", func(t *testing.T) {
		_, err := domain.NewTransaction("user-1", uuid.Nil, "salary", decimal.NewFromInt(500), domain.TypeDeposit, paidAt)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "category ID is required")
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := domain.NewTransaction("user-1", uuid.New(), "", decimal.NewFromInt(500), domain.TypeDeposit, paidAt)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "title is required")
	})
}

func TestTransactionApply(t *testing.T) {
	paidAt := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	tx, err := domain.NewTransaction("user-1", uuid.New(), "salary", decimal.NewFromInt(500), domain.TypeDeposit, paidAt)
	require.NoError(t, err)

	newCategory := uuid.New()
	tx.Apply(newCategory, "rent", decimal.NewFromInt(300), domain.TypeWithdraw, paidAt.AddDate(0, 0, 1))

	assert.Equal(t, newCategory, tx.CategoryID)
	assert.Equal(t, "rent", tx.Title)
	assert.Equal(t, domain.TypeWithdraw, tx.Type)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(-300)))
}
