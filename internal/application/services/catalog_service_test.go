package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefin/backend/internal/application/services"
	"github.com/storefin/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService(t *testing.T) {
	newProduct := func(slug string, active bool) *domain.Product {
		return &domain.Product{
			ID:       uuid.New(),
			Title:    slug,
			Slug:     slug,
			Price:    decimal.NewFromInt(50),
			IsActive: active,
		}
	}

	t.Run("get by slug ignores inactive products", func(t *testing.T) {
		repo := services.NewMockProductRepository()
		repo.Add(newProduct("visible", true))
		repo.Add(newProduct("retired", false))
		service := services.NewCatalogService(repo)

		product, err := service.GetProductBySlug(context.Background(), "visible")
		require.NoError(t, err)
		assert.Equal(t, "visible", product.Slug)

		_, err = service.GetProductBySlug(context.Background(), "retired")
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeNotFound))

		_, err = service.GetProductBySlug(context.Background(), "missing")
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeNotFound))
	})

	t.Run("list counts only active products", func(t *testing.T) {
		repo := services.NewMockProductRepository()
		repo.Add(newProduct("a", true))
		repo.Add(newProduct("b", true))
		repo.Add(newProduct("gone", false))
		service := services.NewCatalogService(repo)

		result, err := service.ListProducts(context.Background(), services.Page{Number: 1, Size: 25})

		require.NoError(t, err)
		assert.Equal(t, int64(2), result.TotalCount)
		assert.Len(t, result.Items, 2)
	})

	t.Run("storage fault", func(t *testing.T) {
		repo := services.NewMockProductRepository()
		repo.FindActiveBySlugFn = func(ctx context.Context, slug string) (*domain.Product, error) {
			return nil, errors.New("connection refused")
		}
		service := services.NewCatalogService(repo)

		_, err := service.GetProductBySlug(context.Background(), "visible")

		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeStorageUnavailable))
	})
}
