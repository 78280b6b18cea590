package services

import (
	"context"
	"errors"

	"github.com/storefin/backend/internal/application"
	"github.com/storefin/backend/internal/domain"
)

// CatalogService exposes read-only, active-filtered product lookups.
type CatalogService struct {
	products application.ProductRepository
}

func NewCatalogService(products application.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

// ListProducts returns one page of active products ordered by title.
func (s *CatalogService) ListProducts(ctx context.Context, page Page) (*PagedResult[*domain.Product], error) {
	products, count, err := s.products.ListActive(ctx, page.Size, page.Skip())
	if err != nil {
		return nil, domain.NewStorageUnavailableError("list products", err)
	}
	return &PagedResult[*domain.Product]{Items: products, TotalCount: count}, nil
}

// GetProductBySlug resolves an active product by its URL-safe slug.
// Inactive products answer not-found, same as absent ones.
func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	product, err := s.products.FindActiveBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, application.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("product")
		}
		return nil, domain.NewStorageUnavailableError("load product", err)
	}
	return product, nil
}
