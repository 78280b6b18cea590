package services_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefin/backend/internal/application"
	"github.com/storefin/backend/internal/application/services"
	"github.com/storefin/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	orders   *services.MockOrderRepository
	products *services.MockProductRepository
	gateway  *services.MockPaymentGateway
	service  *services.CheckoutService
	order    *domain.Order
	product  *domain.Product
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	f := &checkoutFixture{
		orders:   services.NewMockOrderRepository(),
		products: services.NewMockProductRepository(),
		gateway:  &services.MockPaymentGateway{},
	}
	f.service = services.NewCheckoutService(
		f.orders,
		f.products,
		f.gateway,
		"https://store.example.com",
		slog.New(slog.DiscardHandler),
	)

	f.product = &domain.Product{
		ID:          uuid.New(),
		Title:       "Yearly subscription",
		Description: "Twelve months of access",
		Price:       decimal.NewFromFloat(99.90),
		IsActive:    true,
	}
	f.products.Add(f.product)

	order, err := domain.NewOrder("user-1", f.product.ID, nil)
	require.NoError(t, err)
	require.NoError(t, f.orders.Create(context.Background(), order))
	f.order = order
	return f
}

func TestCheckoutService_CreateSession(t *testing.T) {
	t.Run("builds the session from the order's product", func(t *testing.T) {
		f := newCheckoutFixture(t)
		var got application.CheckoutSessionRequest
		f.gateway.CreateSessionFn = func(ctx context.Context, req application.CheckoutSessionRequest) (string, error) {
			got = req
			return "cs_123", nil
		}

		sessionID, err := f.service.CreateSession(context.Background(), "user-1", "user@example.com", f.order.Number)

		require.NoError(t, err)
		assert.Equal(t, "cs_123", sessionID)
		assert.Equal(t, f.order.Number, got.OrderNumber)
		assert.Equal(t, "user@example.com", got.CustomerEmail)
		assert.Equal(t, "Yearly subscription", got.ProductTitle)
		assert.Equal(t, int64(9990), got.UnitAmount)
		assert.Equal(t, "BRL", got.Currency)
		assert.Equal(t, "https://store.example.com/orders/"+f.order.Number+"/confirm", got.SuccessURL)
		assert.Equal(t, "https://store.example.com/orders/"+f.order.Number+"/cancel", got.CancelURL)
	})

	t.Run("foreign order answers not found", func(t *testing.T) {
		f := newCheckoutFixture(t)

		_, err := f.service.CreateSession(context.Background(), "user-2", "other@example.com", f.order.Number)

		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeNotFound))
	})

	t.Run("paid order cannot start another session", func(t *testing.T) {
		f := newCheckoutFixture(t)
		require.NoError(t, f.order.MarkPaid("ch_1"))

		_, err := f.service.CreateSession(context.Background(), "user-1", "user@example.com", f.order.Number)

		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeConflictingState))
	})

	t.Run("gateway fault", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.gateway.CreateSessionFn = func(ctx context.Context, req application.CheckoutSessionRequest) (string, error) {
			return "", errors.New("gateway timeout")
		}

		_, err := f.service.CreateSession(context.Background(), "user-1", "user@example.com", f.order.Number)

		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeGatewayFailure))
	})
}
