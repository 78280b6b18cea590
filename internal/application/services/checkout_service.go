package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/storefin/backend/internal/application"
	"github.com/storefin/backend/internal/domain"
)

// CheckoutService builds a hosted payment session for one order. The
// charged amount is the product's price at session time; it is never
// persisted on the order itself.
type CheckoutService struct {
	orders      application.OrderRepository
	products    application.ProductRepository
	gateway     application.PaymentGateway
	frontendURL string
	logger      *slog.Logger
}

func NewCheckoutService(
	orders application.OrderRepository,
	products application.ProductRepository,
	gateway application.PaymentGateway,
	frontendURL string,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		orders:      orders,
		products:    products,
		gateway:     gateway,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// CreateSession returns the gateway session id for the user's order. The
// order number travels in the session metadata so Pay can find the charge
// later.
func (s *CheckoutService) CreateSession(ctx context.Context, userID, email, orderNumber string) (string, error) {
	order, err := s.orders.FindByNumber(ctx, orderNumber, userID)
	if err != nil {
		if errors.Is(err, application.ErrRecordNotFound) {
			return "", domain.NewNotFoundError("order")
		}
		return "", domain.NewStorageUnavailableError("load order", err)
	}

	if err := order.CanBePaid(); err != nil {
		return "", err
	}

	product, err := s.products.FindActiveByID(ctx, order.ProductID)
	if err != nil {
		if errors.Is(err, application.ErrRecordNotFound) {
			return "", domain.NewNotFoundError("product")
		}
		return "", domain.NewStorageUnavailableError("load product", err)
	}

	sessionID, err := s.gateway.CreateSession(ctx, application.CheckoutSessionRequest{
		CustomerEmail:      email,
		OrderNumber:        order.Number,
		ProductTitle:       product.Title,
		ProductDescription: product.Description,
		UnitAmount:         product.PriceCents(),
		Currency:           "BRL",
		SuccessURL:         fmt.Sprintf("%s/orders/%s/confirm", s.frontendURL, order.Number),
		CancelURL:          fmt.Sprintf("%s/orders/%s/cancel", s.frontendURL, order.Number),
	})
	if err != nil {
		s.logger.Error("checkout session creation failed", "order_number", order.Number, "error", err)
		return "", domain.NewGatewayFailureError("create checkout session", err)
	}

	s.logger.Info("checkout session created", "order_number", order.Number, "session_id", sessionID)
	return sessionID, nil
}
