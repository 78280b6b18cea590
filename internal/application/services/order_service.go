// Package services orchestrates the domain entities against the
// persistence and gateway ports.
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/storefin/backend/internal/application"
	"github.com/storefin/backend/internal/domain"
)

// OrderService owns the order lifecycle: creation with voucher redemption,
// cancellation, gateway-reconciled payment and refund bookkeeping.
type OrderService struct {
	orders   application.OrderRepository
	products application.ProductRepository
	vouchers application.VoucherRepository
	gateway  application.PaymentGateway
	uow      application.UnitOfWork
	logger   *slog.Logger
}

func NewOrderService(
	orders application.OrderRepository,
	products application.ProductRepository,
	vouchers application.VoucherRepository,
	gateway application.PaymentGateway,
	uow application.UnitOfWork,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		vouchers: vouchers,
		gateway:  gateway,
		uow:      uow,
		logger:   logger,
	}
}

// Create places a new order for an active product, optionally redeeming a
// voucher. The voucher flip and the order insert commit as one unit: a
// failure leaves the voucher active and no order behind.
func (s *OrderService) Create(ctx context.Context, userID string, cmd CreateOrderCommand) (*domain.Order, error) {
	product, err := s.products.FindActiveByID(ctx, cmd.ProductID)
	if err != nil {
		if errors.Is(err, application.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("product")
		}
		return nil, domain.NewStorageUnavailableError("load product", err)
	}

	var voucher *domain.Voucher
	if cmd.VoucherID != nil {
		voucher, err = s.vouchers.FindByID(ctx, *cmd.VoucherID)
		if err != nil {
			if errors.Is(err, application.ErrRecordNotFound) {
				return nil, domain.NewInvalidVoucherError()
			}
			return nil, domain.NewStorageUnavailableError("load voucher", err)
		}
		if !voucher.IsActive {
			return nil, domain.NewVoucherAlreadyUsedError()
		}
	}

	order, err := domain.NewOrder(userID, product.ID, cmd.VoucherID)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	err = s.uow.WithTransaction(ctx, func(orders application.OrderRepository, vouchers application.VoucherRepository) error {
		if voucher != nil {
			if err := voucher.Redeem(); err != nil {
				return err
			}
			if err := vouchers.Update(ctx, voucher); err != nil {
				return err
			}
		}
		return orders.Create(ctx, order)
	})
	if err != nil {
		if domain.IsErrorCode(err, domain.ErrCodeVoucherAlreadyUsed) {
			return nil, err
		}
		return nil, domain.NewStorageUnavailableError("place order", err)
	}

	s.logger.Info("order created",
		"order_number", order.Number,
		"product_id", product.ID,
		"voucher_used", voucher != nil,
	)

	return order, nil
}

// Cancel moves an order still waiting for payment to canceled.
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID, userID string) (*domain.Order, error) {
	order, err := s.loadByID(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	if err := order.MarkCanceled(); err != nil {
		return nil, err
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, domain.NewStorageUnavailableError("cancel order", err)
	}

	s.logger.Info("order canceled", "order_number", order.Number)
	return order, nil
}

// Pay reconciles an order against the gateway's own charge records and, on
// a captured charge, marks the order paid. The gateway is the only source
// of truth here; no client-supplied "paid" flag is ever trusted. Re-running
// Pay on an already paid order fails with a conflict, so a crash between
// the gateway call and the local save is repaired by calling Pay again.
func (s *OrderService) Pay(ctx context.Context, orderNumber, userID string) (*domain.Order, error) {
	order, err := s.loadByNumber(ctx, orderNumber, userID)
	if err != nil {
		return nil, err
	}

	if err := order.CanBePaid(); err != nil {
		return nil, err
	}

	charges, err := s.gateway.SearchChargesByOrderTag(ctx, order.Number)
	if err != nil {
		s.logger.Error("gateway charge lookup failed", "order_number", order.Number, "error", err)
		return nil, domain.NewGatewayLookupFailedError(err)
	}
	if len(charges) == 0 {
		return nil, domain.NewPaymentNotFoundError(order.Number)
	}

	var paid *application.Charge
	for i := range charges {
		if charges[i].Refunded {
			return nil, domain.NewAlreadyRefundedError(order.Number)
		}
		if paid == nil && charges[i].Paid {
			paid = &charges[i]
		}
	}
	if paid == nil {
		return nil, domain.NewPaymentIncompleteError(order.Number)
	}

	if err := order.MarkPaid(paid.ID); err != nil {
		return nil, err
	}

	if err := s.orders.Update(ctx, order); err != nil {
		// The charge exists at the gateway but the local save failed.
		// The order stays WaitingPayment, so a retried Pay finds the
		// same charge and completes the reconciliation.
		s.logger.Error("paid order could not be persisted",
			"order_number", order.Number,
			"external_reference", paid.ID,
			"error", err,
		)
		return nil, domain.NewStorageUnavailableError("record payment", err)
	}

	s.logger.Info("order paid", "order_number", order.Number, "external_reference", paid.ID)
	return order, nil
}

// Refund moves a paid order to refunded. Issuing the refund at the gateway
// is outside this service; only the local bookkeeping happens here.
func (s *OrderService) Refund(ctx context.Context, orderID uuid.UUID, userID string) (*domain.Order, error) {
	order, err := s.loadByID(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	if err := order.MarkRefunded(); err != nil {
		return nil, err
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, domain.NewStorageUnavailableError("refund order", err)
	}

	s.logger.Info("order refunded", "order_number", order.Number)
	return order, nil
}

// List returns one page of the user's orders, oldest first, together with
// the unpaginated total.
func (s *OrderService) List(ctx context.Context, userID string, page Page) (*PagedResult[*domain.Order], error) {
	orders, count, err := s.orders.FindByUser(ctx, userID, page.Size, page.Skip())
	if err != nil {
		return nil, domain.NewStorageUnavailableError("list orders", err)
	}
	return &PagedResult[*domain.Order]{Items: orders, TotalCount: count}, nil
}

func (s *OrderService) GetByNumber(ctx context.Context, orderNumber, userID string) (*domain.Order, error) {
	return s.loadByNumber(ctx, orderNumber, userID)
}

func (s *OrderService) loadByID(ctx context.Context, orderID uuid.UUID, userID string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, application.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("order")
		}
		return nil, domain.NewStorageUnavailableError("load order", err)
	}
	return order, nil
}

func (s *OrderService) loadByNumber(ctx context.Context, orderNumber, userID string) (*domain.Order, error) {
	order, err := s.orders.FindByNumber(ctx, orderNumber, userID)
	if err != nil {
		if errors.Is(err, application.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("order")
		}
		return nil, domain.NewStorageUnavailableError("load order", err)
	}
	return order, nil
}
