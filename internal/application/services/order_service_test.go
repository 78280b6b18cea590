package services_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefin/backend/internal/application"
	"github.com/storefin/backend/internal/application/services"
	"github.com/storefin/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type OrderServiceTestSuite struct {
	suite.Suite
	orders   *services.MockOrderRepository
	products *services.MockProductRepository
	vouchers *services.MockVoucherRepository
	gateway  *services.MockPaymentGateway
	uow      *services.MockUnitOfWork
	service  *services.OrderService
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.orders = services.NewMockOrderRepository()
	suite.products = services.NewMockProductRepository()
	suite.vouchers = services.NewMockVoucherRepository()
	suite.gateway = &services.MockPaymentGateway{}
	suite.uow = &services.MockUnitOfWork{Orders: suite.orders, Vouchers: suite.vouchers}

	logger := slog.New(slog.DiscardHandler)
	suite.service = services.NewOrderService(
		suite.orders,
		suite.products,
		suite.vouchers,
		suite.gateway,
		suite.uow,
		logger,
	)
}

func (suite *OrderServiceTestSuite) activeProduct() *domain.Product {
	product := &domain.Product{
		ID:       uuid.New(),
		Title:    "Yearly subscription",
		Slug:     "yearly-subscription",
		Price:    decimal.NewFromInt(100),
		IsActive: true,
	}
	suite.products.Add(product)
	return product
}

func (suite *OrderServiceTestSuite) activeVoucher() *domain.Voucher {
	voucher := &domain.Voucher{ID: uuid.New(), Number: "WELCOME10", IsActive: true}
	suite.vouchers.Add(voucher)
	return voucher
}

func (suite *OrderServiceTestSuite) placedOrder(userID string) *domain.Order {
	product := suite.activeProduct()
	order, err := suite.service.Create(context.Background(), userID, services.CreateOrderCommand{ProductID: product.ID})
	require.NoError(suite.T(), err)
	return order
}

// Create

func (suite *OrderServiceTestSuite) Test_Create_WithoutVoucher() {
	product := suite.activeProduct()

	order, err := suite.service.Create(context.Background(), "user-1", services.CreateOrderCommand{ProductID: product.ID})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusWaitingPayment, order.Status)
	assert.Equal(suite.T(), product.ID, order.ProductID)
	assert.NotEmpty(suite.T(), order.Number)
	assert.Nil(suite.T(), order.VoucherID)

	saved, err := suite.orders.FindByID(context.Background(), order.ID, "user-1")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusWaitingPayment, saved.Status)
}

func (suite *OrderServiceTestSuite) Test_Create_RedeemsVoucher() {
	product := suite.activeProduct()
	voucher := suite.activeVoucher()

	order, err := suite.service.Create(context.Background(), "user-1", services.CreateOrderCommand{
		ProductID: product.ID,
		VoucherID: &voucher.ID,
	})

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), order.VoucherID)
	assert.Equal(suite.T(), voucher.ID, *order.VoucherID)
	assert.False(suite.T(), suite.vouchers.Get(voucher.ID).IsActive)

	// The same voucher cannot back a second order.
	_, err = suite.service.Create(context.Background(), "user-1", services.CreateOrderCommand{
		ProductID: product.ID,
		VoucherID: &voucher.ID,
	})
	assert.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodeVoucherAlreadyUsed))
}

func (suite *OrderServiceTestSuite) Test_Create_UnknownProduct() {
	_, err := suite.service.Create(context.Background(), "user-1", services.CreateOrderCommand{ProductID: uuid.New()})

	assert.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodeNotFound))
}

func (suite *OrderServiceTestSuite) Test_Create_InactiveProduct() {
	product := suite.activeProduct()
	product.IsActive = false

	_, err := suite.service.Create(context.Background(), "user-1", services.CreateOrderCommand{ProductID: product.ID})

	assert.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodeNotFound))
}

func (suite *OrderServiceTestSuite) Test_Create_UnknownVoucher() {
	product := suite.activeProduct()
	voucherID := uuid.New()

	_, err := suite.service.Create(context.Background(), "user-1", services.CreateOrderCommand{
		ProductID: product.ID,
		VoucherID: &voucherID,
	})

	assert.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodeValidationFailure))
}

func (suite *OrderServiceTestSuite) Test_Create_UsedVoucher() {
	product := suite.activeProduct()
	voucher := &domain.Voucher{ID: uuid.New(), IsActive: false}
	suite.vouchers.Add(voucher)

	_, err := suite.service.Create(context.Background(), "user-1", services.CreateOrderCommand{
		ProductID: product.ID,
		VoucherID: &voucher.ID,
	})

	assert.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodeVoucherAlreadyUsed))
}

func (suite *OrderServiceTestSuite) Test_Create_UnitOfWorkFailure() {
	product := suite.activeProduct()
	voucher := suite.activeVoucher()
	suite.uow.WithTransactionFn = func(ctx context.Context, fn func(orders application.OrderRepository, vouchers application.VoucherRepository) error) error {
		return errors.New("connection reset")
	}

	_, err := suite.service.Create(context.Background(), "user-1", services.CreateOrderCommand{
		ProductID: product.ID,
		VoucherID: &voucher.ID,
	})

	assert.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodeStorageUnavailable))
	// Nothing committed: no order exists and the persisted voucher is
	// still active.
	_, _, findErr := suite.orders.FindByUser(context.Background(), "user-1", 10, 0)
	require.NoError(suite.T(), findErr)
	assert.True(suite.T(), suite.vouchers.Get(voucher.ID).IsActive)
}

func (suite *OrderServiceTestSuite) Test_Create_StorageFault() {
	suite.products.FindActiveByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
		return nil, errors.New("connection refused")
	}

	_, err := suite.service.Create(context.Background(), "user-1", services.CreateOrderCommand{ProductID: uuid.New()})

	assert.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodeStorageUnavailable))
}

// Cancel

func (suite *OrderServiceTestSuite) Test_Cancel_WaitingPayment() {
	order := suite.placedOrder("user-1")

	canceled, err := suite.service.Cancel(context.Background(), order.ID, "user-1")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusCanceled, canceled.Status)
}

func (suite *OrderServiceTestSuite) Test_Cancel_Twice() {
	order := suite.placedOrder("user-1")
	_, err := suite.service.Cancel(context.Background(), order.ID, "user-1")
	require.NoError(suite.T(), err)

	_, err = suite.service.Cancel(context.Background(), order.ID, "user-1")

	assert.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodeConflictingState))
	assert.Contains(suite.T(), err.Error(), "already canceled")
}

func (suite *OrderServiceTestSuite) Test_Cancel_ForeignOrder() {
	order := suite.placedOrder("user-1")

	_, err := suite.service.Cancel(context.Background(), order.ID, "user-2")

	assert.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodeNotFound))
}

// Pay

func (suite *OrderServiceTestSuite) Test_Pay_CapturedCharge() {
	order := suite.placedOrder("user-1")
	suite.gateway.SearchChargesByOrderTagFn = func(ctx context.Context, orderNumber string) ([]application.Charge, error) {
		suite.Equal(order.Number, orderNumber)
		return []application.Charge{{ID: "ch_1", Paid: true, Refunded: false}}, nil
	}

	paid, err := suite.service.Pay(context.Background(), order.Number, "user-1")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusPaid, paid.Status)
	require.NotNil(suite.T(), paid.ExternalReference)
	assert.Equal(suite.T(), "ch_1", *paid.ExternalReference)
}

func (suite *OrderServiceTestSuite) Test_Pay_PicksFirstPaidCharge() {
	order := suite.placedOrder("user-1")
	suite.gateway.SearchChargesByOrderTagFn = func(ctx context.Context, orderNumber string) ([]application.Charge, error) {
		return []application.Charge{
			{ID: "ch_pending", Paid: false},
			{ID: "ch_2", Paid: true},
		}, nil
	}

	paid, err := suite.service.Pay(context.Background(), order.Number, "user-1")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "ch_2", *paid.ExternalReference)
}

func (suite *OrderServiceTestSuite) Test_Pay_NoCharges() {
	order := suite.placedOrder("user-1")
	suite.gateway.SearchChargesByOrderTagFn = func(ctx context.Context, orderNumber string) ([]application.Charge, error) {
		return []application.Charge{}, nil
	}

	_, err := suite.service.Pay(context.Background(), order.Number, "user-1")

	assert.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodePaymentNotFound))
	unchanged, findErr := suite.orders.FindByID(context.Background(), order.ID, "user-1")
	require.NoError(suite.T(), findErr)
	assert.Equal(suite.T(), domain.StatusWaitingPayment, unchanged.Status)
}

func (suite *OrderServiceTestSuite) Test_Pay_RefundedCharge() {
	order := suite.placedOrder("user-1")
	suite.gateway.SearchChargesByOrderTagFn = func(ctx context.Context, orderNumber string) ([]application.Charge, error) {
		return []application.Charge{{ID: "ch_1", Paid: true, Refunded: true}}, nil
	}

	_, err := suite.service.Pay(context.Background(), order.Number, "user-1")

	assert.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodeAlreadyRefunded))
}

func (suite *OrderServiceTestSuite) Test_Pay_IncompleteCharge() {
	order := suite.placedOrder("user-1")
	suite.gateway.SearchChargesByOrderTagFn = func(ctx context.Context, orderNumber string) ([]application.Charge, error) {
		return []application.Charge{{ID: "ch_1", Paid: false, Status: "pending"}}, nil
	}

	_, err := suite.service.Pay(context.Background(), order.Number, "user-1")

	assert.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodePaymentIncomplete))
}

func (suite *OrderServiceTestSuite) Test_Pay_GatewayLookupFailure() {
	order := suite.placedOrder("user-1")
	suite.gateway.SearchChargesByOrderTagFn = func(ctx context.Context, orderNumber string) ([]application.Charge, error) {
		return nil, errors.New("gateway timeout")
	}

	_, err := suite.service.Pay(context.Background(), order.Number, "user-1")

	assert.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodeGatewayLookupFailed))
}

func (suite *OrderServiceTestSuite) Test_Pay_Idempotent() {
	order := suite.placedOrder("user-1")
	lookups := 0
	suite.gateway.SearchChargesByOrderTagFn = func(ctx context.Context, orderNumber string) ([]application.Charge, error) {
		lookups++
		return []application.Charge{{ID: "ch_1", Paid: true}}, nil
	}

	_, err := suite.service.Pay(context.Background(), order.Number, "user-1")
	require.NoError(suite.T(), err)

	_, err = suite.service.Pay(context.Background(), order.Number, "user-1")

	assert.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodeConflictingState))
	// The second call is rejected on local state alone, before any
	// gateway traffic.
	assert.Equal(suite.T(), 1, lookups)
}

func (suite *OrderServiceTestSuite) Test_Pay_RetriesAfterFailedSave() {
	order := suite.placedOrder("user-1")
	suite.gateway.SearchChargesByOrderTagFn = func(ctx context.Context, orderNumber string) ([]application.Charge, error) {
		return []application.Charge{{ID: "ch_1", Paid: true}}, nil
	}
	suite.orders.UpdateFn = func(ctx context.Context, o *domain.Order) error {
		return errors.New("connection reset")
	}

	_, err := suite.service.Pay(context.Background(), order.Number, "user-1")
	require.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodeStorageUnavailable))

	// The save never landed, so the stored order is still waiting for
	// payment; put the shared in-memory object back in that state and
	// let the retry find the same captured charge.
	order.Status = domain.StatusWaitingPayment
	order.ExternalReference = nil
	suite.orders.UpdateFn = nil

	paid, err := suite.service.Pay(context.Background(), order.Number, "user-1")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusPaid, paid.Status)
	assert.Equal(suite.T(), "ch_1", *paid.ExternalReference)
}

// Refund

func (suite *OrderServiceTestSuite) Test_Refund_PaidOrder() {
	order := suite.placedOrder("user-1")
	suite.gateway.SearchChargesByOrderTagFn = func(ctx context.Context, orderNumber string) ([]application.Charge, error) {
		return []application.Charge{{ID: "ch_1", Paid: true}}, nil
	}
	_, err := suite.service.Pay(context.Background(), order.Number, "user-1")
	require.NoError(suite.T(), err)

	refunded, err := suite.service.Refund(context.Background(), order.ID, "user-1")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusRefunded, refunded.Status)

	_, err = suite.service.Refund(context.Background(), order.ID, "user-1")
	assert.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodeConflictingState))
	assert.Contains(suite.T(), err.Error(), "already refunded")
}

func (suite *OrderServiceTestSuite) Test_Refund_UnpaidOrder() {
	order := suite.placedOrder("user-1")

	_, err := suite.service.Refund(context.Background(), order.ID, "user-1")

	assert.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodeConflictingState))
}

// List / GetByNumber

func (suite *OrderServiceTestSuite) Test_List_Pagination() {
	product := suite.activeProduct()
	var created []*domain.Order
	base := time.Now()
	for i := 0; i < 15; i++ {
		order, err := suite.service.Create(context.Background(), "user-1", services.CreateOrderCommand{ProductID: product.ID})
		require.NoError(suite.T(), err)
		order.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		created = append(created, order)
	}
	// A foreign user's order never leaks into the listing.
	_, err := suite.service.Create(context.Background(), "user-2", services.CreateOrderCommand{ProductID: product.ID})
	require.NoError(suite.T(), err)

	page2, err := suite.service.List(context.Background(), "user-1", services.Page{Number: 2, Size: 10})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(15), page2.TotalCount)
	require.Len(suite.T(), page2.Items, 5)
	for i, order := range page2.Items {
		assert.Equal(suite.T(), created[10+i].ID, order.ID)
	}
}

func (suite *OrderServiceTestSuite) Test_GetByNumber_ScopedToOwner() {
	order := suite.placedOrder("user-1")

	found, err := suite.service.GetByNumber(context.Background(), order.Number, "user-1")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), order.ID, found.ID)

	_, err = suite.service.GetByNumber(context.Background(), order.Number, "user-2")
	assert.True(suite.T(), domain.IsErrorCode(err, domain.ErrCodeNotFound))
}
