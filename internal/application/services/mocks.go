package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/storefin/backend/internal/application"
	"github.com/storefin/backend/internal/domain"
)

// In-memory port implementations for tests. Each method can be overridden
// through its ...Fn field; the default behavior is a map-backed store.

// MockOrderRepository
type MockOrderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*domain.Order

	CreateFn       func(ctx context.Context, order *domain.Order) error
	UpdateFn       func(ctx context.Context, order *domain.Order) error
	FindByIDFn     func(ctx context.Context, id uuid.UUID, userID string) (*domain.Order, error)
	FindByNumberFn func(ctx context.Context, number, userID string) (*domain.Order, error)
	FindByUserFn   func(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, int64, error)
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{orders: make(map[uuid.UUID]*domain.Order)}
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateFn != nil {
		return m.CreateFn(ctx, order)
	}
	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, order)
	}
	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID, userID string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id, userID)
	}
	if o, ok := m.orders[id]; ok && o.UserID == userID {
		return o, nil
	}
	return nil, application.ErrRecordNotFound
}

func (m *MockOrderRepository) FindByNumber(ctx context.Context, number, userID string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FindByNumberFn != nil {
		return m.FindByNumberFn(ctx, number, userID)
	}
	for _, o := range m.orders {
		if o.Number == number && o.UserID == userID {
			return o, nil
		}
	}
	return nil, application.ErrRecordNotFound
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FindByUserFn != nil {
		return m.FindByUserFn(ctx, userID, limit, offset)
	}
	var all []*domain.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			all = append(all, o)
		}
	}
	sortOrdersByCreatedAt(all)
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func sortOrdersByCreatedAt(orders []*domain.Order) {
	for i := 1; i < len(orders); i++ {
		for j := i; j > 0 && orders[j].CreatedAt.Before(orders[j-1].CreatedAt); j-- {
			orders[j], orders[j-1] = orders[j-1], orders[j]
		}
	}
}

// MockProductRepository
type MockProductRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*domain.Product

	FindActiveByIDFn   func(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindActiveBySlugFn func(ctx context.Context, slug string) (*domain.Product, error)
	ListActiveFn       func(ctx context.Context, limit, offset int) ([]*domain.Product, int64, error)
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{products: make(map[uuid.UUID]*domain.Product)}
}

func (m *MockProductRepository) Add(product *domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
}

func (m *MockProductRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FindActiveByIDFn != nil {
		return m.FindActiveByIDFn(ctx, id)
	}
	if p, ok := m.products[id]; ok && p.IsActive {
		return p, nil
	}
	return nil, application.ErrRecordNotFound
}

func (m *MockProductRepository) FindActiveBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FindActiveBySlugFn != nil {
		return m.FindActiveBySlugFn(ctx, slug)
	}
	for _, p := range m.products {
		if p.Slug == slug && p.IsActive {
			return p, nil
		}
	}
	return nil, application.ErrRecordNotFound
}

func (m *MockProductRepository) ListActive(ctx context.Context, limit, offset int) ([]*domain.Product, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx, limit, offset)
	}
	var all []*domain.Product
	for _, p := range m.products {
		if p.IsActive {
			all = append(all, p)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

// MockVoucherRepository
type MockVoucherRepository struct {
	mu       sync.RWMutex
	vouchers map[uuid.UUID]*domain.Voucher

	FindByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Voucher, error)
	UpdateFn   func(ctx context.Context, voucher *domain.Voucher) error
}

func NewMockVoucherRepository() *MockVoucherRepository {
	return &MockVoucherRepository{vouchers: make(map[uuid.UUID]*domain.Voucher)}
}

func (m *MockVoucherRepository) Add(voucher *domain.Voucher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vouchers[voucher.ID] = voucher
}

func (m *MockVoucherRepository) Get(id uuid.UUID) *domain.Voucher {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vouchers[id]
}

func (m *MockVoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Voucher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	if v, ok := m.vouchers[id]; ok {
		return v, nil
	}
	return nil, application.ErrRecordNotFound
}

func (m *MockVoucherRepository) Update(ctx context.Context, voucher *domain.Voucher) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, voucher)
	}
	m.vouchers[voucher.ID] = voucher
	return nil
}

// MockTransactionRepository
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[uuid.UUID]*domain.Transaction

	CreateFn       func(ctx context.Context, tx *domain.Transaction) error
	UpdateFn       func(ctx context.Context, tx *domain.Transaction) error
	DeleteFn       func(ctx context.Context, id uuid.UUID, userID string) error
	FindByIDFn     func(ctx context.Context, id uuid.UUID, userID string) (*domain.Transaction, error)
	FindByPeriodFn func(ctx context.Context, userID string, start, end time.Time, limit, offset int) ([]*domain.Transaction, int64, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{transactions: make(map[uuid.UUID]*domain.Transaction)}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateFn != nil {
		return m.CreateFn(ctx, tx)
	}
	m.transactions[tx.ID] = tx
	return nil
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, tx)
	}
	m.transactions[tx.ID] = tx
	return nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, userID)
	}
	if tx, ok := m.transactions[id]; ok && tx.UserID == userID {
		delete(m.transactions, id)
		return nil
	}
	return application.ErrRecordNotFound
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID, userID string) (*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id, userID)
	}
	if tx, ok := m.transactions[id]; ok && tx.UserID == userID {
		return tx, nil
	}
	return nil, application.ErrRecordNotFound
}

func (m *MockTransactionRepository) FindByPeriod(ctx context.Context, userID string, start, end time.Time, limit, offset int) ([]*domain.Transaction, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FindByPeriodFn != nil {
		return m.FindByPeriodFn(ctx, userID, start, end, limit, offset)
	}
	var all []*domain.Transaction
	for _, tx := range m.transactions {
		if tx.UserID != userID {
			continue
		}
		if tx.PaidOrReceivedAt.Before(start) || tx.PaidOrReceivedAt.After(end) {
			continue
		}
		all = append(all, tx)
	}
	for i := 1; i < len(all); i++ {
		for j := i; j > 0 && all[j].PaidOrReceivedAt.Before(all[j-1].PaidOrReceivedAt); j-- {
			all[j], all[j-1] = all[j-1], all[j]
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

// MockReportRepository
type MockReportRepository struct {
	IncomesAndExpensesFn func(ctx context.Context, userID string) ([]domain.IncomesAndExpenses, error)
	IncomesByCategoryFn  func(ctx context.Context, userID string) ([]domain.IncomesByCategory, error)
	ExpensesByCategoryFn func(ctx context.Context, userID string) ([]domain.ExpensesByCategory, error)
	FinancialSummaryFn   func(ctx context.Context, userID string, start, end time.Time) (domain.FinancialSummary, error)
}

func (m *MockReportRepository) IncomesAndExpenses(ctx context.Context, userID string) ([]domain.IncomesAndExpenses, error) {
	if m.IncomesAndExpensesFn != nil {
		return m.IncomesAndExpensesFn(ctx, userID)
	}
	return nil, nil
}

func (m *MockReportRepository) IncomesByCategory(ctx context.Context, userID string) ([]domain.IncomesByCategory, error) {
	if m.IncomesByCategoryFn != nil {
		return m.IncomesByCategoryFn(ctx, userID)
	}
	return nil, nil
}

func (m *MockReportRepository) ExpensesByCategory(ctx context.Context, userID string) ([]domain.ExpensesByCategory, error) {
	if m.ExpensesByCategoryFn != nil {
		return m.ExpensesByCategoryFn(ctx, userID)
	}
	return nil, nil
}

func (m *MockReportRepository) FinancialSummary(ctx context.Context, userID string, start, end time.Time) (domain.FinancialSummary, error) {
	if m.FinancialSummaryFn != nil {
		return m.FinancialSummaryFn(ctx, userID, start, end)
	}
	return domain.FinancialSummary{}, nil
}

// MockPaymentGateway
type MockPaymentGateway struct {
	CreateSessionFn           func(ctx context.Context, req application.CheckoutSessionRequest) (string, error)
	SearchChargesByOrderTagFn func(ctx context.Context, orderNumber string) ([]application.Charge, error)
}

func (m *MockPaymentGateway) CreateSession(ctx context.Context, req application.CheckoutSessionRequest) (string, error) {
	if m.CreateSessionFn != nil {
		return m.CreateSessionFn(ctx, req)
	}
	return "cs_test_1", nil
}

func (m *MockPaymentGateway) SearchChargesByOrderTag(ctx context.Context, orderNumber string) ([]application.Charge, error) {
	if m.SearchChargesByOrderTagFn != nil {
		return m.SearchChargesByOrderTagFn(ctx, orderNumber)
	}
	return nil, nil
}

// MockUnitOfWork runs the unit against the supplied repositories without a
// real transaction. WithTransactionFn can force commit failures.
type MockUnitOfWork struct {
	Orders   application.OrderRepository
	Vouchers application.VoucherRepository

	WithTransactionFn func(ctx context.Context, fn func(orders application.OrderRepository, vouchers application.VoucherRepository) error) error
}

func (m *MockUnitOfWork) WithTransaction(ctx context.Context, fn func(orders application.OrderRepository, vouchers application.VoucherRepository) error) error {
	if m.WithTransactionFn != nil {
		return m.WithTransactionFn(ctx, fn)
	}
	return fn(m.Orders, m.Vouchers)
}
