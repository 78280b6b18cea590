// Package handlers wires the HTTP routes to the application services.
package handlers

import (
	"net/http"

	"github.com/storefin/backend/internal/application/services"
)

type Handlers struct {
	orderService       *services.OrderService
	catalogService     *services.CatalogService
	transactionService *services.TransactionService
	reportService      *services.ReportService
	checkoutService    *services.CheckoutService
}

func NewHandlers(
	orderService *services.OrderService,
	catalogService *services.CatalogService,
	transactionService *services.TransactionService,
	reportService *services.ReportService,
	checkoutService *services.CheckoutService,
) *Handlers {
	return &Handlers{
		orderService:       orderService,
		catalogService:     catalogService,
		transactionService: transactionService,
		reportService:      reportService,
		checkoutService:    checkoutService,
	}
}

// RegisterRoutes attaches every authenticated route to the mux. The
// unauthenticated health endpoint is registered separately in main.
func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/orders", h.CreateOrder)
	mux.HandleFunc("GET /v1/orders", h.ListOrders)
	mux.HandleFunc("GET /v1/orders/{number}", h.GetOrder)
	mux.HandleFunc("POST /v1/orders/{number}/pay", h.PayOrder)
	mux.HandleFunc("POST /v1/orders/{number}/checkout", h.CreateCheckoutSession)
	mux.HandleFunc("POST /v1/orders/{id}/cancel", h.CancelOrder)
	mux.HandleFunc("POST /v1/orders/{id}/refund", h.RefundOrder)

	mux.HandleFunc("GET /v1/products", h.ListProducts)
	mux.HandleFunc("GET /v1/products/{slug}", h.GetProduct)

	mux.HandleFunc("POST /v1/transactions", h.CreateTransaction)
	mux.HandleFunc("GET /v1/transactions", h.ListTransactions)
	mux.HandleFunc("GET /v1/transactions/{id}", h.GetTransaction)
	mux.HandleFunc("PUT /v1/transactions/{id}", h.UpdateTransaction)
	mux.HandleFunc("DELETE /v1/transactions/{id}", h.DeleteTransaction)

	mux.HandleFunc("GET /v1/reports/incomes-expenses", h.IncomesAndExpenses)
	mux.HandleFunc("GET /v1/reports/incomes", h.IncomesByCategory)
	mux.HandleFunc("GET /v1/reports/expenses", h.ExpensesByCategory)
	mux.HandleFunc("GET /v1/reports/summary", h.FinancialSummary)
}
