package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefin/backend/internal/application/services"
	"github.com/storefin/backend/internal/domain"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// PagedData wraps one page of items with the unpaginated total so clients
// can render page controls.
type PagedData struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Data:    data,
	})
}

// ParsePage reads 1-based pagination from the query string, clamping the
// page size so a single request cannot drain the table.
func ParsePage(r *http.Request) services.Page {
	page := services.Page{Number: 1, Size: defaultPageSize}

	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page.Number = n
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page.Size = n
		}
	}
	if page.Size > maxPageSize {
		page.Size = maxPageSize
	}

	return page
}

type OrderResponse struct {
	ID                string    `json:"id"`
	Number            string    `json:"number"`
	ProductID         string    `json:"product_id"`
	VoucherID         *string   `json:"voucher_id,omitempty"`
	Status            string    `json:"status"`
	ExternalReference *string   `json:"external_reference,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func ToOrderResponse(o *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:                o.ID.String(),
		Number:            o.Number,
		ProductID:         o.ProductID.String(),
		Status:            o.Status.String(),
		ExternalReference: o.ExternalReference,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
	if o.VoucherID != nil {
		id := o.VoucherID.String()
		resp.VoucherID = &id
	}
	return resp
}

func ToOrderResponses(orders []*domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderResponse(o))
	}
	return out
}

type ProductResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
	}
}

func ToProductResponses(products []*domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}

type TransactionResponse struct {
	ID               string          `json:"id"`
	CategoryID       string          `json:"category_id"`
	Title            string          `json:"title"`
	Amount           decimal.Decimal `json:"amount"`
	Type             string          `json:"type"`
	PaidOrReceivedAt time.Time       `json:"paid_or_received_at"`
	CreatedAt        time.Time       `json:"created_at"`
}

func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:               t.ID.String(),
		CategoryID:       t.CategoryID.String(),
		Title:            t.Title,
		Amount:           t.Amount,
		Type:             t.Type.String(),
		PaidOrReceivedAt: t.PaidOrReceivedAt,
		CreatedAt:        t.CreatedAt,
	}
}

func ToTransactionResponses(transactions []*domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, ToTransactionResponse(t))
	}
	return out
}
