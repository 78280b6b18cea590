package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefin/backend/internal/application/services"
	"github.com/storefin/backend/internal/domain"
	"github.com/storefin/backend/internal/interfaces/rest"
	"github.com/storefin/backend/internal/interfaces/rest/middleware"
)

type transactionRequest struct {
	CategoryID       string          `json:"category_id"`
	Title            string          `json:"title"`
	Amount           decimal.Decimal `json:"amount"`
	Type             int16           `json:"type"`
	PaidOrReceivedAt *time.Time      `json:"paid_or_received_at,omitempty"`
}

func (req *transactionRequest) validate() (uuid.UUID, domain.TransactionType, time.Time, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return uuid.Nil, 0, time.Time{}, domain.NewValidationError("category_id must be a valid UUID")
	}

	txType := domain.TransactionType(req.Type)
	if txType != domain.TypeDeposit && txType != domain.TypeWithdraw {
		return uuid.Nil, 0, time.Time{}, domain.NewValidationError("type must be 1 (deposit) or 2 (withdraw)")
	}

	paidOrReceivedAt := time.Now()
	if req.PaidOrReceivedAt != nil {
		paidOrReceivedAt = *req.PaidOrReceivedAt
	}

	return categoryID, txType, paidOrReceivedAt, nil
}

func (h *Handlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, domain.NewValidationError("invalid request body"))
		return
	}

	categoryID, txType, paidOrReceivedAt, err := req.validate()
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	tx, err := h.transactionService.Create(r.Context(), middleware.UserID(r.Context()), services.CreateTransactionCommand{
		CategoryID:       categoryID,
		Title:            req.Title,
		Amount:           req.Amount,
		Type:             txType,
		PaidOrReceivedAt: paidOrReceivedAt,
	})
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, rest.ToTransactionResponse(tx))
}

func (h *Handlers) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		rest.WriteError(w, domain.NewValidationError("transaction id must be a valid UUID"))
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, domain.NewValidationError("invalid request body"))
		return
	}

	categoryID, txType, paidOrReceivedAt, err := req.validate()
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	tx, err := h.transactionService.Update(r.Context(), middleware.UserID(r.Context()), services.UpdateTransactionCommand{
		ID:               id,
		CategoryID:       categoryID,
		Title:            req.Title,
		Amount:           req.Amount,
		Type:             txType,
		PaidOrReceivedAt: paidOrReceivedAt,
	})
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToTransactionResponse(tx))
}

func (h *Handlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		rest.WriteError(w, domain.NewValidationError("transaction id must be a valid UUID"))
		return
	}

	tx, err := h.transactionService.Delete(r.Context(), id, middleware.UserID(r.Context()))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToTransactionResponse(tx))
}

func (h *Handlers) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		rest.WriteError(w, domain.NewValidationError("transaction id must be a valid UUID"))
		return
	}

	tx, err := h.transactionService.GetByID(r.Context(), id, middleware.UserID(r.Context()))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToTransactionResponse(tx))
}

// ListTransactions returns the user's transactions inside a period. With
// no start_date or end_date the period defaults to the current month.
func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	start, err := parseDateParam(r, "start_date")
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	end, err := parseDateParam(r, "end_date")
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	page := rest.ParsePage(r)
	result, err := h.transactionService.GetByPeriod(r.Context(), middleware.UserID(r.Context()), start, end, page)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.PagedData{
		Items:      rest.ToTransactionResponses(result.Items),
		TotalCount: result.TotalCount,
		Page:       page.Number,
		PageSize:   page.Size,
	})
}

func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}

	return nil, domain.NewValidationError(name + " must be an RFC 3339 timestamp or a YYYY-MM-DD date")
}
