package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/storefin/backend/internal/application/services"
	"github.com/storefin/backend/internal/domain"
	"github.com/storefin/backend/internal/interfaces/rest"
	"github.com/storefin/backend/internal/interfaces/rest/middleware"
)

type createOrderRequest struct {
	ProductID string  `json:"product_id"`
	VoucherID *string `json:"voucher_id,omitempty"`
}

func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, domain.NewValidationError("invalid request body"))
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		rest.WriteError(w, domain.NewValidationError("product_id must be a valid UUID"))
		return
	}

	cmd := services.CreateOrderCommand{ProductID: productID}
	if req.VoucherID != nil {
		voucherID, err := uuid.Parse(*req.VoucherID)
		if err != nil {
			rest.WriteError(w, domain.NewValidationError("voucher_id must be a valid UUID"))
			return
		}
		cmd.VoucherID = &voucherID
	}

	order, err := h.orderService.Create(r.Context(), middleware.UserID(r.Context()), cmd)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, rest.ToOrderResponse(order))
}

func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	page := rest.ParsePage(r)

	result, err := h.orderService.List(r.Context(), middleware.UserID(r.Context()), page)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.PagedData{
		Items:      rest.ToOrderResponses(result.Items),
		TotalCount: result.TotalCount,
		Page:       page.Number,
		PageSize:   page.Size,
	})
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.GetByNumber(r.Context(), r.PathValue("number"), middleware.UserID(r.Context()))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToOrderResponse(order))
}

func (h *Handlers) PayOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.Pay(r.Context(), r.PathValue("number"), middleware.UserID(r.Context()))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToOrderResponse(order))
}

func (h *Handlers) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		rest.WriteError(w, domain.NewValidationError("order id must be a valid UUID"))
		return
	}

	order, err := h.orderService.Cancel(r.Context(), orderID, middleware.UserID(r.Context()))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToOrderResponse(order))
}

func (h *Handlers) RefundOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		rest.WriteError(w, domain.NewValidationError("order id must be a valid UUID"))
		return
	}

	order, err := h.orderService.Refund(r.Context(), orderID, middleware.UserID(r.Context()))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToOrderResponse(order))
}
