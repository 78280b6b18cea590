package handlers

import (
	"net/http"

	"github.com/storefin/backend/internal/interfaces/rest"
	"github.com/storefin/backend/internal/interfaces/rest/middleware"
)

type checkoutSessionResponse struct {
	SessionID string `json:"session_id"`
}

// CreateCheckoutSession opens a hosted payment page for an order still
// waiting for payment and returns the gateway session id.
func (h *Handlers) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID, err := h.checkoutService.CreateSession(
		ctx,
		middleware.UserID(ctx),
		middleware.Email(ctx),
		r.PathValue("number"),
	)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, checkoutSessionResponse{SessionID: sessionID})
}
