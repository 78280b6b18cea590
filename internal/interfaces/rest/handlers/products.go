package handlers

import (
	"net/http"

	"github.com/storefin/backend/internal/interfaces/rest"
)

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	page := rest.ParsePage(r)

	result, err := h.catalogService.ListProducts(r.Context(), page)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.PagedData{
		Items:      rest.ToProductResponses(result.Items),
		TotalCount: result.TotalCount,
		Page:       page.Number,
		PageSize:   page.Size,
	})
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogService.GetProductBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.ToProductResponse(product))
}
