package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/storefin/backend/internal/interfaces/rest"
	"github.com/storefin/backend/internal/interfaces/rest/middleware"
)

type incomesAndExpensesRow struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Incomes  decimal.Decimal `json:"incomes"`
	Expenses decimal.Decimal `json:"expenses"`
}

type categoryTotalRow struct {
	Year     int             `json:"year"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type financialSummaryResponse struct {
	Incomes  decimal.Decimal `json:"incomes"`
	Expenses decimal.Decimal `json:"expenses"`
}

func (h *Handlers) IncomesAndExpenses(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.IncomesAndExpenses(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	out := make([]incomesAndExpensesRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, incomesAndExpensesRow(row))
	}
	rest.WriteJSON(w, http.StatusOK, out)
}

func (h *Handlers) IncomesByCategory(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.IncomesByCategory(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	out := make([]categoryTotalRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, categoryTotalRow(row))
	}
	rest.WriteJSON(w, http.StatusOK, out)
}

func (h *Handlers) ExpensesByCategory(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.ExpensesByCategory(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	out := make([]categoryTotalRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, categoryTotalRow(row))
	}
	rest.WriteJSON(w, http.StatusOK, out)
}

func (h *Handlers) FinancialSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.FinancialSummary(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, financialSummaryResponse(summary))
}
