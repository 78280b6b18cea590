package services

import (
	"context"
	"time"

	"github.com/storefin/backend/internal/application"
	"github.com/storefin/backend/internal/domain"
)

// ReportService derives summary views from the transaction ledger. Pure
// read side, no mutation anywhere.
type ReportService struct {
	reports application.ReportRepository
}

func NewReportService(reports application.ReportRepository) *ReportService {
	return &ReportService{reports: reports}
}

// IncomesAndExpenses returns one row per (year, month) that saw at least
// one transaction, newest year first, months ascending within a year.
func (s *ReportService) IncomesAndExpenses(ctx context.Context, userID string) ([]domain.IncomesAndExpenses, error) {
	rows, err := s.reports.IncomesAndExpenses(ctx, userID)
	if err != nil {
		return nil, domain.NewStorageUnavailableError("incomes and expenses report", err)
	}
	return rows, nil
}

func (s *ReportService) IncomesByCategory(ctx context.Context, userID string) ([]domain.IncomesByCategory, error) {
	rows, err := s.reports.IncomesByCategory(ctx, userID)
	if err != nil {
		return nil, domain.NewStorageUnavailableError("incomes by category report", err)
	}
	return rows, nil
}

func (s *ReportService) ExpensesByCategory(ctx context.Context, userID string) ([]domain.ExpensesByCategory, error) {
	rows, err := s.reports.ExpensesByCategory(ctx, userID)
	if err != nil {
		return nil, domain.NewStorageUnavailableError("expenses by category report", err)
	}
	return rows, nil
}

// FinancialSummary totals the user's deposits and withdrawals from the
// first day of the current month up to now. A month with no transactions
// yields zero totals, never an absent result.
func (s *ReportService) FinancialSummary(ctx context.Context, userID string) (domain.FinancialSummary, error) {
	now := time.Now()
	summary, err := s.reports.FinancialSummary(ctx, userID, firstDayOfMonth(now), now)
	if err != nil {
		return domain.FinancialSummary{}, domain.NewStorageUnavailableError("financial summary report", err)
	}
	return summary, nil
}
