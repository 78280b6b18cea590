package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/storefin/backend/internal/application"
	"github.com/storefin/backend/internal/domain"
)

// TransactionService is the ledger: user-scoped CRUD over financial
// transactions with sign normalization and period queries.
type TransactionService struct {
	transactions application.TransactionRepository
	logger       *slog.Logger
}

func NewTransactionService(transactions application.TransactionRepository, logger *slog.Logger) *TransactionService {
	return &TransactionService{transactions: transactions, logger: logger}
}

func (s *TransactionService) Create(ctx context.Context, userID string, cmd CreateTransactionCommand) (*domain.Transaction, error) {
	tx, err := domain.NewTransaction(userID, cmd.CategoryID, cmd.Title, cmd.Amount, cmd.Type, cmd.PaidOrReceivedAt)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, domain.NewStorageUnavailableError("create transaction", err)
	}

	s.logger.Info("transaction created", "transaction_id", tx.ID, "type", tx.Type.String())
	return tx, nil
}

func (s *TransactionService) Update(ctx context.Context, userID string, cmd UpdateTransactionCommand) (*domain.Transaction, error) {
	tx, err := s.load(ctx, cmd.ID, userID)
	if err != nil {
		return nil, err
	}

	tx.Apply(cmd.CategoryID, cmd.Title, cmd.Amount, cmd.Type, cmd.PaidOrReceivedAt)

	if err := s.transactions.Update(ctx, tx); err != nil {
		return nil, domain.NewStorageUnavailableError("update transaction", err)
	}
	return tx, nil
}

func (s *TransactionService) Delete(ctx context.Context, id uuid.UUID, userID string) (*domain.Transaction, error) {
	tx, err := s.load(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := s.transactions.Delete(ctx, id, userID); err != nil {
		return nil, domain.NewStorageUnavailableError("delete transaction", err)
	}
	return tx, nil
}

func (s *TransactionService) GetByID(ctx context.Context, id uuid.UUID, userID string) (*domain.Transaction, error) {
	return s.load(ctx, id, userID)
}

// GetByPeriod lists the user's transactions inside an inclusive date
// range, oldest first. Omitted bounds default to the first and last
// calendar day of the current month.
func (s *TransactionService) GetByPeriod(ctx context.Context, userID string, start, end *time.Time, page Page) (*PagedResult[*domain.Transaction], error) {
	now := time.Now()
	from := firstDayOfMonth(now)
	if start != nil {
		from = *start
	}
	to := lastDayOfMonth(now)
	if end != nil {
		to = *end
	}

	transactions, count, err := s.transactions.FindByPeriod(ctx, userID, from, to, page.Size, page.Skip())
	if err != nil {
		return nil, domain.NewStorageUnavailableError("list transactions", err)
	}
	return &PagedResult[*domain.Transaction]{Items: transactions, TotalCount: count}, nil
}

func (s *TransactionService) load(ctx context.Context, id uuid.UUID, userID string) (*domain.Transaction, error) {
	tx, err := s.transactions.FindByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, application.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("transaction")
		}
		return nil, domain.NewStorageUnavailableError("load transaction", err)
	}
	return tx, nil
}

func firstDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// lastDayOfMonth returns the final instant of the month's last calendar
// day, so BETWEEN-style range filters include the whole day.
func lastDayOfMonth(t time.Time) time.Time {
	return firstDayOfMonth(t).AddDate(0, 1, 0).Add(-time.Second)
}
