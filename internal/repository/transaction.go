package repository

import (
	"context"

	"fintrack/internal/domain"
)

// TransactionRepository exposes persistence operations for ledger entries.
// Every read and write is scoped by the owning user id; Create stamps the
// owner from the transaction itself.
type TransactionRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, tx *domain.Transaction) (int64, error)
	Get(ctx context.Context, id, userID int64) (*domain.Transaction, error)
	List(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, error)
	Count(ctx context.Context, userID int64) (int64, error)
	Update(ctx context.Context, tx *domain.Transaction) (int64, error)
	Delete(ctx context.Context, id, userID int64) (int64, error)
	DeleteAll(ctx context.Context, userID int64) (int64, error)
	Summarize(ctx context.Context, userID int64, filter domain.SummaryFilter) ([]domain.SummaryRow, error)
}
