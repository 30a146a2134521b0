package service

import (
	"context"
	"errors"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
)

// ErrTransactionNotFound is returned when an entry does not exist or is
// owned by a different user; the two cases are indistinguishable on purpose.
var ErrTransactionNotFound = errors.New("transaction not found")

const (
	defaultPage  = 1
	defaultLimit = 10
)

// TransactionService coordinates ledger operations for an authenticated user.
// No field validation is applied to transaction payloads; type, category and
// date are stored as given.
type TransactionService interface {
	Create(ctx context.Context, userID int64, txs []domain.Transaction) ([]int64, error)
	List(ctx context.Context, userID int64, page, limit int) (*domain.TransactionPage, error)
	Get(ctx context.Context, userID, id int64) (*domain.Transaction, error)
	Update(ctx context.Context, userID, id int64, tx domain.Transaction) error
	Delete(ctx context.Context, userID, id int64) error
	DeleteAll(ctx context.Context, userID int64) (int64, error)
}

type transactionService struct {
	transactions repository.TransactionRepository
}

func NewTransactionService(transactions repository.TransactionRepository) TransactionService {
	return &transactionService{transactions: transactions}
}

// Create inserts each transaction independently and stops at the first
// failure. There is no atomicity across the batch: entries inserted before
// the failing one remain persisted.
func (s *transactionService) Create(ctx context.Context, userID int64, txs []domain.Transaction) ([]int64, error) {
	ids := make([]int64, 0, len(txs))
	for i := range txs {
		txs[i].UserID = userID
		id, err := s.transactions.Create(ctx, &txs[i])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *transactionService) List(ctx context.Context, userID int64, page, limit int) (*domain.TransactionPage, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	offset := (page - 1) * limit

	txs, err := s.transactions.List(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.transactions.Count(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &domain.TransactionPage{
		Page:         page,
		TotalPages:   totalPages,
		Limit:        limit,
		Total:        total,
		Transactions: txs,
	}, nil
}

func (s *transactionService) Get(ctx context.Context, userID, id int64) (*domain.Transaction, error) {
	tx, err := s.transactions.Get(ctx, id, userID)
	if err != nil {
		return nil, ErrTransactionNotFound
	}
	return tx, nil
}

func (s *transactionService) Update(ctx context.Context, userID, id int64, tx domain.Transaction) error {
	tx.ID = id
	tx.UserID = userID
	changed, err := s.transactions.Update(ctx, &tx)
	if err != nil {
		return err
	}
	if changed == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (s *transactionService) Delete(ctx context.Context, userID, id int64) error {
	changed, err := s.transactions.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if changed == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (s *transactionService) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	return s.transactions.DeleteAll(ctx, userID)
}
