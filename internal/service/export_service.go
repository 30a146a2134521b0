package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
	"fintrack/internal/storage"
)

// ErrStorageNotConfigured is returned when no export bucket is configured.
var ErrStorageNotConfigured = errors.New("storage service not configured")

// ExportResult describes a completed ledger export.
type ExportResult struct {
	Location string
	Count    int
}

// ExportService snapshots a user's full ledger as CSV into object storage.
type ExportService interface {
	Export(ctx context.Context, userID int64) (*ExportResult, error)
	ListExports(ctx context.Context, userID int64) ([]storage.ObjectInfo, error)
}

type exportService struct {
	transactions repository.TransactionRepository
	storage      storage.Service
	bucket       string
	keyPrefix    string
}

func NewExportService(transactions repository.TransactionRepository, store storage.Service, bucket, keyPrefix string) ExportService {
	return &exportService{
		transactions: transactions,
		storage:      store,
		bucket:       bucket,
		keyPrefix:    strings.Trim(keyPrefix, "/"),
	}
}

func (s *exportService) Export(ctx context.Context, userID int64) (*ExportResult, error) {
	if s.storage == nil || s.bucket == "" {
		return nil, ErrStorageNotConfigured
	}

	total, err := s.transactions.Count(ctx, userID)
	if err != nil {
		return nil, err
	}

	var txs []domain.Transaction
	if total > 0 {
		txs, err = s.transactions.List(ctx, userID, int(total), 0)
		if err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "type", "category", "amount", "date", "description"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, tx := range txs {
		record := []string{
			strconv.FormatInt(tx.ID, 10),
			tx.Type,
			tx.Category,
			strconv.FormatFloat(tx.Amount, 'f', -1, 64),
			tx.Date,
			tx.Description,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	key := fmt.Sprintf("%s/%d/export-%s.csv", s.keyPrefix, userID, uuid.NewString())
	location, err := s.storage.UploadObject(ctx, s.bucket, key, "text/csv", &buf)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		Location: location,
		Count:    len(txs),
	}, nil
}

func (s *exportService) ListExports(ctx context.Context, userID int64) ([]storage.ObjectInfo, error) {
	if s.storage == nil || s.bucket == "" {
		return nil, ErrStorageNotConfigured
	}
	prefix := fmt.Sprintf("%s/%d/", s.keyPrefix, userID)
	return s.storage.ListObjects(ctx, s.bucket, prefix)
}
