package service

import (
	"context"
	"errors"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
)

var (
	// ErrInvalidPeriod is returned for a time period other than monthly or yearly.
	ErrInvalidPeriod = errors.New("time period must be monthly or yearly")
	// ErrIncompleteDateRange is returned when only one end of the date range is set.
	ErrIncompleteDateRange = errors.New("start date and end date must be provided together")
)

// SummaryService computes grouped totals over a user's ledger.
type SummaryService interface {
	Summarize(ctx context.Context, userID int64, filter domain.SummaryFilter) ([]domain.SummaryRow, error)
}

type summaryService struct {
	transactions repository.TransactionRepository
}

func NewSummaryService(transactions repository.TransactionRepository) SummaryService {
	return &summaryService{transactions: transactions}
}

func (s *summaryService) Summarize(ctx context.Context, userID int64, filter domain.SummaryFilter) ([]domain.SummaryRow, error) {
	switch filter.Period {
	case domain.SummaryPeriodNone, domain.SummaryPeriodMonthly, domain.SummaryPeriodYearly:
	default:
		return nil, ErrInvalidPeriod
	}

	if (filter.StartDate == "") != (filter.EndDate == "") {
		return nil, ErrIncompleteDateRange
	}

	return s.transactions.Summarize(ctx, userID, filter)
}
