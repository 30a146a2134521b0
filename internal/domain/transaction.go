package domain

import "time"

// SummaryPeriod controls the calendar bucket used when grouping summary rows.
type SummaryPeriod string

const (
	SummaryPeriodNone    SummaryPeriod = ""
	SummaryPeriodMonthly SummaryPeriod = "monthly"
	SummaryPeriodYearly  SummaryPeriod = "yearly"
)

// Transaction is a single ledger entry owned by exactly one user.
// Type and category are free-form tags; date is a lexically sortable
// YYYY-MM-DD string, matching how it is persisted and filtered.
type Transaction struct {
	ID          int64
	Type        string
	Category    string
	Amount      float64
	Date        string
	Description string
	UserID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TransactionPage is one page of a user's ledger plus pagination totals.
type TransactionPage struct {
	Page         int
	TotalPages   int
	Limit        int
	Total        int64
	Transactions []Transaction
}

// SummaryFilter narrows which ledger rows contribute to a summary.
// StartDate and EndDate form an inclusive range and must be set together.
type SummaryFilter struct {
	StartDate string
	EndDate   string
	Category  string
	Period    SummaryPeriod
}

// SummaryRow is one grouped total. Period is empty unless a calendar
// bucket was requested.
type SummaryRow struct {
	Type   string
	Period string
	Total  float64
}
