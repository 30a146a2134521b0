package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
)

const createTransactionsTable = `
CREATE TABLE IF NOT EXISTS transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	type TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	amount REAL NOT NULL DEFAULT 0,
	date TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	user_id INTEGER NOT NULL REFERENCES users(id),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const createTransactionsUserIndex = `
CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions(user_id);
`

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTransactionsTable); err != nil {
		return fmt.Errorf("create transactions table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createTransactionsUserIndex); err != nil {
		return fmt.Errorf("create transactions user index: %w", err)
	}
	return nil
}

func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) (int64, error) {
	now := time.Now().UTC()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO transactions (type, category, amount, date, description, user_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.Type,
		tx.Category,
		tx.Amount,
		tx.Date,
		tx.Description,
		tx.UserID,
		tx.CreatedAt,
		tx.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction last insert id: %w", err)
	}
	tx.ID = id
	return id, nil
}

func (r *TransactionRepository) Get(ctx context.Context, id, userID int64) (*domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, type, category, amount, date, description, user_id, created_at, updated_at
FROM transactions
WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	return scanTransaction(row)
}

// List returns one page of the user's ledger ordered by ascending id, so
// pages stay stable between calls regardless of sqlite's default row order.
func (r *TransactionRepository) List(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, type, category, amount, date, description, user_id, created_at, updated_at
FROM transactions
WHERE user_id = ?
ORDER BY id ASC
LIMIT ? OFFSET ?`,
		userID,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}

	return txs, rows.Err()
}

func (r *TransactionRepository) Count(ctx context.Context, userID int64) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM transactions WHERE user_id = ?`,
		userID,
	).Scan(&total); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return total, nil
}

// Update rewrites the full field set of a single entry. The returned count
// is the number of rows matched by the id + owner filter; zero means the
// entry does not exist or belongs to another user.
func (r *TransactionRepository) Update(ctx context.Context, tx *domain.Transaction) (int64, error) {
	tx.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE transactions
SET type=?, category=?, amount=?, date=?, description=?, updated_at=?
WHERE id=? AND user_id=?`,
		tx.Type,
		tx.Category,
		tx.Amount,
		tx.Date,
		tx.Description,
		tx.UpdatedAt,
		tx.ID,
		tx.UserID,
	)
	if err != nil {
		return 0, fmt.Errorf("update transaction: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("transaction update rows affected: %w", err)
	}
	return aff, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM transactions WHERE id=? AND user_id=?`,
		id,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete transaction: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("transaction delete rows affected: %w", err)
	}
	return aff, nil
}

func (r *TransactionRepository) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM transactions WHERE user_id=?`,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete transactions: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("transactions delete rows affected: %w", err)
	}
	return aff, nil
}

// Summarize sums amounts grouped by type, optionally sub-grouped by the
// calendar month or year extracted from the date column. Date filters are
// inclusive on both ends and rely on dates being stored as YYYY-MM-DD.
func (r *TransactionRepository) Summarize(ctx context.Context, userID int64, filter domain.SummaryFilter) ([]domain.SummaryRow, error) {
	query := `SELECT type, SUM(amount) AS total FROM transactions WHERE user_id = ?`
	args := []any{userID}
	withPeriod := false

	switch filter.Period {
	case domain.SummaryPeriodMonthly:
		query = `SELECT type, strftime('%Y-%m', date) AS period, SUM(amount) AS total FROM transactions WHERE user_id = ?`
		withPeriod = true
	case domain.SummaryPeriodYearly:
		query = `SELECT type, strftime('%Y', date) AS period, SUM(amount) AS total FROM transactions WHERE user_id = ?`
		withPeriod = true
	}

	if filter.StartDate != "" && filter.EndDate != "" {
		query += ` AND date BETWEEN ? AND ?`
		args = append(args, filter.StartDate, filter.EndDate)
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}

	if withPeriod {
		query += ` GROUP BY period, type ORDER BY period ASC, type ASC`
	} else {
		query += ` GROUP BY type ORDER BY type ASC`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query summary: %w", err)
	}
	defer rows.Close()

	var summary []domain.SummaryRow
	for rows.Next() {
		var row domain.SummaryRow
		if withPeriod {
			err = rows.Scan(&row.Type, &row.Period, &row.Total)
		} else {
			err = rows.Scan(&row.Type, &row.Total)
		}
		if err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		summary = append(summary, row)
	}

	return summary, rows.Err()
}

func scanTransaction(row interface {
	Scan(dest ...any) error
}) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := row.Scan(
		&tx.ID,
		&tx.Type,
		&tx.Category,
		&tx.Amount,
		&tx.Date,
		&tx.Description,
		&tx.UserID,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction not found")
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return &tx, nil
}
