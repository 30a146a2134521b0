package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/domain"
)

func TestTransactionRepositoryCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")

	tx := &domain.Transaction{
		Type:        "expense",
		Category:    "groceries",
		Amount:      42.5,
		Date:        "2024-03-10",
		Description: "weekly shop",
		UserID:      userID,
	}
	id, err := repo.Create(ctx, tx)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))
	assert.False(t, tx.CreatedAt.IsZero())

	got, err := repo.Get(ctx, id, userID)
	require.NoError(t, err)
	assert.Equal(t, "expense", got.Type)
	assert.Equal(t, "groceries", got.Category)
	assert.Equal(t, 42.5, got.Amount)
	assert.Equal(t, "2024-03-10", got.Date)
	assert.Equal(t, userID, got.UserID)
}

func TestTransactionRepositoryOwnershipFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	id, err := repo.Create(ctx, &domain.Transaction{Type: "expense", Amount: 10, Date: "2024-01-01", UserID: alice})
	require.NoError(t, err)

	_, err = repo.Get(ctx, id, bob)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	changed, err := repo.Update(ctx, &domain.Transaction{ID: id, UserID: bob, Type: "income", Amount: 999})
	require.NoError(t, err)
	assert.Zero(t, changed)

	changed, err = repo.Delete(ctx, id, bob)
	require.NoError(t, err)
	assert.Zero(t, changed)

	// Still intact for the owner.
	got, err := repo.Get(ctx, id, alice)
	require.NoError(t, err)
	assert.Equal(t, "expense", got.Type)
	assert.Equal(t, 10.0, got.Amount)
}

func TestTransactionRepositoryListPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")
	other := seedUser(t, db, "bob")

	for i := 0; i < 15; i++ {
		_, err := repo.Create(ctx, &domain.Transaction{
			Type:   "expense",
			Amount: float64(i + 1),
			Date:   fmt.Sprintf("2024-01-%02d", i+1),
			UserID: userID,
		})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &domain.Transaction{Type: "income", Amount: 5, Date: "2024-01-01", UserID: other})
	require.NoError(t, err)

	total, err := repo.Count(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)

	firstPage, err := repo.List(ctx, userID, 10, 0)
	require.NoError(t, err)
	require.Len(t, firstPage, 10)

	secondPage, err := repo.List(ctx, userID, 10, 10)
	require.NoError(t, err)
	require.Len(t, secondPage, 5)

	// Ascending id order keeps pages disjoint and stable.
	assert.Greater(t, secondPage[0].ID, firstPage[9].ID)
	for i := 1; i < len(firstPage); i++ {
		assert.Greater(t, firstPage[i].ID, firstPage[i-1].ID)
	}
}

func TestTransactionRepositoryUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")

	id, err := repo.Create(ctx, &domain.Transaction{Type: "expense", Category: "food", Amount: 10, Date: "2024-01-01", UserID: userID})
	require.NoError(t, err)

	changed, err := repo.Update(ctx, &domain.Transaction{
		ID:          id,
		UserID:      userID,
		Type:        "income",
		Category:    "salary",
		Amount:      1500,
		Date:        "2024-02-01",
		Description: "corrected",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), changed)

	got, err := repo.Get(ctx, id, userID)
	require.NoError(t, err)
	assert.Equal(t, "income", got.Type)
	assert.Equal(t, "salary", got.Category)
	assert.Equal(t, 1500.0, got.Amount)
	assert.Equal(t, "corrected", got.Description)

	changed, err = repo.Update(ctx, &domain.Transaction{ID: 9999, UserID: userID, Type: "x"})
	require.NoError(t, err)
	assert.Zero(t, changed)
}

func TestTransactionRepositoryDeleteAllScoped(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, &domain.Transaction{Type: "expense", Amount: 1, Date: "2024-01-01", UserID: alice})
		require.NoError(t, err)
	}
	bobID, err := repo.Create(ctx, &domain.Transaction{Type: "expense", Amount: 1, Date: "2024-01-01", UserID: bob})
	require.NoError(t, err)

	deleted, err := repo.DeleteAll(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	remaining, err := repo.Count(ctx, alice)
	require.NoError(t, err)
	assert.Zero(t, remaining)

	_, err = repo.Get(ctx, bobID, bob)
	assert.NoError(t, err)
}

func TestTransactionRepositorySummarize(t *testing.T) {
	db := newTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	userID := seedUser(t, db, "alice")
	other := seedUser(t, db, "bob")

	seed := []domain.Transaction{
		{Type: "expense", Category: "food", Amount: 50, Date: "2024-01-15", UserID: userID},
		{Type: "expense", Category: "rent", Amount: 30, Date: "2024-01-20", UserID: userID},
		{Type: "income", Category: "salary", Amount: 100, Date: "2024-02-01", UserID: userID},
		{Type: "expense", Category: "food", Amount: 999, Date: "2024-01-10", UserID: other},
	}
	for i := range seed {
		_, err := repo.Create(ctx, &seed[i])
		require.NoError(t, err)
	}

	t.Run("grouped by type only", func(t *testing.T) {
		rows, err := repo.Summarize(ctx, userID, domain.SummaryFilter{})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, domain.SummaryRow{Type: "expense", Total: 80}, rows[0])
		assert.Equal(t, domain.SummaryRow{Type: "income", Total: 100}, rows[1])
	})

	t.Run("monthly buckets", func(t *testing.T) {
		rows, err := repo.Summarize(ctx, userID, domain.SummaryFilter{Period: domain.SummaryPeriodMonthly})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, domain.SummaryRow{Type: "expense", Period: "2024-01", Total: 80}, rows[0])
		assert.Equal(t, domain.SummaryRow{Type: "income", Period: "2024-02", Total: 100}, rows[1])
	})

	t.Run("yearly buckets", func(t *testing.T) {
		rows, err := repo.Summarize(ctx, userID, domain.SummaryFilter{Period: domain.SummaryPeriodYearly})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, domain.SummaryRow{Type: "expense", Period: "2024", Total: 80}, rows[0])
		assert.Equal(t, domain.SummaryRow{Type: "income", Period: "2024", Total: 100}, rows[1])
	})

	t.Run("inclusive date range", func(t *testing.T) {
		rows, err := repo.Summarize(ctx, userID, domain.SummaryFilter{
			StartDate: "2024-01-15",
			EndDate:   "2024-01-20",
		})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, domain.SummaryRow{Type: "expense", Total: 80}, rows[0])
	})

	t.Run("category filter", func(t *testing.T) {
		rows, err := repo.Summarize(ctx, userID, domain.SummaryFilter{Category: "food"})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, domain.SummaryRow{Type: "expense", Total: 50}, rows[0])
	})
}
