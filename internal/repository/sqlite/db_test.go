package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"fintrack/internal/domain"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	users := NewUserRepository(db)
	require.NoError(t, users.Init(ctx))
	transactions := NewTransactionRepository(db)
	require.NoError(t, transactions.Init(ctx))

	return db
}

func seedUser(t *testing.T, db *sql.DB, username string) int64 {
	t.Helper()

	id, err := NewUserRepository(db).Create(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return id
}
