// Package testutil builds throwaway SQLite-backed stores for tests.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"

	"github.com/kollect/backend/internal/db"
	"github.com/kollect/backend/internal/repositories"
	"github.com/kollect/backend/internal/repositories/sqlite"
	"github.com/kollect/backend/migrations"
)

// NewStore opens a migrated SQLite database in a temp dir, closed on cleanup.
func NewStore(t testing.TB) *repositories.Store {
	t.Helper()
	store, _ := Open(t)
	return store
}

// Open is NewStore that also hands back the raw handle for assertions the
// repositories do not expose.
func Open(t testing.TB) (*repositories.Store, *sql.DB) {
	t.Helper()
	ctx := context.Background()
	log := zaptest.NewLogger(t)

	sqlDB, err := db.NewSQLiteDB(ctx, filepath.Join(t.TempDir(), "kollect.db"), log)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.RunSQLiteMigrations(ctx, sqlDB, migrations.FS, "sqlite", log); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return sqlite.NewStore(sqlDB), sqlDB
}

// CountBookmarks counts ledger rows for one (kol, campaign) pair.
func CountBookmarks(t testing.TB, sqlDB *sql.DB, kolUserID, campaignID uuid.UUID) int {
	t.Helper()
	var n int
	err := sqlDB.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM bookmarks WHERE kol_user_id = ? AND campaign_id = ?`,
		kolUserID, campaignID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("count bookmarks: %v", err)
	}
	return n
}
