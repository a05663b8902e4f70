// Package sqlite implements the repository interfaces on top of SQLite.
package sqlite

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/kollect/backend/internal/repositories"
)

// NewStore wires every repository to one SQLite handle. The handle must have been
// opened with foreign keys enabled (see db.NewSQLiteDB).
func NewStore(sqlDB *sql.DB) *repositories.Store {
	return &repositories.Store{
		Users:     &UserRepo{db: sqlDB},
		Campaigns: &CampaignRepo{db: sqlDB},
		Bookmarks: &BookmarkRepo{db: sqlDB},
		Audit:     &AuditRepo{db: sqlDB},
	}
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

func sqliteCode(err error) int {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()
	}
	return 0
}

func isUniqueViolation(err error) bool {
	switch sqliteCode(err) {
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if sqliteCode(err) == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed")
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repositories.ErrNotFound
	}
	return err
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var (
	_ repositories.UserStore     = (*UserRepo)(nil)
	_ repositories.CampaignStore = (*CampaignRepo)(nil)
	_ repositories.BookmarkStore = (*BookmarkRepo)(nil)
	_ repositories.AuditStore    = (*AuditRepo)(nil)
)
