package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kollect/backend/internal/models"
	"github.com/kollect/backend/internal/repositories"
)

type BookmarkRepo struct {
	db *sql.DB
}

func (r *BookmarkRepo) Create(ctx context.Context, kolUserID, campaignID uuid.UUID) (*models.Bookmark, bool, error) {
	b := models.Bookmark{
		ID:         uuid.New(),
		KOLUserID:  kolUserID,
		CampaignID: campaignID,
		CreatedAt:  fromMillis(toMillis(time.Now())),
	}
	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO bookmarks (id, kol_user_id, campaign_id, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (kol_user_id, campaign_id) DO NOTHING
		RETURNING id
	`, b.ID, kolUserID, campaignID, toMillis(b.CreatedAt)).Scan(&id)

	switch {
	case err == nil:
		return &b, true, nil
	case errors.Is(err, sql.ErrNoRows), isUniqueViolation(err):
		existing, getErr := r.Get(ctx, kolUserID, campaignID)
		if getErr != nil {
			if errors.Is(getErr, repositories.ErrNotFound) {
				return &b, false, nil
			}
			return nil, false, getErr
		}
		return existing, false, nil
	case isForeignKeyViolation(err):
		return nil, false, repositories.ErrNotFound
	default:
		return nil, false, fmt.Errorf("create bookmark: %w", err)
	}
}

func (r *BookmarkRepo) Get(ctx context.Context, kolUserID, campaignID uuid.UUID) (*models.Bookmark, error) {
	var b models.Bookmark
	var createdAt int64
	err := r.db.QueryRowContext(ctx, `
		SELECT id, kol_user_id, campaign_id, created_at
		FROM bookmarks WHERE kol_user_id = ? AND campaign_id = ?
	`, kolUserID, campaignID).Scan(&b.ID, &b.KOLUserID, &b.CampaignID, &createdAt)
	if err != nil {
		return nil, notFound(err)
	}
	b.CreatedAt = fromMillis(createdAt)
	return &b, nil
}

func (r *BookmarkRepo) Delete(ctx context.Context, kolUserID, campaignID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE kol_user_id = ? AND campaign_id = ?`, kolUserID, campaignID)
	if err != nil {
		return false, fmt.Errorf("delete bookmark: %w", err)
	}
	return affected(res)
}

func (r *BookmarkRepo) ListByKOL(ctx context.Context, kolUserID uuid.UUID) ([]models.BookmarkEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT b.id, b.kol_user_id, b.campaign_id, b.created_at,
		       c.id, c.brand_user_id, c.title, c.description, c.goal, c.platform,
		       c.budget, c.status, c.timeline, c.created_at, c.updated_at
		FROM bookmarks b
		JOIN campaigns c ON c.id = b.campaign_id
		WHERE b.kol_user_id = ?
		ORDER BY b.created_at DESC, b.rowid DESC
	`, kolUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.BookmarkEntry{}
	for rows.Next() {
		var e models.BookmarkEntry
		var createdAt int64
		row := &joinedRow{rows: rows, head: []any{&e.ID, &e.KOLUserID, &e.CampaignID, &createdAt}}
		if err := scanCampaign(row, &e.Campaign); err != nil {
			return nil, err
		}
		e.CreatedAt = fromMillis(createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// joinedRow prepends bookmark columns to the campaign columns scanCampaign reads.
type joinedRow struct {
	rows *sql.Rows
	head []any
}

func (j *joinedRow) Scan(dest ...any) error {
	return j.rows.Scan(append(j.head, dest...)...)
}
