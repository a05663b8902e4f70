package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kollect/backend/internal/models"
)

type BookmarkRepo struct {
	pool *pgxpool.Pool
}

func NewBookmarkRepo(pool *pgxpool.Pool) *BookmarkRepo {
	return &BookmarkRepo{pool: pool}
}

// Create inserts the (kol, campaign) pair unless it already exists. The unique
// constraint decides, so concurrent callers for the same pair see exactly one
// created=true.
func (r *BookmarkRepo) Create(ctx context.Context, kolUserID, campaignID uuid.UUID) (*models.Bookmark, bool, error) {
	b := models.Bookmark{KOLUserID: kolUserID, CampaignID: campaignID}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO bookmarks (kol_user_id, campaign_id)
		VALUES ($1, $2)
		ON CONFLICT (kol_user_id, campaign_id) DO NOTHING
		RETURNING id, created_at
	`, kolUserID, campaignID).Scan(&b.ID, &b.CreatedAt)

	switch {
	case err == nil:
		return &b, true, nil
	case errors.Is(err, pgx.ErrNoRows), pgErrCode(err) == pgUniqueViolation:
		existing, getErr := r.Get(ctx, kolUserID, campaignID)
		if getErr != nil {
			// removed again between the conflict and the read
			if errors.Is(getErr, ErrNotFound) {
				return &b, false, nil
			}
			return nil, false, getErr
		}
		return existing, false, nil
	case pgErrCode(err) == pgForeignKeyViolation:
		return nil, false, ErrNotFound
	default:
		return nil, false, fmt.Errorf("create bookmark: %w", err)
	}
}

func (r *BookmarkRepo) Get(ctx context.Context, kolUserID, campaignID uuid.UUID) (*models.Bookmark, error) {
	var b models.Bookmark
	err := r.pool.QueryRow(ctx, `
		SELECT id, kol_user_id, campaign_id, created_at
		FROM bookmarks WHERE kol_user_id = $1 AND campaign_id = $2
	`, kolUserID, campaignID).Scan(&b.ID, &b.KOLUserID, &b.CampaignID, &b.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// Delete reports whether a row was removed.
func (r *BookmarkRepo) Delete(ctx context.Context, kolUserID, campaignID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bookmarks WHERE kol_user_id = $1 AND campaign_id = $2`, kolUserID, campaignID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListByKOL returns the KOL's bookmarks with their campaigns, newest first.
func (r *BookmarkRepo) ListByKOL(ctx context.Context, kolUserID uuid.UUID) ([]models.BookmarkEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT b.id, b.kol_user_id, b.campaign_id, b.created_at,
		       c.id, c.brand_user_id, c.title, c.description, c.goal, c.platform,
		       c.budget::text, c.status, c.timeline, c.created_at, c.updated_at
		FROM bookmarks b
		JOIN campaigns c ON c.id = b.campaign_id
		WHERE b.kol_user_id = $1
		ORDER BY b.created_at DESC, b.id
	`, kolUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.BookmarkEntry{}
	for rows.Next() {
		var e models.BookmarkEntry
		c := &e.Campaign
		if err := rows.Scan(&e.ID, &e.KOLUserID, &e.CampaignID, &e.CreatedAt,
			&c.ID, &c.BrandUserID, &c.Title, &c.Description, &c.Goal, &c.Platform,
			&c.Budget, &c.Status, &c.Timeline, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
