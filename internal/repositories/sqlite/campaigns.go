package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kollect/backend/internal/models"
	"github.com/kollect/backend/internal/repositories"
)

const campaignColumns = `id, brand_user_id, title, description, goal, platform,
	budget, status, timeline, created_at, updated_at`

type CampaignRepo struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner, c *models.Campaign) error {
	var timeline sql.NullString
	var createdAt, updatedAt int64
	if err := row.Scan(&c.ID, &c.BrandUserID, &c.Title, &c.Description, &c.Goal, &c.Platform,
		&c.Budget, &c.Status, &timeline, &createdAt, &updatedAt); err != nil {
		return notFound(err)
	}
	c.Timeline = nil
	if timeline.Valid {
		t, err := time.Parse(models.TimelineLayout, timeline.String)
		if err != nil {
			return fmt.Errorf("parse timeline %q: %w", timeline.String, err)
		}
		c.Timeline = &t
	}
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	return nil
}

func timelineValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(models.TimelineLayout)
}

func (r *CampaignRepo) Create(ctx context.Context, c *models.Campaign) error {
	c.ID = uuid.New()
	now := fromMillis(toMillis(time.Now()))
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO campaigns (`+campaignColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.BrandUserID, c.Title, c.Description, c.Goal, c.Platform,
		c.Budget, c.Status, timelineValue(c.Timeline), toMillis(now), toMillis(now))
	if err != nil {
		if isForeignKeyViolation(err) {
			return repositories.ErrNotFound
		}
		return fmt.Errorf("create campaign: %w", err)
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

func (r *CampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	var c models.Campaign
	row := r.db.QueryRowContext(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = ?`, id)
	if err := scanCampaign(row, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns every campaign in insertion order.
func (r *CampaignRepo) List(ctx context.Context) ([]models.Campaign, error) {
	return r.list(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY rowid`)
}

func (r *CampaignRepo) ListByBrand(ctx context.Context, brandUserID uuid.UUID, status string) ([]models.Campaign, error) {
	return r.list(ctx, `
		SELECT `+campaignColumns+` FROM campaigns
		WHERE brand_user_id = ? AND (? = '' OR status = ?)
		ORDER BY rowid
	`, brandUserID, status, status)
}

func (r *CampaignRepo) list(ctx context.Context, query string, args ...any) ([]models.Campaign, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []models.Campaign{}
	for rows.Next() {
		var c models.Campaign
		if err := scanCampaign(rows, &c); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepo) Update(ctx context.Context, c *models.Campaign) error {
	now := fromMillis(toMillis(time.Now()))
	res, err := r.db.ExecContext(ctx, `
		UPDATE campaigns SET title = ?, description = ?, goal = ?, platform = ?,
		       budget = ?, status = ?, timeline = ?, updated_at = ?
		WHERE id = ?
	`, c.Title, c.Description, c.Goal, c.Platform, c.Budget, c.Status,
		timelineValue(c.Timeline), toMillis(now), c.ID)
	if err != nil {
		return fmt.Errorf("update campaign: %w", err)
	}
	ok, err := affected(res)
	if err != nil {
		return err
	}
	if !ok {
		return repositories.ErrNotFound
	}
	c.UpdatedAt = now
	return nil
}

func (r *CampaignRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	ok, err := affected(res)
	if err != nil {
		return err
	}
	if !ok {
		return repositories.ErrNotFound
	}
	return nil
}
