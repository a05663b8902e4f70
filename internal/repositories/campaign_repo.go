package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kollect/backend/internal/models"
)

const campaignColumns = `id, brand_user_id, title, description, goal, platform,
	budget::text, status, timeline, created_at, updated_at`

type CampaignRepo struct {
	pool *pgxpool.Pool
}

func NewCampaignRepo(pool *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

func scanCampaign(row pgx.Row) (*models.Campaign, error) {
	var c models.Campaign
	err := row.Scan(&c.ID, &c.BrandUserID, &c.Title, &c.Description, &c.Goal, &c.Platform,
		&c.Budget, &c.Status, &c.Timeline, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *CampaignRepo) Create(ctx context.Context, c *models.Campaign) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (brand_user_id, title, description, goal, platform, budget, status, timeline)
		VALUES ($1, $2, $3, $4, $5, $6::text::numeric, $7, $8)
		RETURNING id, budget::text, created_at, updated_at
	`, c.BrandUserID, c.Title, c.Description, c.Goal, c.Platform, c.Budget, c.Status, c.Timeline,
	).Scan(&c.ID, &c.Budget, &c.CreatedAt, &c.UpdatedAt)
	return createCampaignErr(err)
}

// createCampaignErr reports a brand that vanished before the insert as ErrNotFound.
func createCampaignErr(err error) error {
	switch {
	case err == nil:
		return nil
	case pgErrCode(err) == pgForeignKeyViolation:
		return ErrNotFound
	default:
		return fmt.Errorf("create campaign: %w", err)
	}
}

func (r *CampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	return scanCampaign(r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id))
}

// List returns every campaign in insertion order.
func (r *CampaignRepo) List(ctx context.Context) ([]models.Campaign, error) {
	return r.list(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY seq`)
}

func (r *CampaignRepo) ListByBrand(ctx context.Context, brandUserID uuid.UUID, status string) ([]models.Campaign, error) {
	return r.list(ctx, `
		SELECT `+campaignColumns+` FROM campaigns
		WHERE brand_user_id = $1 AND ($2::text = '' OR status = $2)
		ORDER BY seq
	`, brandUserID, status)
}

func (r *CampaignRepo) list(ctx context.Context, query string, args ...any) ([]models.Campaign, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []models.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepo) Update(ctx context.Context, c *models.Campaign) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE campaigns SET title = $1, description = $2, goal = $3, platform = $4,
		       budget = $5::text::numeric, status = $6, timeline = $7, updated_at = now()
		WHERE id = $8
		RETURNING budget::text, updated_at
	`, c.Title, c.Description, c.Goal, c.Platform, c.Budget, c.Status, c.Timeline, c.ID,
	).Scan(&c.Budget, &c.UpdatedAt)
	return notFound(err)
}

// Delete removes the campaign and, by cascade, every bookmark on it.
func (r *CampaignRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
