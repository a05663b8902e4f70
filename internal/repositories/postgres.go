package repositories

import "github.com/jackc/pgx/v5/pgxpool"

// NewPostgresStore wires every repository to one pgx pool.
func NewPostgresStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Users:     NewUserRepo(pool),
		Campaigns: NewCampaignRepo(pool),
		Bookmarks: NewBookmarkRepo(pool),
		Audit:     NewAuditRepo(pool),
	}
}
