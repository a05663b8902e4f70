package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kollect/backend/internal/models"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CampaignStore interface {
	Create(ctx context.Context, c *models.Campaign) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
	List(ctx context.Context) ([]models.Campaign, error)
	// ListByBrand filters by status unless status is empty.
	ListByBrand(ctx context.Context, brandUserID uuid.UUID, status string) ([]models.Campaign, error)
	Update(ctx context.Context, c *models.Campaign) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookmarkStore keeps at most one bookmark per (kol, campaign) pair. Create must
// be a single atomic statement: it reports created=false instead of failing when
// the pair already exists, and ErrNotFound when either side is gone.
type BookmarkStore interface {
	Create(ctx context.Context, kolUserID, campaignID uuid.UUID) (b *models.Bookmark, created bool, err error)
	Get(ctx context.Context, kolUserID, campaignID uuid.UUID) (*models.Bookmark, error)
	Delete(ctx context.Context, kolUserID, campaignID uuid.UUID) (bool, error)
	ListByKOL(ctx context.Context, kolUserID uuid.UUID) ([]models.BookmarkEntry, error)
}

type AuditStore interface {
	Log(ctx context.Context, entry models.AuditLog) error
	ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit int) ([]models.AuditLog, error)
}

// Store bundles every repository of one database backend.
type Store struct {
	Users     UserStore
	Campaigns CampaignStore
	Bookmarks BookmarkStore
	Audit     AuditStore
}

// postgres SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
