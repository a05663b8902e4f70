package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kollect/backend/internal/events"
	"github.com/kollect/backend/internal/models"
	"github.com/kollect/backend/internal/rbac"
	"github.com/kollect/backend/internal/repositories"
)

// BookmarkStatus answers whether the actor has saved a campaign.
type BookmarkStatus struct {
	Bookmarked bool       `json:"bookmarked"`
	BookmarkID *uuid.UUID `json:"bookmark_id,omitempty"`
	CampaignID uuid.UUID  `json:"campaign_id"`
}

type BookmarkService struct {
	bookmarks repositories.BookmarkStore
	campaigns repositories.CampaignStore
	audit     repositories.AuditStore
	publisher events.Publisher
	log       *zap.Logger
}

func NewBookmarkService(
	bookmarks repositories.BookmarkStore,
	campaigns repositories.CampaignStore,
	audit repositories.AuditStore,
	publisher events.Publisher,
	log *zap.Logger,
) *BookmarkService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &BookmarkService{
		bookmarks: bookmarks,
		campaigns: campaigns,
		audit:     audit,
		publisher: publisher,
		log:       log,
	}
}

// Add saves the campaign for a KOL. Repeating it is not an error: the second and
// later calls report already_exists and leave the single row untouched.
func (s *BookmarkService) Add(ctx context.Context, actor *models.User, campaignID uuid.UUID) (models.BookmarkOutcome, error) {
	out := models.BookmarkOutcome{CampaignID: campaignID}
	if err := rbac.Authorize(actor, rbac.PermBookmarkCampaign); err != nil {
		return out, err
	}

	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return out, mapNotFound(err)
	}

	b, created, err := s.bookmarks.Create(ctx, actor.ID, campaign.ID)
	if err != nil {
		return out, mapNotFound(err)
	}
	if !created {
		out.Status = models.BookmarkAlreadyExists
		return out, nil
	}
	out.Status = models.BookmarkCreated

	writeAudit(ctx, s.audit, s.log, models.AuditLog{
		ActorUserID: &actor.ID,
		ActorType:   "user",
		Action:      "bookmark_added",
		EntityType:  "campaign",
		EntityID:    &campaign.ID,
		Meta:        map[string]any{"bookmark_id": b.ID.String()},
	})
	s.notify(ctx, events.EventBookmarkAdded, actor, campaign)
	return out, nil
}

// Remove deletes the actor's bookmark on the campaign. A missing bookmark is
// reported as not_found, not as an error.
func (s *BookmarkService) Remove(ctx context.Context, actor *models.User, campaignID uuid.UUID) (models.BookmarkOutcome, error) {
	out := models.BookmarkOutcome{CampaignID: campaignID}
	if err := rbac.Authorize(actor, rbac.PermBookmarkCampaign); err != nil {
		return out, err
	}

	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return out, mapNotFound(err)
	}

	removed, err := s.bookmarks.Delete(ctx, actor.ID, campaign.ID)
	if err != nil {
		return out, err
	}
	if !removed {
		out.Status = models.BookmarkNotFound
		return out, nil
	}
	out.Status = models.BookmarkRemoved

	writeAudit(ctx, s.audit, s.log, models.AuditLog{
		ActorUserID: &actor.ID,
		ActorType:   "user",
		Action:      "bookmark_removed",
		EntityType:  "campaign",
		EntityID:    &campaign.ID,
	})
	s.notify(ctx, events.EventBookmarkRemoved, actor, campaign)
	return out, nil
}

// List returns the actor's bookmarks with their campaigns, newest first.
func (s *BookmarkService) List(ctx context.Context, actor *models.User) ([]models.BookmarkEntry, error) {
	return s.bookmarks.ListByKOL(ctx, actor.ID)
}

func (s *BookmarkService) Status(ctx context.Context, actor *models.User, campaignID uuid.UUID) (BookmarkStatus, error) {
	st := BookmarkStatus{CampaignID: campaignID}
	if err := rbac.Authorize(actor, rbac.PermBookmarkCampaign); err != nil {
		return st, err
	}
	if _, err := s.campaigns.GetByID(ctx, campaignID); err != nil {
		return st, mapNotFound(err)
	}

	b, err := s.bookmarks.Get(ctx, actor.ID, campaignID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return st, nil
		}
		return st, err
	}
	st.Bookmarked = true
	st.BookmarkID = &b.ID
	return st, nil
}

// notify tells the campaign's brand about bookmark activity.
func (s *BookmarkService) notify(ctx context.Context, eventType string, kol *models.User, campaign *models.Campaign) {
	err := s.publisher.Publish(ctx, events.StreamNotifications, events.Event{
		Type:   eventType,
		UserID: campaign.BrandUserID,
		Payload: map[string]any{
			"campaign_id":    campaign.ID.String(),
			"campaign_title": campaign.Title,
			"kol_user_id":    kol.ID.String(),
			"kol_username":   kol.Username,
		},
	})
	if err != nil {
		s.log.Warn("publish failed", zap.String("type", eventType), zap.Error(err))
	}
}
