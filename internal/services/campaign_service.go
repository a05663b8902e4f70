package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kollect/backend/internal/models"
	"github.com/kollect/backend/internal/rbac"
	"github.com/kollect/backend/internal/repositories"
)

// CampaignInput carries campaign fields. Nil fields are left untouched on update.
// ClearTimeline drops the timeline and wins over Timeline.
type CampaignInput struct {
	Title       *string
	Description *string
	Goal        *string
	Platform    *string
	Budget      *string
	Status      *string
	Timeline    *time.Time

	ClearTimeline bool
}

type CampaignService struct {
	campaigns repositories.CampaignStore
	audit     repositories.AuditStore
	log       *zap.Logger
}

func NewCampaignService(campaigns repositories.CampaignStore, audit repositories.AuditStore, log *zap.Logger) *CampaignService {
	return &CampaignService{campaigns: campaigns, audit: audit, log: log}
}

// List returns every campaign in insertion order.
func (s *CampaignService) List(ctx context.Context) ([]models.Campaign, error) {
	return s.campaigns.List(ctx)
}

// Mine lists the actor's own campaigns in insertion order, optionally narrowed
// to one status.
func (s *CampaignService) Mine(ctx context.Context, actor *models.User, status string) ([]models.Campaign, error) {
	if err := rbac.Authorize(actor, rbac.PermManageCampaign); err != nil {
		return nil, err
	}
	if status != "" && !models.IsValidCampaignStatus(status) {
		return nil, fmt.Errorf("%w: unknown campaign status %q", ErrInvalidInput, status)
	}
	return s.campaigns.ListByBrand(ctx, actor.ID, status)
}

func (s *CampaignService) Get(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	c, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return c, nil
}

func (s *CampaignService) Create(ctx context.Context, actor *models.User, in CampaignInput) (*models.Campaign, error) {
	if err := rbac.Authorize(actor, rbac.PermManageCampaign); err != nil {
		return nil, err
	}

	c := &models.Campaign{
		BrandUserID: actor.ID,
		Budget:      "0",
		Status:      models.CampaignStatusDraft,
	}
	if in.Status != nil && *in.Status != models.CampaignStatusDraft && *in.Status != models.CampaignStatusActive {
		return nil, fmt.Errorf("%w: new campaigns start as draft or active", ErrInvalidInput)
	}
	if err := applyCampaignInput(c, in); err != nil {
		return nil, err
	}

	if err := s.campaigns.Create(ctx, c); err != nil {
		return nil, mapNotFound(err)
	}

	writeAudit(ctx, s.audit, s.log, models.AuditLog{
		ActorUserID: &actor.ID,
		ActorType:   "user",
		Action:      "campaign_created",
		EntityType:  "campaign",
		EntityID:    &c.ID,
		Meta:        map[string]any{"title": c.Title, "status": c.Status},
	})
	return c, nil
}

func (s *CampaignService) Update(ctx context.Context, actor *models.User, id uuid.UUID, in CampaignInput) (*models.Campaign, error) {
	c, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	oldStatus := c.Status
	if err := applyCampaignInput(c, in); err != nil {
		return nil, err
	}
	if !models.IsValidCampaignTransition(oldStatus, c.Status) {
		return nil, fmt.Errorf("%w: invalid status transition from %s to %s", ErrInvalidInput, oldStatus, c.Status)
	}

	if err := s.campaigns.Update(ctx, c); err != nil {
		return nil, mapNotFound(err)
	}

	meta := map[string]any{}
	if oldStatus != c.Status {
		meta["old_status"] = oldStatus
		meta["new_status"] = c.Status
	}
	writeAudit(ctx, s.audit, s.log, models.AuditLog{
		ActorUserID: &actor.ID,
		ActorType:   "user",
		Action:      "campaign_updated",
		EntityType:  "campaign",
		EntityID:    &c.ID,
		Meta:        meta,
	})
	return c, nil
}

// Delete removes the campaign; its bookmarks go with it.
func (s *CampaignService) Delete(ctx context.Context, actor *models.User, id uuid.UUID) error {
	c, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.campaigns.Delete(ctx, c.ID); err != nil {
		return mapNotFound(err)
	}

	writeAudit(ctx, s.audit, s.log, models.AuditLog{
		ActorUserID: &actor.ID,
		ActorType:   "user",
		Action:      "campaign_deleted",
		EntityType:  "campaign",
		EntityID:    &c.ID,
		Meta:        map[string]any{"title": c.Title},
	})
	return nil
}

// Activity returns the audit trail of a campaign to its owner.
func (s *CampaignService) Activity(ctx context.Context, actor *models.User, id uuid.UUID, limit int) ([]models.AuditLog, error) {
	c, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.audit.ListByEntity(ctx, "campaign", c.ID, limit)
}

// owned loads a campaign the actor may mutate. Other brands' campaigns read as
// not found.
func (s *CampaignService) owned(ctx context.Context, actor *models.User, id uuid.UUID) (*models.Campaign, error) {
	if err := rbac.Authorize(actor, rbac.PermManageCampaign); err != nil {
		return nil, err
	}
	c, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if c.BrandUserID != actor.ID {
		return nil, ErrNotFound
	}
	return c, nil
}

func applyCampaignInput(c *models.Campaign, in CampaignInput) error {
	if in.Title != nil {
		c.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	if in.Goal != nil {
		c.Goal = in.Goal
	}
	if in.Platform != nil {
		c.Platform = strings.TrimSpace(*in.Platform)
	}
	if in.Budget != nil {
		c.Budget = strings.TrimSpace(*in.Budget)
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	switch {
	case in.ClearTimeline:
		c.Timeline = nil
	case in.Timeline != nil:
		t := in.Timeline.UTC().Truncate(24 * time.Hour)
		c.Timeline = &t
	}

	switch {
	case c.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	case len(c.Title) > 255:
		return fmt.Errorf("%w: title is longer than 255 characters", ErrInvalidInput)
	case c.Description == "":
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	case c.Platform == "":
		return fmt.Errorf("%w: platform is required", ErrInvalidInput)
	case len(c.Platform) > 100:
		return fmt.Errorf("%w: platform is longer than 100 characters", ErrInvalidInput)
	case !models.IsValidBudget(c.Budget):
		return fmt.Errorf("%w: budget must be a non-negative amount with at most 2 decimals", ErrInvalidInput)
	case !models.IsValidCampaignStatus(c.Status):
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, c.Status)
	}
	c.Budget = models.NormalizeBudget(c.Budget)
	return nil
}
