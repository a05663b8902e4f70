package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/kollect/backend/internal/http/dto"
	"github.com/kollect/backend/internal/middleware"
	"github.com/kollect/backend/internal/models"
	"github.com/kollect/backend/internal/services"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	log             *zap.Logger
}

func NewCampaignHandler(campaignService *services.CampaignService, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService, log: log}
}

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	in, ok := h.parseInput(c)
	if !ok {
		return nil
	}

	campaign, err := h.campaignService.Create(c.UserContext(), middleware.GetUser(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "invalid campaign id")
	}

	campaign, err := h.campaignService.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	campaigns, err := h.campaignService.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	if campaigns == nil {
		campaigns = []models.Campaign{}
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: campaigns})
}

// MyCampaigns lists the caller's campaigns; ?status= narrows the list.
func (h *CampaignHandler) MyCampaigns(c *fiber.Ctx) error {
	campaigns, err := h.campaignService.Mine(c.UserContext(), middleware.GetUser(c), c.Query("status"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if campaigns == nil {
		campaigns = []models.Campaign{}
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: campaigns})
}

func (h *CampaignHandler) UpdateCampaign(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "invalid campaign id")
	}
	in, ok := h.parseInput(c)
	if !ok {
		return nil
	}

	campaign, err := h.campaignService.Update(c.UserContext(), middleware.GetUser(c), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) DeleteCampaign(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "invalid campaign id")
	}

	if err := h.campaignService.Delete(c.UserContext(), middleware.GetUser(c), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

// GetActivity returns the campaign's audit trail to the owning brand.
func (h *CampaignHandler) GetActivity(c *fiber.Ctx) error {
	id, ok := paramUUID(c, "id")
	if !ok {
		return badRequest(c, "invalid campaign id")
	}

	limit := c.QueryInt("limit", defaultActivityLimit)
	if limit <= 0 || limit > maxActivityLimit {
		limit = defaultActivityLimit
	}

	logs, err := h.campaignService.Activity(c.UserContext(), middleware.GetUser(c), id, limit)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: logs})
}

// parseInput writes the 400 itself and reports false on bad input.
func (h *CampaignHandler) parseInput(c *fiber.Ctx) (services.CampaignInput, bool) {
	var req dto.CampaignRequest
	if err := c.BodyParser(&req); err != nil {
		_ = badRequest(c, "invalid request body")
		return services.CampaignInput{}, false
	}

	in := services.CampaignInput{
		Title:       req.Title,
		Description: req.Description,
		Goal:        req.Goal,
		Platform:    req.Platform,
		Budget:      req.Budget,
		Status:      req.Status,
	}
	switch {
	case req.Timeline == nil:
	case *req.Timeline == "":
		in.ClearTimeline = true
	default:
		t, err := time.Parse(models.TimelineLayout, *req.Timeline)
		if err != nil {
			_ = badRequest(c, "timeline must be YYYY-MM-DD")
			return services.CampaignInput{}, false
		}
		in.Timeline = &t
	}
	return in, true
}
