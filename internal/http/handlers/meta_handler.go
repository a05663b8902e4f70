package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kollect/backend/internal/http/dto"
	"github.com/kollect/backend/internal/models"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

type MetaOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Suggested platforms. Campaigns may name any platform; this list only feeds the form.
var predefinedPlatforms = []MetaOption{
	{ID: "instagram", Label: "Instagram"},
	{ID: "tiktok", Label: "TikTok"},
	{ID: "youtube", Label: "YouTube"},
	{ID: "x", Label: "X (Twitter)"},
	{ID: "facebook", Label: "Facebook"},
	{ID: "threads", Label: "Threads"},
	{ID: "linkedin", Label: "LinkedIn"},
	{ID: "twitch", Label: "Twitch"},
	{ID: "blog", Label: "Blog"},
	{ID: "other", Label: "Other"},
}

var campaignStatuses = []MetaOption{
	{ID: models.CampaignStatusDraft, Label: "Draft"},
	{ID: models.CampaignStatusActive, Label: "Active"},
	{ID: models.CampaignStatusCompleted, Label: "Completed"},
	{ID: models.CampaignStatusCancelled, Label: "Cancelled"},
}

func (h *MetaHandler) GetPlatforms(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: predefinedPlatforms})
}

func (h *MetaHandler) GetCampaignStatuses(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: campaignStatuses})
}
