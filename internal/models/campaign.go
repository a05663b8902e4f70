package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Campaign statuses
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusCompleted = "completed"
	CampaignStatusCancelled = "cancelled"
)

// Valid state transitions: from -> []to
var ValidCampaignTransitions = map[string][]string{
	CampaignStatusDraft:     {CampaignStatusActive, CampaignStatusCancelled},
	CampaignStatusActive:    {CampaignStatusCompleted, CampaignStatusCancelled},
	CampaignStatusCompleted: {},
	CampaignStatusCancelled: {},
}

// TimelineLayout is the wire and storage format of Campaign.Timeline.
const TimelineLayout = "2006-01-02"

// NUMERIC(12,2): below 10^10, at most 2 fraction digits, never negative.
var maxBudget = decimal.New(1, 10)

type Campaign struct {
	ID          uuid.UUID  `json:"id"`
	BrandUserID uuid.UUID  `json:"brand_user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Goal        *string    `json:"goal,omitempty"`
	Platform    string     `json:"platform"`
	Budget      string     `json:"budget"`
	Status      string     `json:"status"`
	Timeline    *time.Time `json:"timeline,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func IsValidCampaignStatus(status string) bool {
	_, ok := ValidCampaignTransitions[status]
	return ok
}

// IsValidCampaignTransition reports whether a campaign may move from one status
// to another. Staying in the same known status is always allowed.
func IsValidCampaignTransition(from, to string) bool {
	allowed, ok := ValidCampaignTransitions[from]
	if !ok {
		return false
	}
	if from == to {
		return true
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsValidBudget accepts plain decimal notation only: no sign, exponent or spaces.
func IsValidBudget(budget string) bool {
	if budget == "" || strings.Trim(budget, "0123456789.") != "" {
		return false
	}
	d, err := decimal.NewFromString(budget)
	if err != nil {
		return false
	}
	return !d.IsNegative() && d.LessThan(maxBudget) && d.Equal(d.Truncate(2))
}

// NormalizeBudget renders a valid budget with exactly two fraction digits,
// the way NUMERIC(12,2) prints it.
func NormalizeBudget(budget string) string {
	d, err := decimal.NewFromString(budget)
	if err != nil {
		return budget
	}
	return d.StringFixed(2)
}
