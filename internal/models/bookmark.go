package models

import (
	"time"

	"github.com/google/uuid"
)

// Bookmark outcomes
const (
	BookmarkCreated       = "created"
	BookmarkAlreadyExists = "already_exists"
	BookmarkRemoved       = "removed"
	BookmarkNotFound      = "not_found"
)

type Bookmark struct {
	ID         uuid.UUID `json:"id"`
	KOLUserID  uuid.UUID `json:"kol_user_id"`
	CampaignID uuid.UUID `json:"campaign_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// BookmarkEntry is a bookmark joined with the campaign it points at.
type BookmarkEntry struct {
	Bookmark
	Campaign Campaign `json:"campaign"`
}

type BookmarkOutcome struct {
	Status     string    `json:"status"` // created/already_exists/removed/not_found
	CampaignID uuid.UUID `json:"campaign_id"`
}
