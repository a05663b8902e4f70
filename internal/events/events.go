package events

import (
	"context"

	"github.com/google/uuid"
)

// Streams
const (
	StreamNotifications = "events:notifications"
)

// Event types
const (
	EventBookmarkAdded   = "bookmark_added"
	EventBookmarkRemoved = "bookmark_removed"
)

type Event struct {
	Type    string         `json:"type"`
	UserID  uuid.UUID      `json:"user_id"` // получатель
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}

// NopPublisher drops every event. Used when redis is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Event) error { return nil }

// NopSubscriber never delivers anything.
type NopSubscriber struct{}

func (NopSubscriber) Subscribe(context.Context, string, func(Event)) error { return nil }
