package kafka

import (
	"context"
	"time"
)

// FavoritesChangedEvent is emitted after a user's favorites document changes
type FavoritesChangedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Action    string    `json:"action"`
	UserID    string    `json:"user_id"`
	DishIDs   []string  `json:"dish_ids"`
	Dishes    []string  `json:"dishes"`
	Timestamp time.Time `json:"timestamp"`
}

// LeaderChangedEvent is emitted after an admin mutates the leaders collection
type LeaderChangedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Action    string    `json:"action"`
	LeaderID  string    `json:"leader_id,omitempty"`
	ActorID   string    `json:"actor_id"`
	Count     int64     `json:"count,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeFavoritesChanged = "favorites.changed"
	EventTypeLeaderChanged    = "leader.changed"
)

// Event actions
const (
	ActionAdded   = "added"
	ActionRemoved = "removed"
	ActionCleared = "cleared"
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Kafka topics
const (
	TopicFavorites = "favorites-changed"
	TopicLeaders   = "leaders-changed"
)

// EventPublisher is what command handlers need from the event bus
type EventPublisher interface {
	PublishFavoritesChanged(ctx context.Context, event FavoritesChangedEvent) error
	PublishLeaderChanged(ctx context.Context, event LeaderChangedEvent) error
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishFavoritesChanged(context.Context, FavoritesChangedEvent) error {
	return nil
}

func (NopPublisher) PublishLeaderChanged(context.Context, LeaderChangedEvent) error {
	return nil
}
