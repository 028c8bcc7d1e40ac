package entities

import (
	"time"

	"github.com/google/uuid"
)

// MarketplaceEventType represents the type of marketplace activity event
type MarketplaceEventType string

const (
	MarketplaceEventTypeEventCreated MarketplaceEventType = "event_created"
	MarketplaceEventTypeBidSubmitted MarketplaceEventType = "bid_submitted"
	MarketplaceEventTypeBidAccepted  MarketplaceEventType = "bid_accepted"
	MarketplaceEventTypeBidRejected  MarketplaceEventType = "bid_rejected"
)

// MarketplaceEvent represents a lifecycle change broadcast to live listeners.
// Payload carries the ids a front-end needs to re-fetch the affected views.
type MarketplaceEvent struct {
	ID        string                 `json:"id"`
	EventID   string                 `json:"event_id"`
	EventType MarketplaceEventType   `json:"event_type"`
	ActorID   string                 `json:"actor_id"`
	Timestamp time.Time              `json:"timestamp"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// NewMarketplaceEvent creates a new marketplace activity event
func NewMarketplaceEvent(eventID string, eventType MarketplaceEventType, actorID string, payload map[string]interface{}) *MarketplaceEvent {
	return &MarketplaceEvent{
		ID:        uuid.New().String(),
		EventID:   eventID,
		EventType: eventType,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}
