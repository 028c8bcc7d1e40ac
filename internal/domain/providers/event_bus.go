package providers

import (
	"context"

	"github.com/catermatch/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// marketplace activity events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.MarketplaceEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.MarketplaceEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for the activity channels
const (
	// EventChannelMarketplaceUpdates carries every lifecycle event
	EventChannelMarketplaceUpdates = "marketplace:updates"

	// EventChannelEventPrefix is the prefix for per-event channels
	EventChannelEventPrefix = "event:"
)

// GetEventChannel returns the channel name scoped to a single event
func GetEventChannel(eventID string) string {
	return EventChannelEventPrefix + eventID
}
