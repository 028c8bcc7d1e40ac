package services

import (
	"context"

	"github.com/catermatch/backend/internal/domain/entities"
	"github.com/catermatch/backend/internal/domain/providers"
	"github.com/catermatch/backend/internal/infrastructure/observability"
)

// ActivityPublisher broadcasts bid lifecycle changes on the event bus so
// connected front-ends can re-fetch without polling. Publishing is best
// effort: a nil publisher or a failed publish never affects the workflow.
type ActivityPublisher struct {
	bus providers.EventBus
}

// NewActivityPublisher creates a new activity publisher
func NewActivityPublisher(bus providers.EventBus) *ActivityPublisher {
	return &ActivityPublisher{bus: bus}
}

// EventCreated announces a freshly posted event on the marketplace channel.
func (p *ActivityPublisher) EventCreated(ctx context.Context, event *entities.Event) {
	p.publish(ctx, providers.EventChannelMarketplaceUpdates,
		entities.NewMarketplaceEvent(event.ID, entities.MarketplaceEventTypeEventCreated, event.OwnerID, map[string]interface{}{
			"city": event.City,
		}))
}

// BidSubmitted announces a new bid on the event's own channel.
func (p *ActivityPublisher) BidSubmitted(ctx context.Context, bid *entities.Bid) {
	p.publish(ctx, providers.GetEventChannel(bid.EventID),
		entities.NewMarketplaceEvent(bid.EventID, entities.MarketplaceEventTypeBidSubmitted, bid.CatererID, map[string]interface{}{
			"bid_id": bid.ID,
		}))
}

// BidDecided announces an accept or reject on both the event channel and the
// marketplace channel; acceptance closes the event for everyone browsing it.
func (p *ActivityPublisher) BidDecided(ctx context.Context, bid *entities.Bid, ownerID string) {
	eventType := entities.MarketplaceEventTypeBidRejected
	if bid.Status == entities.BidStatusAccepted {
		eventType = entities.MarketplaceEventTypeBidAccepted
	}

	activity := entities.NewMarketplaceEvent(bid.EventID, eventType, ownerID, map[string]interface{}{
		"bid_id": bid.ID,
	})
	p.publish(ctx, providers.GetEventChannel(bid.EventID), activity)
	if eventType == entities.MarketplaceEventTypeBidAccepted {
		p.publish(ctx, providers.EventChannelMarketplaceUpdates, activity)
	}
}

func (p *ActivityPublisher) publish(ctx context.Context, channel string, activity *entities.MarketplaceEvent) {
	if p == nil || p.bus == nil {
		return
	}
	if err := p.bus.Publish(ctx, channel, activity); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("channel", channel).
			Str("activity_type", string(activity.EventType)).
			Msg("failed to publish activity event")
	}
}
