package services

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/google/uuid"

	"github.com/catermatch/backend/internal/domain/entities"
	"github.com/catermatch/backend/internal/domain/providers"
	"github.com/catermatch/backend/internal/domain/repositories"
	"github.com/catermatch/backend/internal/infrastructure/observability"
)

// NotificationService sends the workflow emails and keeps an audit row for
// every attempt. Delivery is at-most-once: failures are recorded, never
// retried, and never propagated to the triggering request.
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	sender           providers.EmailSender
	publicBaseURL    string
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	sender providers.EmailSender,
	publicBaseURL string,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		sender:           sender,
		publicBaseURL:    publicBaseURL,
	}
}

// NotifyBidSubmitted emails the event owner that a new bid arrived.
func (n *NotificationService) NotifyBidSubmitted(ctx context.Context, owner *entities.User, caterer *entities.User, event *entities.Event, bid *entities.Bid) {
	subject := fmt.Sprintf("Nieuw bod op je aanvraag: %s", event.Title)

	catererName := caterer.CompanyName
	if catererName == "" {
		catererName = caterer.DisplayName
	}

	message := ""
	if bid.Message != "" {
		message = fmt.Sprintf(`<blockquote>%s</blockquote>`, html.EscapeString(bid.Message))
	}

	html := fmt.Sprintf(
		`<h2>Je hebt een nieuw bod ontvangen</h2>`+
			`<p><strong>%s</strong> heeft een bod van &euro;%.2f geplaatst op <strong>%s</strong>.</p>`+
			`%s`+
			`<p><a href="%s/events/%s">Bekijk het bod</a></p>`,
		catererName, bid.Amount, event.Title, message, n.publicBaseURL, event.ID,
	)

	n.deliver(ctx, entities.NotificationBidSubmitted, owner.Email, subject, html, event.ID, bid.ID)
}

// NotifyBidAccepted emails the winning caterer with a link to the new chat
// thread.
func (n *NotificationService) NotifyBidAccepted(ctx context.Context, caterer *entities.User, event *entities.Event, bid *entities.Bid, chatID string) {
	subject := fmt.Sprintf("Je bod is geaccepteerd: %s", event.Title)

	html := fmt.Sprintf(
		`<h2>Gefeliciteerd!</h2>`+
			`<p>Je bod van &euro;%.2f op <strong>%s</strong> is geaccepteerd.</p>`+
			`<p><a href="%s/chats/%s">Start het gesprek met de organisator</a></p>`,
		bid.Amount, event.Title, n.publicBaseURL, chatID,
	)

	n.deliver(ctx, entities.NotificationBidAccepted, caterer.Email, subject, html, event.ID, bid.ID)
}

// deliver writes the pending audit row, attempts the send and records the
// outcome. Errors are logged and swallowed so a mail outage never blocks the
// bid workflow.
func (n *NotificationService) deliver(ctx context.Context, notificationType entities.NotificationType, recipient, subject, html, eventID, bidID string) {
	logger := observability.LoggerFromContext(ctx)

	now := time.Now().UTC()
	record := &entities.EmailNotification{
		ID:               uuid.New().String(),
		NotificationType: notificationType,
		Recipient:        recipient,
		Subject:          subject,
		EventID:          eventID,
		BidID:            bidID,
		Status:           entities.NotificationStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := n.notificationRepo.Create(ctx, record); err != nil {
		logger.Error().Err(err).
			Str("notification_type", string(notificationType)).
			Str("event_id", eventID).
			Msg("failed to record notification")
		return
	}

	messageID, err := n.sender.Send(ctx, recipient, subject, html)
	if err != nil {
		logger.Error().Err(err).
			Str("notification_type", string(notificationType)).
			Str("recipient", recipient).
			Msg("failed to send notification email")
		if markErr := n.notificationRepo.MarkFailed(ctx, record.ID, err.Error()); markErr != nil {
			logger.Error().Err(markErr).Str("notification_id", record.ID).Msg("failed to mark notification failed")
		}
		return
	}

	if err := n.notificationRepo.MarkSent(ctx, record.ID, messageID); err != nil {
		logger.Error().Err(err).Str("notification_id", record.ID).Msg("failed to mark notification sent")
	}
}
