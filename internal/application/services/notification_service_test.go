package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/catermatch/backend/internal/application/services"
	"github.com/catermatch/backend/internal/domain/entities"
)

func TestNotificationService_NotifyBidAccepted(t *testing.T) {
	caterer := &entities.User{ID: "caterer-1", Email: "caterer@example.com", DisplayName: "Mehmet"}
	event := &entities.Event{ID: "event-1", OwnerID: "owner-1", Title: "Bruiloft"}
	bid := &entities.Bid{ID: "bid-1", EventID: "event-1", CatererID: "caterer-1", Amount: 1200}

	t.Run("records and sends the acceptance email", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		sender := new(MockEmailSender)
		service := services.NewNotificationService(repo, sender, "https://catermatch.example")

		repo.On("Create", mock.Anything, mock.MatchedBy(func(n *entities.EmailNotification) bool {
			return n.NotificationType == entities.NotificationBidAccepted &&
				n.Recipient == "caterer@example.com" &&
				n.Status == entities.NotificationStatusPending &&
				n.EventID == "event-1" && n.BidID == "bid-1"
		})).Return(nil)
		sender.On("Send", mock.Anything, "caterer@example.com", "Je bod is geaccepteerd: Bruiloft", mock.MatchedBy(func(html string) bool {
			return strings.Contains(html, "/chats/chat-1")
		})).Return("resend-msg-1", nil)
		repo.On("MarkSent", mock.Anything, mock.Anything, "resend-msg-1").Return(nil)

		service.NotifyBidAccepted(context.Background(), caterer, event, bid, "chat-1")

		repo.AssertExpectations(t)
		sender.AssertExpectations(t)
	})

	t.Run("a send failure is recorded, not propagated", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		sender := new(MockEmailSender)
		service := services.NewNotificationService(repo, sender, "https://catermatch.example")

		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("resend down"))
		repo.On("MarkFailed", mock.Anything, mock.Anything, "resend down").Return(nil)

		service.NotifyBidAccepted(context.Background(), caterer, event, bid, "chat-1")

		repo.AssertExpectations(t)
		repo.AssertNotCalled(t, "MarkSent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("an audit write failure skips the send", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		sender := new(MockEmailSender)
		service := services.NewNotificationService(repo, sender, "https://catermatch.example")

		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		service.NotifyBidAccepted(context.Background(), caterer, event, bid, "chat-1")

		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestNotificationService_NotifyBidSubmitted(t *testing.T) {
	owner := &entities.User{ID: "owner-1", Email: "owner@example.com", DisplayName: "Sanne"}
	caterer := &entities.User{ID: "caterer-1", Email: "caterer@example.com", DisplayName: "Mehmet", CompanyName: "Anatolië Catering"}
	event := &entities.Event{ID: "event-1", OwnerID: "owner-1", Title: "Bedrijfsborrel"}
	bid := &entities.Bid{ID: "bid-1", EventID: "event-1", CatererID: "caterer-1", Amount: 800, Message: "wij regelen alles inclusief bediening"}

	t.Run("emails the owner the company name, title and bid message", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		sender := new(MockEmailSender)
		service := services.NewNotificationService(repo, sender, "https://catermatch.example")

		repo.On("Create", mock.Anything, mock.MatchedBy(func(n *entities.EmailNotification) bool {
			return n.NotificationType == entities.NotificationBidSubmitted && n.Recipient == "owner@example.com"
		})).Return(nil)
		sender.On("Send", mock.Anything, "owner@example.com", "Nieuw bod op je aanvraag: Bedrijfsborrel", mock.MatchedBy(func(html string) bool {
			return strings.Contains(html, "Anatolië Catering") &&
				strings.Contains(html, "wij regelen alles inclusief bediening") &&
				strings.Contains(html, "/events/event-1")
		})).Return("resend-msg-2", nil)
		repo.On("MarkSent", mock.Anything, mock.Anything, "resend-msg-2").Return(nil)

		service.NotifyBidSubmitted(context.Background(), owner, caterer, event, bid)

		repo.AssertExpectations(t)
		sender.AssertExpectations(t)
	})

	t.Run("a bid without a message renders no quote block", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		sender := new(MockEmailSender)
		service := services.NewNotificationService(repo, sender, "https://catermatch.example")

		silent := &entities.Bid{ID: "bid-2", EventID: "event-1", CatererID: "caterer-1", Amount: 650}

		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		sender.On("Send", mock.Anything, "owner@example.com", mock.Anything, mock.MatchedBy(func(html string) bool {
			return !strings.Contains(html, "<blockquote>")
		})).Return("resend-msg-4", nil)
		repo.On("MarkSent", mock.Anything, mock.Anything, "resend-msg-4").Return(nil)

		service.NotifyBidSubmitted(context.Background(), owner, caterer, event, silent)

		sender.AssertExpectations(t)
	})

	t.Run("falls back to the display name without a company", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		sender := new(MockEmailSender)
		service := services.NewNotificationService(repo, sender, "https://catermatch.example")

		solo := &entities.User{ID: "caterer-2", Email: "lotte@example.com", DisplayName: "Lotte Jansen"}

		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		sender.On("Send", mock.Anything, "owner@example.com", mock.Anything, mock.MatchedBy(func(html string) bool {
			return strings.Contains(html, "Lotte Jansen")
		})).Return("resend-msg-3", nil)
		repo.On("MarkSent", mock.Anything, mock.Anything, "resend-msg-3").Return(nil)

		service.NotifyBidSubmitted(context.Background(), owner, solo, event, bid)

		assert.True(t, sender.AssertExpectations(t))
	})
}
