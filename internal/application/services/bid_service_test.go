package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/catermatch/backend/internal/application/services"
	"github.com/catermatch/backend/internal/domain/entities"
	apperrors "github.com/catermatch/backend/pkg/errors"
)

func newBidService(bidRepo *MockBidRepository, eventRepo *MockEventRepository, chatRepo *MockChatRepository) *services.BidService {
	return services.NewBidService(bidRepo, eventRepo, new(MockUserRepository), chatRepo, nil, nil)
}

func catererAuth(id string) *entities.AuthContext {
	return &entities.AuthContext{UserID: id, Role: entities.UserRoleCaterer}
}

func ownerAuth(id string) *entities.AuthContext {
	return &entities.AuthContext{UserID: id, Role: entities.UserRoleOwner}
}

func TestBidService_SubmitBid(t *testing.T) {
	openEvent := &entities.Event{ID: "event-1", OwnerID: "owner-1", Title: "Bruiloft", Status: entities.EventStatusOpen}

	t.Run("creates a bid in status sent", func(t *testing.T) {
		bidRepo := new(MockBidRepository)
		eventRepo := new(MockEventRepository)
		service := newBidService(bidRepo, eventRepo, new(MockChatRepository))

		eventRepo.On("GetByID", mock.Anything, "event-1").Return(openEvent, nil)
		bidRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *entities.Bid) bool {
			return b.Status == entities.BidStatusSent && b.EventID == "event-1" && b.CatererID == "caterer-1" && b.Amount == 1200
		})).Return(nil)

		bid, err := service.SubmitBid(context.Background(), catererAuth("caterer-1"), "event-1", 1200, "wij regelen alles")

		assert.NoError(t, err)
		assert.Equal(t, entities.BidStatusSent, bid.Status)
		assert.NotEmpty(t, bid.ID)
		bidRepo.AssertExpectations(t)
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		service := newBidService(new(MockBidRepository), new(MockEventRepository), new(MockChatRepository))

		_, err := service.SubmitBid(context.Background(), catererAuth("caterer-1"), "event-1", 0, "")

		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
	})

	t.Run("rejects owners", func(t *testing.T) {
		service := newBidService(new(MockBidRepository), new(MockEventRepository), new(MockChatRepository))

		_, err := service.SubmitBid(context.Background(), ownerAuth("owner-1"), "event-1", 500, "")

		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeForbidden, apperrors.TypeOf(err))
	})

	t.Run("rejects bids on a booked event", func(t *testing.T) {
		bidRepo := new(MockBidRepository)
		eventRepo := new(MockEventRepository)
		service := newBidService(bidRepo, eventRepo, new(MockChatRepository))

		booked := &entities.Event{ID: "event-1", OwnerID: "owner-1", Status: entities.EventStatusBooked}
		eventRepo.On("GetByID", mock.Anything, "event-1").Return(booked, nil)

		_, err := service.SubmitBid(context.Background(), catererAuth("caterer-1"), "event-1", 500, "")

		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.TypeOf(err))
		bidRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestBidService_AcceptBid(t *testing.T) {
	openEvent := func() *entities.Event {
		return &entities.Event{ID: "event-1", OwnerID: "owner-1", Title: "Bruiloft", Status: entities.EventStatusOpen}
	}
	sentBid := func() *entities.Bid {
		return &entities.Bid{ID: "bid-1", EventID: "event-1", CatererID: "caterer-1", Amount: 1200, Status: entities.BidStatusSent}
	}

	t.Run("accepts the bid, books the event, rejects siblings and creates the chat", func(t *testing.T) {
		bidRepo := new(MockBidRepository)
		eventRepo := new(MockEventRepository)
		chatRepo := new(MockChatRepository)
		service := newBidService(bidRepo, eventRepo, chatRepo)

		siblings := []*entities.Bid{
			{ID: "bid-1", EventID: "event-1", CatererID: "caterer-1", Status: entities.BidStatusAccepted},
			{ID: "bid-2", EventID: "event-1", CatererID: "caterer-2", Status: entities.BidStatusSent},
			{ID: "bid-3", EventID: "event-1", CatererID: "caterer-3", Status: entities.BidStatusRejected},
		}

		bidRepo.On("GetByID", mock.Anything, "bid-1").Return(sentBid(), nil)
		eventRepo.On("GetByID", mock.Anything, "event-1").Return(openEvent(), nil)
		bidRepo.On("UpdateStatus", mock.Anything, "bid-1", entities.BidStatusAccepted).Return(nil)
		eventRepo.On("UpdateStatus", mock.Anything, "event-1", entities.EventStatusBooked).Return(nil)
		bidRepo.On("ListByEvent", mock.Anything, "event-1").Return(siblings, nil)
		// Only the sibling still in "sent" gets rejected.
		bidRepo.On("UpdateStatus", mock.Anything, "bid-2", entities.BidStatusRejected).Return(nil)
		chatRepo.On("FindByTriple", mock.Anything, "event-1", "owner-1", "caterer-1").
			Return(nil, apperrors.NewNotFoundError("chat not found"))
		chatRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *entities.Chat) bool {
			return c.EventID == "event-1" && c.OwnerID == "owner-1" && c.CatererID == "caterer-1"
		})).Return(nil)

		result, err := service.AcceptBid(context.Background(), ownerAuth("owner-1"), "event-1", "bid-1")

		assert.NoError(t, err)
		assert.Equal(t, entities.BidStatusAccepted, result.Bid.Status)
		assert.NotNil(t, result.Chat)
		bidRepo.AssertExpectations(t)
		eventRepo.AssertExpectations(t)
		chatRepo.AssertExpectations(t)
		bidRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, "bid-3", entities.BidStatusRejected)
	})

	t.Run("reuses an existing chat thread", func(t *testing.T) {
		bidRepo := new(MockBidRepository)
		eventRepo := new(MockEventRepository)
		chatRepo := new(MockChatRepository)
		service := newBidService(bidRepo, eventRepo, chatRepo)

		existing := &entities.Chat{ID: "chat-1", EventID: "event-1", OwnerID: "owner-1", CatererID: "caterer-1"}

		bidRepo.On("GetByID", mock.Anything, "bid-1").Return(sentBid(), nil)
		eventRepo.On("GetByID", mock.Anything, "event-1").Return(openEvent(), nil)
		bidRepo.On("UpdateStatus", mock.Anything, "bid-1", entities.BidStatusAccepted).Return(nil)
		eventRepo.On("UpdateStatus", mock.Anything, "event-1", entities.EventStatusBooked).Return(nil)
		bidRepo.On("ListByEvent", mock.Anything, "event-1").Return([]*entities.Bid{}, nil)
		chatRepo.On("FindByTriple", mock.Anything, "event-1", "owner-1", "caterer-1").Return(existing, nil)

		result, err := service.AcceptBid(context.Background(), ownerAuth("owner-1"), "event-1", "bid-1")

		assert.NoError(t, err)
		assert.Equal(t, "chat-1", result.Chat.ID)
		chatRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects a caller who does not own the event", func(t *testing.T) {
		bidRepo := new(MockBidRepository)
		eventRepo := new(MockEventRepository)
		service := newBidService(bidRepo, eventRepo, new(MockChatRepository))

		bidRepo.On("GetByID", mock.Anything, "bid-1").Return(sentBid(), nil)
		eventRepo.On("GetByID", mock.Anything, "event-1").Return(openEvent(), nil)

		_, err := service.AcceptBid(context.Background(), ownerAuth("someone-else"), "event-1", "bid-1")

		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeForbidden, apperrors.TypeOf(err))
		bidRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("refuses a bid that already left sent", func(t *testing.T) {
		bidRepo := new(MockBidRepository)
		eventRepo := new(MockEventRepository)
		service := newBidService(bidRepo, eventRepo, new(MockChatRepository))

		rejected := &entities.Bid{ID: "bid-1", EventID: "event-1", CatererID: "caterer-1", Status: entities.BidStatusRejected}
		bidRepo.On("GetByID", mock.Anything, "bid-1").Return(rejected, nil)
		eventRepo.On("GetByID", mock.Anything, "event-1").Return(openEvent(), nil)

		_, err := service.AcceptBid(context.Background(), ownerAuth("owner-1"), "event-1", "bid-1")

		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.TypeOf(err))
	})

	t.Run("refuses a second accept once the event is booked", func(t *testing.T) {
		bidRepo := new(MockBidRepository)
		eventRepo := new(MockEventRepository)
		service := newBidService(bidRepo, eventRepo, new(MockChatRepository))

		other := &entities.Bid{ID: "bid-2", EventID: "event-1", CatererID: "caterer-2", Status: entities.BidStatusSent}
		booked := &entities.Event{ID: "event-1", OwnerID: "owner-1", Status: entities.EventStatusBooked}

		bidRepo.On("GetByID", mock.Anything, "bid-2").Return(other, nil)
		eventRepo.On("GetByID", mock.Anything, "event-1").Return(booked, nil)

		_, err := service.AcceptBid(context.Background(), ownerAuth("owner-1"), "event-1", "bid-2")

		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.TypeOf(err))
		bidRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a bid that belongs to another event", func(t *testing.T) {
		bidRepo := new(MockBidRepository)
		eventRepo := new(MockEventRepository)
		service := newBidService(bidRepo, eventRepo, new(MockChatRepository))

		foreign := &entities.Bid{ID: "bid-1", EventID: "event-9", CatererID: "caterer-1", Status: entities.BidStatusSent}
		bidRepo.On("GetByID", mock.Anything, "bid-1").Return(foreign, nil)

		_, err := service.AcceptBid(context.Background(), ownerAuth("owner-1"), "event-1", "bid-1")

		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(err))
	})
}

func TestBidService_RejectBid(t *testing.T) {
	t.Run("rejects the bid and leaves the event open", func(t *testing.T) {
		bidRepo := new(MockBidRepository)
		eventRepo := new(MockEventRepository)
		service := newBidService(bidRepo, eventRepo, new(MockChatRepository))

		bid := &entities.Bid{ID: "bid-1", EventID: "event-1", CatererID: "caterer-1", Status: entities.BidStatusSent}
		event := &entities.Event{ID: "event-1", OwnerID: "owner-1", Status: entities.EventStatusOpen}

		bidRepo.On("GetByID", mock.Anything, "bid-1").Return(bid, nil)
		eventRepo.On("GetByID", mock.Anything, "event-1").Return(event, nil)
		bidRepo.On("UpdateStatus", mock.Anything, "bid-1", entities.BidStatusRejected).Return(nil)

		rejected, err := service.RejectBid(context.Background(), ownerAuth("owner-1"), "event-1", "bid-1")

		assert.NoError(t, err)
		assert.Equal(t, entities.BidStatusRejected, rejected.Status)
		eventRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("refuses to reject an accepted bid", func(t *testing.T) {
		bidRepo := new(MockBidRepository)
		eventRepo := new(MockEventRepository)
		service := newBidService(bidRepo, eventRepo, new(MockChatRepository))

		accepted := &entities.Bid{ID: "bid-1", EventID: "event-1", CatererID: "caterer-1", Status: entities.BidStatusAccepted}
		event := &entities.Event{ID: "event-1", OwnerID: "owner-1", Status: entities.EventStatusBooked}

		bidRepo.On("GetByID", mock.Anything, "bid-1").Return(accepted, nil)
		eventRepo.On("GetByID", mock.Anything, "event-1").Return(event, nil)

		_, err := service.RejectBid(context.Background(), ownerAuth("owner-1"), "event-1", "bid-1")

		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.TypeOf(err))
		bidRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBidService_ListEventBids(t *testing.T) {
	t.Run("only the owner can list bids", func(t *testing.T) {
		bidRepo := new(MockBidRepository)
		eventRepo := new(MockEventRepository)
		service := newBidService(bidRepo, eventRepo, new(MockChatRepository))

		event := &entities.Event{ID: "event-1", OwnerID: "owner-1", Status: entities.EventStatusOpen}
		eventRepo.On("GetByID", mock.Anything, "event-1").Return(event, nil)

		_, err := service.ListEventBids(context.Background(), catererAuth("caterer-1"), "event-1")

		assert.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeForbidden, apperrors.TypeOf(err))
	})
}
