package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/catermatch/backend/internal/api/handlers"
	"github.com/catermatch/backend/internal/api/middleware"
	"github.com/catermatch/backend/internal/application/services"
	"github.com/catermatch/backend/internal/domain/entities"
	"github.com/catermatch/backend/internal/domain/repositories"
	apperrors "github.com/catermatch/backend/pkg/errors"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

type mockEventRepo struct{ mock.Mock }

func (m *mockEventRepo) Create(ctx context.Context, event *entities.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*entities.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Event), args.Error(1)
}

func (m *mockEventRepo) ListOpen(ctx context.Context, filter repositories.EventFilter) ([]*entities.Event, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Event), args.Error(1)
}

func (m *mockEventRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Event, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Event), args.Error(1)
}

func (m *mockEventRepo) UpdateStatus(ctx context.Context, id string, status entities.EventStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type mockBidRepo struct{ mock.Mock }

func (m *mockBidRepo) Create(ctx context.Context, bid *entities.Bid) error {
	return m.Called(ctx, bid).Error(0)
}

func (m *mockBidRepo) GetByID(ctx context.Context, id string) (*entities.Bid, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Bid), args.Error(1)
}

func (m *mockBidRepo) ListByEvent(ctx context.Context, eventID string) ([]*entities.Bid, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Bid), args.Error(1)
}

func (m *mockBidRepo) ListByCaterer(ctx context.Context, catererID string) ([]*entities.Bid, error) {
	args := m.Called(ctx, catererID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Bid), args.Error(1)
}

func (m *mockBidRepo) UpdateStatus(ctx context.Context, id string, status entities.BidStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type mockChatRepo struct{ mock.Mock }

func (m *mockChatRepo) Create(ctx context.Context, chat *entities.Chat) error {
	return m.Called(ctx, chat).Error(0)
}

func (m *mockChatRepo) GetByID(ctx context.Context, id string) (*entities.Chat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Chat), args.Error(1)
}

func (m *mockChatRepo) FindByTriple(ctx context.Context, eventID, ownerID, catererID string) (*entities.Chat, error) {
	args := m.Called(ctx, eventID, ownerID, catererID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Chat), args.Error(1)
}

func (m *mockChatRepo) ListByUser(ctx context.Context, userID string) ([]*entities.Chat, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Chat), args.Error(1)
}

// newBidServer wires a real BidService over mock repositories behind the auth
// middleware, the same onion a live request passes through.
func newBidServer(userRepo *mockUserRepo, eventRepo *mockEventRepo, bidRepo *mockBidRepo, chatRepo *mockChatRepo) http.Handler {
	bidService := services.NewBidService(bidRepo, eventRepo, userRepo, chatRepo, nil, nil)
	handler := handlers.NewBidHandler(bidService)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/events/{id}/bids", handler.SubmitBid)
	mux.HandleFunc("POST /api/events/{id}/bids/{bidId}/accept", handler.AcceptBid)
	mux.HandleFunc("GET /api/events/{id}/bids", handler.ListEventBids)

	return middleware.AuthMiddleware(userRepo)(mux)
}

func TestBidHandler_SubmitBid(t *testing.T) {
	openEvent := &entities.Event{ID: "event-1", OwnerID: "owner-1", Title: "Tuinfeest", Status: entities.EventStatusOpen}

	t.Run("creates a bid for an authenticated caterer", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		eventRepo := new(mockEventRepo)
		bidRepo := new(mockBidRepo)
		server := newBidServer(userRepo, eventRepo, bidRepo, new(mockChatRepo))

		userRepo.On("GetByID", mock.Anything, "caterer-1").
			Return(&entities.User{ID: "caterer-1", Role: entities.UserRoleCaterer}, nil)
		eventRepo.On("GetByID", mock.Anything, "event-1").Return(openEvent, nil)
		bidRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *entities.Bid) bool {
			return b.EventID == "event-1" && b.CatererID == "caterer-1" && b.Amount == 1500
		})).Return(nil)

		body, _ := json.Marshal(map[string]interface{}{"amount": 1500, "message": "incl. bediening"})
		req := httptest.NewRequest(http.MethodPost, "/api/events/event-1/bids", bytes.NewReader(body))
		req.Header.Set("X-User-Id", "caterer-1")
		rec := httptest.NewRecorder()

		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var bid entities.Bid
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bid))
		assert.Equal(t, entities.BidStatusSent, bid.Status)
		assert.NotEmpty(t, bid.ID)
		bidRepo.AssertExpectations(t)
	})

	t.Run("rejects requests without the identity header", func(t *testing.T) {
		server := newBidServer(new(mockUserRepo), new(mockEventRepo), new(mockBidRepo), new(mockChatRepo))

		req := httptest.NewRequest(http.MethodPost, "/api/events/event-1/bids", bytes.NewReader([]byte(`{"amount":100}`)))
		rec := httptest.NewRecorder()

		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("owners cannot bid", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		bidRepo := new(mockBidRepo)
		server := newBidServer(userRepo, new(mockEventRepo), bidRepo, new(mockChatRepo))

		userRepo.On("GetByID", mock.Anything, "owner-1").
			Return(&entities.User{ID: "owner-1", Role: entities.UserRoleOwner}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/events/event-1/bids", bytes.NewReader([]byte(`{"amount":100}`)))
		req.Header.Set("X-User-Id", "owner-1")
		rec := httptest.NewRecorder()

		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		bidRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("bidding on a booked event returns conflict", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		eventRepo := new(mockEventRepo)
		server := newBidServer(userRepo, eventRepo, new(mockBidRepo), new(mockChatRepo))

		userRepo.On("GetByID", mock.Anything, "caterer-1").
			Return(&entities.User{ID: "caterer-1", Role: entities.UserRoleCaterer}, nil)
		eventRepo.On("GetByID", mock.Anything, "event-1").
			Return(&entities.Event{ID: "event-1", OwnerID: "owner-1", Status: entities.EventStatusBooked}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/events/event-1/bids", bytes.NewReader([]byte(`{"amount":100}`)))
		req.Header.Set("X-User-Id", "caterer-1")
		rec := httptest.NewRecorder()

		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestBidHandler_AcceptBid(t *testing.T) {
	t.Run("accepting as the owner books the event and returns the chat", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		eventRepo := new(mockEventRepo)
		bidRepo := new(mockBidRepo)
		chatRepo := new(mockChatRepo)
		server := newBidServer(userRepo, eventRepo, bidRepo, chatRepo)

		bid := &entities.Bid{ID: "bid-1", EventID: "event-1", CatererID: "caterer-1", Amount: 900, Status: entities.BidStatusSent}

		userRepo.On("GetByID", mock.Anything, "owner-1").
			Return(&entities.User{ID: "owner-1", Role: entities.UserRoleOwner}, nil)
		bidRepo.On("GetByID", mock.Anything, "bid-1").Return(bid, nil)
		eventRepo.On("GetByID", mock.Anything, "event-1").
			Return(&entities.Event{ID: "event-1", OwnerID: "owner-1", Status: entities.EventStatusOpen}, nil)
		bidRepo.On("UpdateStatus", mock.Anything, "bid-1", entities.BidStatusAccepted).Return(nil)
		eventRepo.On("UpdateStatus", mock.Anything, "event-1", entities.EventStatusBooked).Return(nil)
		bidRepo.On("ListByEvent", mock.Anything, "event-1").Return([]*entities.Bid{bid}, nil)
		chatRepo.On("FindByTriple", mock.Anything, "event-1", "owner-1", "caterer-1").
			Return(nil, apperrors.NewNotFoundError("chat not found"))
		chatRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/api/events/event-1/bids/bid-1/accept", nil)
		req.Header.Set("X-User-Id", "owner-1")
		rec := httptest.NewRecorder()

		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var result services.AcceptBidResult
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, entities.BidStatusAccepted, result.Bid.Status)
		assert.NotNil(t, result.Chat)
	})

	t.Run("a non-owner gets forbidden", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		eventRepo := new(mockEventRepo)
		bidRepo := new(mockBidRepo)
		server := newBidServer(userRepo, eventRepo, bidRepo, new(mockChatRepo))

		userRepo.On("GetByID", mock.Anything, "caterer-2").
			Return(&entities.User{ID: "caterer-2", Role: entities.UserRoleCaterer}, nil)
		bidRepo.On("GetByID", mock.Anything, "bid-1").
			Return(&entities.Bid{ID: "bid-1", EventID: "event-1", CatererID: "caterer-1", Status: entities.BidStatusSent}, nil)
		eventRepo.On("GetByID", mock.Anything, "event-1").
			Return(&entities.Event{ID: "event-1", OwnerID: "owner-1", Status: entities.EventStatusOpen}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/events/event-1/bids/bid-1/accept", nil)
		req.Header.Set("X-User-Id", "caterer-2")
		rec := httptest.NewRecorder()

		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		bidRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}
