package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/catermatch/backend/internal/domain/entities"
	"github.com/catermatch/backend/internal/domain/repositories"
	"github.com/catermatch/backend/internal/infrastructure/observability"
	apperrors "github.com/catermatch/backend/pkg/errors"
)

// BidNotifier sends the workflow emails triggered by bid submission and
// acceptance. Implementations must not block on failure.
type BidNotifier interface {
	NotifyBidSubmitted(ctx context.Context, owner *entities.User, caterer *entities.User, event *entities.Event, bid *entities.Bid)
	NotifyBidAccepted(ctx context.Context, caterer *entities.User, event *entities.Event, bid *entities.Bid, chatID string)
}

// BidService implements the bid lifecycle: submission, acceptance and
// rejection, including the side effects acceptance fans out to.
type BidService struct {
	bidRepo   repositories.BidRepository
	eventRepo repositories.EventRepository
	userRepo  repositories.UserRepository
	chatRepo  repositories.ChatRepository
	notifier  BidNotifier
	activity  *ActivityPublisher
}

// NewBidService creates a new bid service
func NewBidService(
	bidRepo repositories.BidRepository,
	eventRepo repositories.EventRepository,
	userRepo repositories.UserRepository,
	chatRepo repositories.ChatRepository,
	notifier BidNotifier,
	activity *ActivityPublisher,
) *BidService {
	return &BidService{
		bidRepo:   bidRepo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		chatRepo:  chatRepo,
		notifier:  notifier,
		activity:  activity,
	}
}

// AcceptBidResult carries the accepted bid and the chat thread acceptance
// materialized for the two parties.
type AcceptBidResult struct {
	Bid  *entities.Bid  `json:"bid"`
	Chat *entities.Chat `json:"chat"`
}

// SubmitBid places a new bid on an open event. The bid starts in status
// "sent"; the event owner is notified by email.
func (s *BidService) SubmitBid(ctx context.Context, auth *entities.AuthContext, eventID string, amount float64, message string) (*entities.Bid, error) {
	if !auth.IsCaterer() {
		return nil, apperrors.NewForbiddenError("only caterers can place bids")
	}
	if amount <= 0 {
		return nil, apperrors.NewValidationError("bid amount must be greater than zero")
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != entities.EventStatusOpen {
		return nil, apperrors.NewConflictError("event is no longer open for bids")
	}

	bid := &entities.Bid{
		ID:        uuid.New().String(),
		EventID:   event.ID,
		CatererID: auth.UserID,
		Amount:    amount,
		Message:   message,
		Status:    entities.BidStatusSent,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.bidRepo.Create(ctx, bid); err != nil {
		return nil, err
	}

	// Email the owner outside the request path. A mail failure never
	// affects the stored bid.
	go s.notifySubmitted(event, bid)
	s.activity.BidSubmitted(ctx, bid)

	return bid, nil
}

// AcceptBid marks the bid as the winner of its event. The side effects run
// as ordered individual writes, not one transaction: accept the bid, book
// the event, reject the remaining open bids, materialize the chat thread
// and finally email the caterer. Preconditions are re-read server side so
// two competing accepts cannot both win.
func (s *BidService) AcceptBid(ctx context.Context, auth *entities.AuthContext, eventID, bidID string) (*AcceptBidResult, error) {
	bid, event, err := s.loadBidForDecision(ctx, auth, eventID, bidID)
	if err != nil {
		return nil, err
	}
	if event.Status != entities.EventStatusOpen {
		return nil, apperrors.NewConflictError("event is already booked")
	}

	// 1. Accept the winning bid.
	if err := s.bidRepo.UpdateStatus(ctx, bid.ID, entities.BidStatusAccepted); err != nil {
		return nil, err
	}
	bid.Status = entities.BidStatusAccepted

	// 2. Book the event.
	if err := s.eventRepo.UpdateStatus(ctx, event.ID, entities.EventStatusBooked); err != nil {
		return nil, err
	}
	event.Status = entities.EventStatusBooked

	// 3. Reject every sibling bid still in "sent", one row at a time.
	siblings, err := s.bidRepo.ListByEvent(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	for _, sibling := range siblings {
		if sibling.ID == bid.ID || sibling.Status != entities.BidStatusSent {
			continue
		}
		if err := s.bidRepo.UpdateStatus(ctx, sibling.ID, entities.BidStatusRejected); err != nil {
			return nil, err
		}
	}

	// 4. Materialize the chat thread for the pair.
	chat, err := s.findOrCreateChat(ctx, event.ID, event.OwnerID, bid.CatererID)
	if err != nil {
		return nil, err
	}

	// 5. Email the caterer with the chat link.
	go s.notifyAccepted(event, bid, chat.ID)
	s.activity.BidDecided(ctx, bid, event.OwnerID)

	return &AcceptBidResult{Bid: bid, Chat: chat}, nil
}

// RejectBid declines a single bid. Nothing else changes: the event stays
// open and the other bids keep their status.
func (s *BidService) RejectBid(ctx context.Context, auth *entities.AuthContext, eventID, bidID string) (*entities.Bid, error) {
	bid, event, err := s.loadBidForDecision(ctx, auth, eventID, bidID)
	if err != nil {
		return nil, err
	}

	if err := s.bidRepo.UpdateStatus(ctx, bid.ID, entities.BidStatusRejected); err != nil {
		return nil, err
	}
	bid.Status = entities.BidStatusRejected
	s.activity.BidDecided(ctx, bid, event.OwnerID)

	return bid, nil
}

// ListEventBids returns the bids on an event for its owner, caterer
// summaries included.
func (s *BidService) ListEventBids(ctx context.Context, auth *entities.AuthContext, eventID string) ([]*entities.Bid, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OwnerID != auth.UserID {
		return nil, apperrors.NewForbiddenError("only the event owner can list its bids")
	}

	return s.bidRepo.ListByEvent(ctx, eventID)
}

// ListMyBids returns the calling caterer's own bids across events.
func (s *BidService) ListMyBids(ctx context.Context, auth *entities.AuthContext) ([]*entities.Bid, error) {
	if !auth.IsCaterer() {
		return nil, apperrors.NewForbiddenError("only caterers have bids")
	}
	return s.bidRepo.ListByCaterer(ctx, auth.UserID)
}

// loadBidForDecision fetches the bid and its event and verifies that the
// caller owns the event and that the bid is still undecided.
func (s *BidService) loadBidForDecision(ctx context.Context, auth *entities.AuthContext, eventID, bidID string) (*entities.Bid, *entities.Event, error) {
	bid, err := s.bidRepo.GetByID(ctx, bidID)
	if err != nil {
		return nil, nil, err
	}
	if bid.EventID != eventID {
		return nil, nil, apperrors.NewNotFoundError(fmt.Sprintf("bid %s does not belong to event %s", bidID, eventID))
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	if event.OwnerID != auth.UserID {
		return nil, nil, apperrors.NewForbiddenError("only the event owner can decide on bids")
	}

	if bid.Status != entities.BidStatusSent {
		return nil, nil, apperrors.NewConflictError(fmt.Sprintf("bid is already %s", bid.Status))
	}

	return bid, event, nil
}

// findOrCreateChat returns the thread for the triple, creating it on first
// acceptance. Repeated accepts of the same pairing reuse the existing thread.
func (s *BidService) findOrCreateChat(ctx context.Context, eventID, ownerID, catererID string) (*entities.Chat, error) {
	chat, err := s.chatRepo.FindByTriple(ctx, eventID, ownerID, catererID)
	if err == nil {
		return chat, nil
	}
	if apperrors.TypeOf(err) != apperrors.ErrorTypeNotFound {
		return nil, err
	}

	chat = &entities.Chat{
		ID:        uuid.New().String(),
		EventID:   eventID,
		OwnerID:   ownerID,
		CatererID: catererID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}

	return chat, nil
}

func (s *BidService) notifySubmitted(event *entities.Event, bid *entities.Bid) {
	if s.notifier == nil {
		return
	}

	ctx := context.Background()
	logger := observability.GetLogger()

	owner, err := s.userRepo.GetByID(ctx, event.OwnerID)
	if err != nil {
		logger.Error().Err(err).Str("event_id", event.ID).Msg("failed to load owner for bid notification")
		return
	}
	caterer, err := s.userRepo.GetByID(ctx, bid.CatererID)
	if err != nil {
		logger.Error().Err(err).Str("bid_id", bid.ID).Msg("failed to load caterer for bid notification")
		return
	}

	s.notifier.NotifyBidSubmitted(ctx, owner, caterer, event, bid)
}

func (s *BidService) notifyAccepted(event *entities.Event, bid *entities.Bid, chatID string) {
	if s.notifier == nil {
		return
	}

	ctx := context.Background()
	logger := observability.GetLogger()

	caterer, err := s.userRepo.GetByID(ctx, bid.CatererID)
	if err != nil {
		logger.Error().Err(err).Str("bid_id", bid.ID).Msg("failed to load caterer for acceptance notification")
		return
	}

	s.notifier.NotifyBidAccepted(ctx, caterer, event, bid, chatID)
}
