package routes

import (
	"net/http"

	"github.com/catermatch/backend/internal/api/handlers"
	"github.com/catermatch/backend/internal/api/middleware"
	"github.com/catermatch/backend/internal/domain/providers"
	"github.com/catermatch/backend/internal/domain/repositories"
	"github.com/catermatch/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	profileHandler *handlers.ProfileHandler
	eventHandler   *handlers.EventHandler
	bidHandler     *handlers.BidHandler
	chatHandler    *handlers.ChatHandler
	reviewHandler  *handlers.ReviewHandler
	uploadHandler  *handlers.UploadHandler
	healthHandler  *handlers.HealthHandler

	userRepo      repositories.UserRepository
	cacheProvider providers.CacheProvider
	metrics       *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	profileHandler *handlers.ProfileHandler,
	eventHandler *handlers.EventHandler,
	bidHandler *handlers.BidHandler,
	chatHandler *handlers.ChatHandler,
	reviewHandler *handlers.ReviewHandler,
	uploadHandler *handlers.UploadHandler,
	healthHandler *handlers.HealthHandler,
	userRepo repositories.UserRepository,
	cacheProvider providers.CacheProvider,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		profileHandler: profileHandler,
		eventHandler:   eventHandler,
		bidHandler:     bidHandler,
		chatHandler:    chatHandler,
		reviewHandler:  reviewHandler,
		uploadHandler:  uploadHandler,
		healthHandler:  healthHandler,

		userRepo:      userRepo,
		cacheProvider: cacheProvider,
		metrics:       metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint, outside authentication
	r.mux.HandleFunc("GET /health", r.healthHandler.Check)

	// Every /api route requires the X-User-Id identity header.
	api := http.NewServeMux()

	// Profile endpoints
	api.HandleFunc("POST /api/users", r.profileHandler.CreateProfile)
	api.HandleFunc("GET /api/users/{id}", r.profileHandler.GetProfile)
	api.HandleFunc("PUT /api/users/me", r.profileHandler.UpdateMyProfile)

	// Event endpoints
	api.HandleFunc("POST /api/events", r.eventHandler.CreateEvent)
	api.HandleFunc("GET /api/events/open", r.eventHandler.ListOpenEvents)
	api.HandleFunc("GET /api/events/mine", r.eventHandler.ListMyEvents)
	api.HandleFunc("GET /api/events/{id}", r.eventHandler.GetEvent)

	// Bid lifecycle endpoints
	api.HandleFunc("POST /api/events/{id}/bids", r.bidHandler.SubmitBid)
	api.HandleFunc("GET /api/events/{id}/bids", r.bidHandler.ListEventBids)
	api.HandleFunc("POST /api/events/{id}/bids/{bidId}/accept", r.bidHandler.AcceptBid)
	api.HandleFunc("POST /api/events/{id}/bids/{bidId}/reject", r.bidHandler.RejectBid)
	api.HandleFunc("GET /api/bids/mine", r.bidHandler.ListMyBids)

	// Review endpoints
	api.HandleFunc("PUT /api/events/{id}/review", r.reviewHandler.PlaceReview)
	api.HandleFunc("GET /api/caterers/{id}/reviews", r.reviewHandler.ListCatererReviews)

	// Chat endpoints
	api.HandleFunc("GET /api/chats/mine", r.chatHandler.ListMyChats)
	api.HandleFunc("GET /api/chats/{id}", r.chatHandler.GetChat)
	api.HandleFunc("GET /api/chats/{id}/messages", r.chatHandler.ListMessages)
	api.HandleFunc("POST /api/chats/{id}/messages", r.chatHandler.SendMessage)

	// Upload endpoints
	api.HandleFunc("GET /api/uploads/portfolio/{userId}", r.uploadHandler.ListPortfolio)
	api.HandleFunc("DELETE /api/uploads/portfolio/{name}", r.uploadHandler.RemovePortfolio)
	api.HandleFunc("POST /api/uploads/{bucket}", r.uploadHandler.Upload)

	// Shared read endpoints are served from the response cache when Redis
	// is up; the middleware is a no-op otherwise.
	responseCache := middleware.NewCacheMiddleware(r.cacheProvider)
	r.mux.Handle("/api/", middleware.AuthMiddleware(r.userRepo)(responseCache.Middleware(api)))

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so even preflight requests get their headers
	handler = middleware.CORSMiddleware(handler)

	return handler
}
