package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/catermatch/backend/internal/adapters/cache"
	"github.com/catermatch/backend/internal/adapters/database"
	"github.com/catermatch/backend/internal/adapters/events"
	"github.com/catermatch/backend/internal/adapters/storage"
	"github.com/catermatch/backend/internal/api/handlers"
	"github.com/catermatch/backend/internal/api/routes"
	"github.com/catermatch/backend/internal/application/services"
	"github.com/catermatch/backend/internal/domain/providers"
	"github.com/catermatch/backend/internal/domain/repositories"
	"github.com/catermatch/backend/internal/infrastructure/clients/postgres"
	"github.com/catermatch/backend/internal/infrastructure/clients/redis"
	"github.com/catermatch/backend/internal/infrastructure/notifications"
	"github.com/catermatch/backend/internal/infrastructure/observability"
	"github.com/catermatch/backend/pkg/config"
	"github.com/catermatch/backend/pkg/secrets"
)

func main() {
	// Pull managed secrets into the environment before reading config.
	vaultResult, err := secrets.ApplyVaultSecrets(context.Background(), secrets.LoadVaultConfigFromEnv(""))
	if err != nil {
		log.Printf("Warning: vault secrets not applied: %v", err)
	} else if vaultResult.Enabled {
		log.Printf("Loaded %d secrets from vault path %s (%d skipped)", vaultResult.Loaded, vaultResult.Path, vaultResult.Skipped)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.App.Environment)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// The activity feed rides on Redis pub/sub; without Redis the
	// publisher stays nil and publishing is skipped.
	var activity *services.ActivityPublisher
	if redisClient != nil {
		eventBus := events.NewRedisEventBus(redisClient)
		defer eventBus.Close()
		activity = services.NewActivityPublisher(eventBus)
	}

	// Initialize adapters

	baseUserAdapter := database.NewUserAdapter(pgClient)

	// Wrap with caching if Redis is available; profiles are read on every
	// authenticated request.
	var userAdapter repositories.UserRepository
	if cacheProvider != nil {
		userAdapter = database.NewCachedUserAdapter(baseUserAdapter, cacheProvider)
		log.Println("User adapter wrapped with caching layer")
	} else {
		userAdapter = baseUserAdapter
		log.Println("User adapter running without cache (Redis unavailable)")
	}

	eventAdapter := database.NewEventAdapter(pgClient)
	bidAdapter := database.NewBidAdapter(pgClient)
	chatAdapter := database.NewChatAdapter(pgClient)
	messageAdapter := database.NewMessageAdapter(pgClient)
	reviewAdapter := database.NewReviewAdapter(pgClient)
	notificationAdapter := database.NewNotificationAdapter(pgClient)

	// Initialize hosted object storage
	fileStorage, err := storage.NewHostedStorageAdapter(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage adapter: %v", err)
	}

	// Initialize the email sender; without an API key the workflow still
	// runs, it just skips notifications.
	var notifier services.BidNotifier
	emailSender, err := notifications.NewResendSender(&cfg.Email)
	if err != nil {
		log.Printf("Warning: email notifications disabled: %v", err)
	} else {
		notifier = services.NewNotificationService(notificationAdapter, emailSender, cfg.App.PublicBaseURL)
	}

	// Initialize services
	profileService := services.NewProfileService(userAdapter)
	eventService := services.NewEventService(eventAdapter, activity)
	bidService := services.NewBidService(bidAdapter, eventAdapter, userAdapter, chatAdapter, notifier, activity)
	chatService := services.NewChatService(chatAdapter, messageAdapter, fileStorage, cfg.Storage.SignedURLTTLSeconds)
	reviewService := services.NewReviewService(reviewAdapter, bidAdapter, eventAdapter, cacheProvider)
	mediaService := services.NewMediaService(fileStorage, chatAdapter)

	// Initialize handlers
	profileHandler := handlers.NewProfileHandler(profileService)
	eventHandler := handlers.NewEventHandler(eventService)
	bidHandler := handlers.NewBidHandler(bidService)
	chatHandler := handlers.NewChatHandler(chatService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	uploadHandler := handlers.NewUploadHandler(mediaService)

	var cachePinger handlers.Pinger
	if redisClient != nil {
		cachePinger = redisClient
	}
	healthHandler := handlers.NewHealthHandler(pgClient, cachePinger)

	// Set up router
	router := routes.NewRouter(
		profileHandler,
		eventHandler,
		bidHandler,
		chatHandler,
		reviewHandler,
		uploadHandler,
		healthHandler,
		userAdapter,
		cacheProvider,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
