package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/catermatch/backend/internal/adapters/database"
	"github.com/catermatch/backend/internal/domain/entities"
	"github.com/catermatch/backend/internal/infrastructure/clients/postgres"
	"github.com/catermatch/backend/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	id           TEXT PRIMARY KEY,
	role         TEXT NOT NULL,
	display_name TEXT NOT NULL,
	email        TEXT NOT NULL,
	company_name TEXT,
	bio          TEXT,
	specialties  TEXT[],
	logo_url     TEXT,
	city         TEXT,
	website      TEXT,
	min_price    NUMERIC,
	price_note   TEXT,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
	id          TEXT PRIMARY KEY,
	owner_id    TEXT NOT NULL REFERENCES profiles(id),
	title       TEXT NOT NULL,
	description TEXT,
	date        TIMESTAMPTZ,
	guests      INTEGER,
	city        TEXT,
	budget      NUMERIC,
	address     TEXT,
	photos      TEXT[] NOT NULL DEFAULT '{}',
	status      TEXT NOT NULL DEFAULT 'open',
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_status_city ON events(status, city);
CREATE INDEX IF NOT EXISTS idx_events_owner ON events(owner_id);

CREATE TABLE IF NOT EXISTS bids (
	id         TEXT PRIMARY KEY,
	event_id   TEXT NOT NULL REFERENCES events(id),
	caterer_id TEXT NOT NULL REFERENCES profiles(id),
	amount     NUMERIC NOT NULL,
	message    TEXT,
	status     TEXT NOT NULL DEFAULT 'sent',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bids_event ON bids(event_id);
CREATE INDEX IF NOT EXISTS idx_bids_caterer ON bids(caterer_id);

CREATE TABLE IF NOT EXISTS chats (
	id         TEXT PRIMARY KEY,
	event_id   TEXT NOT NULL REFERENCES events(id),
	owner_id   TEXT NOT NULL REFERENCES profiles(id),
	caterer_id TEXT NOT NULL REFERENCES profiles(id),
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chats_triple ON chats(event_id, owner_id, caterer_id);

CREATE TABLE IF NOT EXISTS messages (
	id         TEXT PRIMARY KEY,
	chat_id    TEXT NOT NULL REFERENCES chats(id),
	sender_id  TEXT NOT NULL REFERENCES profiles(id),
	text       TEXT,
	file       JSONB,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_chat ON messages(chat_id, created_at);

CREATE TABLE IF NOT EXISTS reviews (
	id         TEXT PRIMARY KEY,
	event_id   TEXT NOT NULL REFERENCES events(id),
	owner_id   TEXT NOT NULL REFERENCES profiles(id),
	caterer_id TEXT NOT NULL REFERENCES profiles(id),
	rating     INTEGER NOT NULL,
	comment    TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reviews_caterer ON reviews(caterer_id);

CREATE TABLE IF NOT EXISTS email_notifications (
	id                TEXT PRIMARY KEY,
	notification_type TEXT NOT NULL,
	recipient         TEXT NOT NULL,
	subject           TEXT NOT NULL,
	event_id          TEXT NOT NULL,
	bid_id            TEXT NOT NULL,
	status            TEXT NOT NULL,
	message_id        TEXT,
	error_message     TEXT,
	sent_at           TIMESTAMPTZ,
	failed_at         TIMESTAMPTZ,
	created_at        TIMESTAMPTZ NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notifications_event ON email_notifications(event_id);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				email_notifications,
				reviews,
				messages,
				chats,
				bids,
				events,
				profiles
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Printf("Failed to reset tables (may not exist yet): %v", err)
		}
	}

	if _, err := pgClient.DB().ExecContext(ctx, schema); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	log.Println("Schema ready")

	userRepo := database.NewUserAdapter(pgClient)
	eventRepo := database.NewEventAdapter(pgClient)
	bidRepo := database.NewBidAdapter(pgClient)

	now := time.Now().UTC()

	// 1. Seed profiles
	minPrice := 12.5
	owner := entities.User{
		ID: uuid.New().String(), Role: entities.UserRoleOwner,
		DisplayName: "Sanne de Vries", Email: "sanne@example.com",
		City: "Utrecht", CreatedAt: now, UpdatedAt: now,
	}
	caterers := []entities.User{
		{
			ID: uuid.New().String(), Role: entities.UserRoleCaterer,
			DisplayName: "Mehmet Yilmaz", Email: "mehmet@anatolie-catering.nl",
			CompanyName: "Anatolië Catering", Bio: "Turkse mezze en grill voor groepen tot 300 gasten.",
			Specialties: []string{"Turks", "BBQ", "Vegetarisch"},
			City:        "Utrecht", Website: "https://anatolie-catering.nl",
			MinPrice: &minPrice, PriceNote: "per persoon, excl. bediening",
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.New().String(), Role: entities.UserRoleCaterer,
			DisplayName: "Lotte Jansen", Email: "lotte@puurgroen.nl",
			CompanyName: "Puur Groen", Bio: "Plantaardige buffetten met lokale seizoensproducten.",
			Specialties: []string{"Vegan", "Biologisch"},
			City:        "Amsterdam",
			CreatedAt:   now, UpdatedAt: now,
		},
	}

	if err := userRepo.Create(ctx, &owner); err != nil {
		log.Printf("Failed to create owner profile: %v", err)
	}
	for i := range caterers {
		if err := userRepo.Create(ctx, &caterers[i]); err != nil {
			log.Printf("Failed to create caterer profile %s: %v", caterers[i].DisplayName, err)
		}
	}

	// 2. Seed an open event
	date := now.AddDate(0, 1, 0)
	guests := 80
	budget := 2500.0
	event := entities.Event{
		ID: uuid.New().String(), OwnerID: owner.ID,
		Title:       "Bruiloft in de boomgaard",
		Description: "Informele bruiloft, walking dinner gewenst.",
		Date:        &date, Guests: &guests, City: "Utrecht", Budget: &budget,
		Address: "Boomgaardlaan 12, Utrecht",
		Photos:  []string{},
		Status:  entities.EventStatusOpen, CreatedAt: now,
	}
	if err := eventRepo.Create(ctx, &event); err != nil {
		log.Printf("Failed to create event: %v", err)
	}

	// 3. Seed bids on the event
	bids := []entities.Bid{
		{
			ID: uuid.New().String(), EventID: event.ID, CatererID: caterers[0].ID,
			Amount: 2200, Message: "Walking dinner met 8 gangen, incl. personeel.",
			Status: entities.BidStatusSent, CreatedAt: now,
		},
		{
			ID: uuid.New().String(), EventID: event.ID, CatererID: caterers[1].ID,
			Amount: 1950, Message: "Volledig plantaardig buffet, op te schalen per gast.",
			Status: entities.BidStatusSent, CreatedAt: now,
		},
	}
	for i := range bids {
		if err := bidRepo.Create(ctx, &bids[i]); err != nil {
			log.Printf("Failed to create bid: %v", err)
		}
	}

	log.Println("Seeding complete")
}
