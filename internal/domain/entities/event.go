package entities

import "time"

// EventStatus represents the status of a catering event
type EventStatus string

const (
	EventStatusOpen   EventStatus = "open"
	EventStatusBooked EventStatus = "booked"
)

// Event represents a catering job posted by an owner. Events are immutable
// after creation except for the status flip performed by bid acceptance.
type Event struct {
	ID          string      `json:"id" db:"id"`
	OwnerID     string      `json:"owner_id" db:"owner_id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description,omitempty" db:"description"`
	Date        *time.Time  `json:"date,omitempty" db:"date"`
	Guests      *int        `json:"guests,omitempty" db:"guests"`
	City        string      `json:"city,omitempty" db:"city"`
	Budget      *float64    `json:"budget,omitempty" db:"budget"`
	Address     string      `json:"address,omitempty" db:"address"`
	Photos      []string    `json:"photos" db:"photos"`
	Status      EventStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
}
