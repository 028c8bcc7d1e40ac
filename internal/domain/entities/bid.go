package entities

import "time"

// BidStatus represents the status of a bid. The status is monotonic:
// once a bid leaves "sent" it never returns.
type BidStatus string

const (
	BidStatusSent     BidStatus = "sent"
	BidStatusAccepted BidStatus = "accepted"
	BidStatusRejected BidStatus = "rejected"
)

// Bid represents a caterer's priced proposal against a specific event.
type Bid struct {
	ID        string    `json:"id" db:"id"`
	EventID   string    `json:"event_id" db:"event_id"`
	CatererID string    `json:"caterer_id" db:"caterer_id"`
	Amount    float64   `json:"amount" db:"amount"`
	Message   string    `json:"message,omitempty" db:"message"`
	Status    BidStatus `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Caterer is populated on owner-facing bid listings.
	Caterer *CatererSummary `json:"caterer,omitempty" db:"-"`
}
