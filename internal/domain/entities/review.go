package entities

import "time"

// Review is an owner's 1-5 rating of the caterer whose bid was accepted for
// an event. At most one review exists per (event, owner, caterer) triple;
// a second submission updates the existing row in place.
type Review struct {
	ID        string    `json:"id" db:"id"`
	EventID   string    `json:"event_id" db:"event_id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	CatererID string    `json:"caterer_id" db:"caterer_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
