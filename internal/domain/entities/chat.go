package entities

import "time"

// Chat is a private message thread scoped to one (event, owner, caterer)
// triple. It is created lazily as a side effect of bid acceptance; uniqueness
// of the triple relies on lookup-before-insert, not on a database constraint.
type Chat struct {
	ID        string    `json:"id" db:"id"`
	EventID   string    `json:"event_id" db:"event_id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	CatererID string    `json:"caterer_id" db:"caterer_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// HasParticipant reports whether the given user is one of the two parties.
func (c *Chat) HasParticipant(userID string) bool {
	return c.OwnerID == userID || c.CatererID == userID
}
