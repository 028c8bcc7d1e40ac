package entities

import "time"

// FileAttachment describes a file stored in the private chats bucket.
// SignedURL is computed on every message-list load and never persisted.
type FileAttachment struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	ContentType string `json:"type,omitempty"`
	Size        int64  `json:"size,omitempty"`
	SignedURL   string `json:"signed_url,omitempty"`
}

// Message is one append-only entry in a chat thread. Either Text or File
// (or both) is set; messages are never edited or deleted.
type Message struct {
	ID        string          `json:"id" db:"id"`
	ChatID    string          `json:"chat_id" db:"chat_id"`
	SenderID  string          `json:"sender_id" db:"sender_id"`
	Text      string          `json:"text,omitempty" db:"text"`
	File      *FileAttachment `json:"file,omitempty" db:"file"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
