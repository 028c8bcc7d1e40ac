package entities

import "time"

// NotificationType identifies which workflow step triggered an email.
type NotificationType string

const (
	NotificationBidSubmitted NotificationType = "bid_submitted"
	NotificationBidAccepted  NotificationType = "bid_accepted"
)

// NotificationStatus tracks the outcome of a single send attempt.
// Delivery is fire-and-forget, at-most-once: a failed row is never retried.
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// EmailNotification is the audit record written for every outbound email.
type EmailNotification struct {
	ID               string             `json:"id" db:"id"`
	NotificationType NotificationType   `json:"notification_type" db:"notification_type"`
	Recipient        string             `json:"recipient" db:"recipient"`
	Subject          string             `json:"subject" db:"subject"`
	EventID          string             `json:"event_id" db:"event_id"`
	BidID            string             `json:"bid_id" db:"bid_id"`
	Status           NotificationStatus `json:"status" db:"status"`
	MessageID        *string            `json:"message_id,omitempty" db:"message_id"`
	ErrorMessage     *string            `json:"error_message,omitempty" db:"error_message"`
	SentAt           *time.Time         `json:"sent_at,omitempty" db:"sent_at"`
	FailedAt         *time.Time         `json:"failed_at,omitempty" db:"failed_at"`
	CreatedAt        time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" db:"updated_at"`
}
