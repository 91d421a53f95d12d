package notification

import (
	"context"
	"time"
)

const (
	ChannelInApp   = "IN_APP"
	ChannelWebhook = "WEBHOOK"
)

type Notification struct {
	ID        string
	Recipient string
	Title     string
	Message   string
	Channel   string
	Read      bool
	CreatedAt time.Time
}

// Repository stores in-app notification records.
type Repository interface {
	Create(ctx context.Context, item Notification) error
	ListByRecipient(ctx context.Context, recipient string, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
}

// Notifier delivers a notification through the recipient's channels.
// Failures are logged and swallowed by callers; delivery is never allowed
// to block or fail the primary operation.
type Notifier interface {
	Notify(ctx context.Context, item Notification) error
}
