package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/notification"
)

type NotificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, item notification.Notification) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, recipient, title, message, channel, read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.Recipient, item.Title, item.Message, item.Channel, item.Read, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipient string, limit int) ([]notification.Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	var out []notification.Notification
	rows, err := r.db.QueryxContext(ctx,
		`SELECT id, recipient, title, message, channel, read, created_at
		 FROM notifications WHERE recipient = $1 ORDER BY created_at DESC LIMIT $2`,
		recipient, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item notification.Notification
		if err := rows.Scan(&item.ID, &item.Recipient, &item.Title, &item.Message,
			&item.Channel, &item.Read, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	return out, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = true WHERE id = $1`, notificationID); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
