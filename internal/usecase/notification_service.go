package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/notification"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/logging"
)

type NotificationService struct {
	repo   notification.Repository
	logger *logging.Logger
}

func NewNotificationService(repo notification.Repository, logger *logging.Logger) *NotificationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &NotificationService{repo: repo, logger: logger}
}

func (s *NotificationService) ListByRecipient(ctx context.Context, recipient string, limit int) ([]notification.Notification, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NotificationService.ListByRecipient")
	defer span.End()

	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return nil, fmt.Errorf("%w: recipient is required", ErrInvalidInput)
	}

	items, err := s.repo.ListByRecipient(ctx, recipient, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications for %s: %w", recipient, err)
	}
	return items, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, notificationID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.NotificationService.MarkRead")
	defer span.End()

	notificationID = strings.TrimSpace(notificationID)
	if notificationID == "" {
		return fmt.Errorf("%w: notification id is required", ErrInvalidInput)
	}

	if err := s.repo.MarkRead(ctx, notificationID); err != nil {
		return fmt.Errorf("mark notification %s read: %w", notificationID, err)
	}
	return nil
}
