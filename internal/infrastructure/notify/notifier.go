package notify

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/notification"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/id"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/logging"
)

// Notifier records in-app notifications and mirrors them to the webhook
// collector when one is configured. The webhook leg is best effort: a
// delivery failure is logged but never surfaced past the in-app write.
type Notifier struct {
	repo    notification.Repository
	webhook *WebhookClient
	idGen   id.Generator
	logger  *logging.Logger
	now     func() time.Time
}

func NewNotifier(repo notification.Repository, webhook *WebhookClient, idGen id.Generator, logger *logging.Logger) *Notifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &Notifier{
		repo:    repo,
		webhook: webhook,
		idGen:   idGen,
		logger:  logger,
		now:     time.Now,
	}
}

func (n *Notifier) Notify(ctx context.Context, item notification.Notification) error {
	if item.ID == "" {
		generated, err := n.idGen.NewID()
		if err != nil {
			return crerr.Wrap(err, "generate notification id")
		}
		item.ID = generated
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = n.now().UTC()
	}
	if item.Channel == "" {
		item.Channel = notification.ChannelInApp
	}

	if err := n.repo.Create(ctx, item); err != nil {
		return crerr.Wrapf(err, "store notification %s", item.ID)
	}

	if n.webhook != nil {
		if err := n.webhook.Send(ctx, item); err != nil {
			n.logger.WarnContext(ctx, "webhook delivery failed",
				"notification_id", item.ID, "recipient", item.Recipient, "error", err)
		}
	}

	return nil
}
