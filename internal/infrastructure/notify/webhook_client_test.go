package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/notification"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/logging"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/resilience"
)

func sampleNotification() notification.Notification {
	return notification.Notification{
		ID:        "notif-1",
		Recipient: "competition:comp-1",
		Title:     "Full time",
		Message:   "Mechanical Marines 2-0 Electrical Eagles",
		Channel:   notification.ChannelInApp,
		CreatedAt: time.Date(2026, 2, 7, 18, 0, 0, 0, time.UTC),
	}
}

func TestWebhookClient_SendDeliversPayload(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewWebhookClient(WebhookClientConfig{
		URL:            srv.URL,
		Token:          "secret",
		Timeout:        time.Second,
		CircuitBreaker: resilience.DefaultCircuitBreakerConfig(),
	}, logging.NewNop())

	if err := client.Send(context.Background(), sampleNotification()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
}

func TestWebhookClient_ServerErrorsOpenCircuit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewWebhookClient(WebhookClientConfig{
		URL:     srv.URL,
		Timeout: time.Second,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := client.Send(ctx, sampleNotification()); err == nil {
			t.Fatalf("attempt %d: expected delivery error", i+1)
		}
	}
	if state := client.breaker.State(); state != resilience.CircuitStateOpen {
		t.Fatalf("breaker state = %q, want open", state)
	}
	if err := client.Send(ctx, sampleNotification()); err == nil {
		t.Fatal("expected circuit rejection")
	}
}

func TestWebhookClient_ClientErrorDoesNotTripBreaker(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := NewWebhookClient(WebhookClientConfig{
		URL:     srv.URL,
		Timeout: time.Second,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())

	if err := client.Send(context.Background(), sampleNotification()); err == nil {
		t.Fatal("expected rejection error")
	}
	if state := client.breaker.State(); state != resilience.CircuitStateClosed {
		t.Fatalf("breaker state = %q, want closed", state)
	}
}

type recordingRepo struct {
	mu    sync.Mutex
	items []notification.Notification
}

func (r *recordingRepo) Create(_ context.Context, item notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, item)
	return nil
}

func (r *recordingRepo) ListByRecipient(_ context.Context, recipient string, _ int) ([]notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notification.Notification
	for _, item := range r.items {
		if item.Recipient == recipient {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *recordingRepo) MarkRead(_ context.Context, _ string) error { return nil }

type staticIDGen struct{ next string }

func (g staticIDGen) NewID() (string, error) { return g.next, nil }

func TestNotifier_FillsDefaultsAndStores(t *testing.T) {
	t.Parallel()

	repo := &recordingRepo{}
	notifier := NewNotifier(repo, nil, staticIDGen{next: "generated-id"}, logging.NewNop())

	err := notifier.Notify(context.Background(), notification.Notification{
		Recipient: "team:fupre-mech",
		Title:     "Full time",
		Message:   "2-0",
	})
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if len(repo.items) != 1 {
		t.Fatalf("stored %d notifications, want 1", len(repo.items))
	}
	stored := repo.items[0]
	if stored.ID != "generated-id" {
		t.Fatalf("id = %q", stored.ID)
	}
	if stored.Channel != notification.ChannelInApp {
		t.Fatalf("channel = %q", stored.Channel)
	}
	if stored.CreatedAt.IsZero() {
		t.Fatal("createdAt not set")
	}
}

func TestNotifier_WebhookFailureDoesNotFailNotify(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	repo := &recordingRepo{}
	webhook := NewWebhookClient(WebhookClientConfig{
		URL:            srv.URL,
		Timeout:        time.Second,
		CircuitBreaker: resilience.DefaultCircuitBreakerConfig(),
	}, logging.NewNop())
	notifier := NewNotifier(repo, webhook, staticIDGen{next: "n-1"}, logging.NewNop())

	if err := notifier.Notify(context.Background(), sampleNotification()); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(repo.items) != 1 {
		t.Fatalf("stored %d notifications, want 1", len(repo.items))
	}
}
