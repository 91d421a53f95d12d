package memory

import (
	"context"
	"sync"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/audit"
)

// AuditRecorder keeps audit entries in memory for demo mode.
type AuditRecorder struct {
	mu      sync.RWMutex
	entries []audit.Entry
}

func NewAuditRecorder() *AuditRecorder {
	return &AuditRecorder{}
}

func (r *AuditRecorder) Record(_ context.Context, entry audit.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	return nil
}

func (r *AuditRecorder) Entries() []audit.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]audit.Entry(nil), r.entries...)
}
