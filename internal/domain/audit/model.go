package audit

import (
	"context"
	"time"
)

// Entry records who changed what. PreviousValues/NewValues are free-form
// snapshots of the mutated document.
type Entry struct {
	UserID         string
	Action         string
	Entity         string
	EntityID       string
	Message        string
	PreviousValues map[string]any
	NewValues      map[string]any
	IPAddress      string
	UserAgent      string
	CreatedAt      time.Time
}

// Recorder persists audit entries. Implementations must be best-effort:
// callers log and swallow failures, they never block the primary
// operation.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}
