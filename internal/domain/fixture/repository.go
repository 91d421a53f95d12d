package fixture

import (
	"context"
	"errors"
)

// ErrVersionConflict is returned by Update when the stored document has
// moved past the version the caller read.
var ErrVersionConflict = errors.New("fixture version conflict")

type Repository interface {
	GetByID(ctx context.Context, fixtureID string) (Fixture, bool, error)
	ListByCompetition(ctx context.Context, competitionID string) ([]Fixture, error)
	// ListUnfinalized returns fixtures whose finalization pipeline started
	// but never reached FINALIZED.
	ListUnfinalized(ctx context.Context) ([]Fixture, error)
	Create(ctx context.Context, item Fixture) error
	// Update persists the document when its stored version still matches
	// item.Version, then bumps the version. ErrVersionConflict otherwise.
	Update(ctx context.Context, item Fixture) error
}
