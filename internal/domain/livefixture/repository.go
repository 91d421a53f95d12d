package livefixture

import (
	"context"
	"errors"
)

var ErrVersionConflict = errors.New("live fixture version conflict")

type Repository interface {
	GetByFixtureID(ctx context.Context, fixtureID string) (LiveFixture, bool, error)
	Create(ctx context.Context, item LiveFixture) error
	Update(ctx context.Context, item LiveFixture) error
	// Delete archives the live twin once finalization has copied its data
	// into the permanent fixture.
	Delete(ctx context.Context, fixtureID string) error
}
