package usecase

import (
	"errors"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/competition"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/fixture"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/livefixture"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/player"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/team"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict covers racing finalization attempts and stale optimistic
	// saves; the losing attempt is rejected rather than double-applied.
	ErrConflict = errors.New("concurrent update conflict")
	// ErrPartialFinalization marks a failure after the fixture commit point
	// but before the pipeline finished. The fixture is resumable.
	ErrPartialFinalization   = errors.New("finalization incomplete")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

func isVersionConflict(err error) bool {
	return errors.Is(err, fixture.ErrVersionConflict) ||
		errors.Is(err, livefixture.ErrVersionConflict) ||
		errors.Is(err, competition.ErrVersionConflict) ||
		errors.Is(err, player.ErrVersionConflict) ||
		errors.Is(err, team.ErrVersionConflict)
}
