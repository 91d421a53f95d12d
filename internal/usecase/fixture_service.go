package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/fixture"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/id"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/logging"
)

// FixtureService owns the permanent fixture record: scheduling and reads.
// Everything that happens during a match goes through LiveFixtureService;
// everything that happens at full time goes through FinalizationService.
type FixtureService struct {
	repo   fixture.Repository
	idGen  id.Generator
	logger *logging.Logger
}

func NewFixtureService(repo fixture.Repository, idGen id.Generator, logger *logging.Logger) *FixtureService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureService{repo: repo, idGen: idGen, logger: logger}
}

// Schedule creates a new fixture in SCHEDULED state.
func (s *FixtureService) Schedule(ctx context.Context, item fixture.Fixture) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Schedule")
	defer span.End()

	if item.ID == "" && s.idGen != nil {
		generated, err := s.idGen.NewID()
		if err != nil {
			return fixture.Fixture{}, fmt.Errorf("generate fixture id: %w", err)
		}
		item.ID = generated
	}
	item.Status = fixture.StatusScheduled
	item.Finalization = fixture.FinalizationNone
	item.Version = 0

	if err := item.Validate(); err != nil {
		return fixture.Fixture{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return fixture.Fixture{}, fmt.Errorf("create fixture: %w", err)
	}

	s.logger.InfoContext(ctx, "fixture scheduled",
		"fixture_id", item.ID,
		"home_team", item.HomeTeamID,
		"away_team", item.AwayTeamID,
	)
	return item, nil
}

func (s *FixtureService) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.GetByID")
	defer span.End()

	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	fx, exists, err := s.repo.GetByID(ctx, fixtureID)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("get fixture: %w", err)
	}
	if !exists {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, fixtureID)
	}
	return fx, nil
}

func (s *FixtureService) ListByCompetition(ctx context.Context, competitionID string) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListByCompetition")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return nil, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	items, err := s.repo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}
	return items, nil
}

// UpdateStatus moves a fixture between pre-match states. Transitions into
// LIVE or out of COMPLETED are owned by the live and finalization services
// and are rejected here.
func (s *FixtureService) UpdateStatus(ctx context.Context, fixtureID, status string) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.UpdateStatus")
	defer span.End()

	status = fixture.NormalizeStatus(status)
	switch status {
	case fixture.StatusScheduled, fixture.StatusPostponed, fixture.StatusCancelled:
	case fixture.StatusLive, fixture.StatusCompleted:
		return fixture.Fixture{}, fmt.Errorf("%w: status %s is managed by the live/finalization flow", ErrInvalidInput, status)
	default:
		return fixture.Fixture{}, fmt.Errorf("%w: invalid fixture status %q", ErrInvalidInput, status)
	}

	fx, err := s.GetByID(ctx, fixtureID)
	if err != nil {
		return fixture.Fixture{}, err
	}
	if fx.Status == fixture.StatusCompleted || fx.Status == fixture.StatusLive {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture %s is %s and cannot be rescheduled", ErrConflict, fixtureID, fx.Status)
	}

	fx.Status = status
	if err := s.repo.Update(ctx, fx); err != nil {
		if isVersionConflict(err) {
			return fixture.Fixture{}, fmt.Errorf("%w: update fixture status: %v", ErrConflict, err)
		}
		return fixture.Fixture{}, fmt.Errorf("update fixture status: %w", err)
	}
	fx.Version++

	return fx, nil
}
