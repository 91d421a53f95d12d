package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/competition"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/cache"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/logging"
)

// CompetitionService serves competition reads. Standings lookups go through
// the TTL cache; finalization invalidates the competition's prefix so a
// fresh table is visible immediately after a match ends.
type CompetitionService struct {
	repo   competition.Repository
	cache  *cache.Store
	logger *logging.Logger
}

func NewCompetitionService(repo competition.Repository, store *cache.Store, logger *logging.Logger) *CompetitionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CompetitionService{repo: repo, cache: store, logger: logger}
}

func (s *CompetitionService) GetByID(ctx context.Context, competitionID string) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.GetByID")
	defer span.End()

	return s.get(ctx, competitionID)
}

func (s *CompetitionService) List(ctx context.Context) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	return items, nil
}

func (s *CompetitionService) Create(ctx context.Context, item competition.Competition) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.Create")
	defer span.End()

	item.Name = strings.TrimSpace(item.Name)
	if err := item.Validate(); err != nil {
		return competition.Competition{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return competition.Competition{}, fmt.Errorf("create competition: %w", err)
	}
	return item, nil
}

// Standings returns the league-wide table.
func (s *CompetitionService) Standings(ctx context.Context, competitionID string) ([]competition.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.Standings")
	defer span.End()

	if s.cache == nil {
		comp, err := s.get(ctx, competitionID)
		if err != nil {
			return nil, err
		}
		return comp.Standings, nil
	}

	key := "standings:" + competitionID + ":league"
	value, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		comp, err := s.get(ctx, competitionID)
		if err != nil {
			return nil, err
		}
		return comp.Standings, nil
	})
	if err != nil {
		return nil, err
	}

	rows, ok := value.([]competition.Standing)
	if !ok {
		return nil, fmt.Errorf("unexpected cached standings type %T", value)
	}
	return rows, nil
}

// GroupStandings returns one group's table by group name.
func (s *CompetitionService) GroupStandings(ctx context.Context, competitionID, groupName string) ([]competition.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.GroupStandings")
	defer span.End()

	groupName = strings.TrimSpace(groupName)
	if groupName == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrInvalidInput)
	}

	load := func(ctx context.Context) (any, error) {
		comp, err := s.get(ctx, competitionID)
		if err != nil {
			return nil, err
		}
		for _, g := range comp.Groups {
			if strings.EqualFold(g.Name, groupName) {
				return g.Standings, nil
			}
		}
		return nil, fmt.Errorf("%w: group=%s competition=%s", ErrNotFound, groupName, competitionID)
	}

	if s.cache == nil {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]competition.Standing), nil
	}

	key := "standings:" + competitionID + ":group:" + strings.ToLower(groupName)
	value, err := s.cache.GetOrLoad(ctx, key, load)
	if err != nil {
		return nil, err
	}

	rows, ok := value.([]competition.Standing)
	if !ok {
		return nil, fmt.Errorf("unexpected cached standings type %T", value)
	}
	return rows, nil
}

func (s *CompetitionService) Aggregates(ctx context.Context, competitionID string) (competition.AggregateStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.Aggregates")
	defer span.End()

	comp, err := s.get(ctx, competitionID)
	if err != nil {
		return competition.AggregateStats{}, err
	}
	return comp.Aggregates, nil
}

func (s *CompetitionService) get(ctx context.Context, competitionID string) (competition.Competition, error) {
	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return competition.Competition{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	comp, exists, err := s.repo.GetByID(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return competition.Competition{}, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}
	return comp, nil
}
