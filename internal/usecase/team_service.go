package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/team"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/id"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/logging"
)

type TeamService struct {
	repo   team.Repository
	idGen  id.Generator
	logger *logging.Logger
}

func NewTeamService(repo team.Repository, idGen id.Generator, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamService{repo: repo, idGen: idGen, logger: logger}
}

func (s *TeamService) Create(ctx context.Context, item team.Team) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	item.Name = strings.TrimSpace(item.Name)
	item.ShortName = strings.TrimSpace(item.ShortName)
	if item.ID == "" && s.idGen != nil {
		generated, err := s.idGen.NewID()
		if err != nil {
			return team.Team{}, fmt.Errorf("generate team id: %w", err)
		}
		item.ID = generated
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}
	return item, nil
}

func (s *TeamService) GetByID(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetByID")
	defer span.End()

	return s.get(ctx, teamID)
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

// TeamStats is the read shape for the stats endpoint.
type TeamStats struct {
	TeamID       string                        `json:"teamId"`
	Name         string                        `json:"name"`
	Overall      team.Stats                    `json:"overall"`
	Performances []team.CompetitionPerformance `json:"performances"`
}

func (s *TeamService) Stats(ctx context.Context, teamID string) (TeamStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Stats")
	defer span.End()

	t, err := s.get(ctx, teamID)
	if err != nil {
		return TeamStats{}, err
	}

	return TeamStats{
		TeamID:       t.ID,
		Name:         t.Name,
		Overall:      t.Stats,
		Performances: t.Performances,
	}, nil
}

func (s *TeamService) get(ctx context.Context, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, exists, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return t, nil
}
