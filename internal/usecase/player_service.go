package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/player"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/id"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/platform/logging"
)

type PlayerService struct {
	repo   player.Repository
	idGen  id.Generator
	logger *logging.Logger
}

func NewPlayerService(repo player.Repository, idGen id.Generator, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerService{repo: repo, idGen: idGen, logger: logger}
}

func (s *PlayerService) Create(ctx context.Context, item player.Player) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	item.Name = strings.TrimSpace(item.Name)
	if item.ID == "" && s.idGen != nil {
		generated, err := s.idGen.NewID()
		if err != nil {
			return player.Player{}, fmt.Errorf("generate player id: %w", err)
		}
		item.ID = generated
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}
	return item, nil
}

func (s *PlayerService) GetByID(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetByID")
	defer span.End()

	return s.get(ctx, playerID)
}

func (s *PlayerService) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListByTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	items, err := s.repo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return items, nil
}

// PlayerStats is the read shape for the stats endpoint: career totals plus
// the per-competition breakdown.
type PlayerStats struct {
	PlayerID     string                    `json:"playerId"`
	Name         string                    `json:"name"`
	Position     player.Position           `json:"position"`
	Career       player.CareerStats        `json:"career"`
	Competitions []player.CompetitionStats `json:"competitions"`
}

func (s *PlayerService) Stats(ctx context.Context, playerID string) (PlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Stats")
	defer span.End()

	p, err := s.get(ctx, playerID)
	if err != nil {
		return PlayerStats{}, err
	}

	return PlayerStats{
		PlayerID:     p.ID,
		Name:         p.Name,
		Position:     p.Position,
		Career:       p.Career,
		Competitions: p.Competitions,
	}, nil
}

func (s *PlayerService) get(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := s.repo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return p, nil
}
