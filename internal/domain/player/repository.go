package player

import (
	"context"
	"errors"
)

var ErrVersionConflict = errors.New("player version conflict")

type Repository interface {
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	ListByTeam(ctx context.Context, teamID string) ([]Player, error)
	Create(ctx context.Context, item Player) error
	Update(ctx context.Context, item Player) error
}
