package team

import (
	"context"
	"errors"
)

var ErrVersionConflict = errors.New("team version conflict")

type Repository interface {
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	List(ctx context.Context) ([]Team, error)
	Create(ctx context.Context, item Team) error
	Update(ctx context.Context, item Team) error
}
