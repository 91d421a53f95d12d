package competition

import (
	"context"
	"errors"
)

var ErrVersionConflict = errors.New("competition version conflict")

type Repository interface {
	GetByID(ctx context.Context, competitionID string) (Competition, bool, error)
	List(ctx context.Context) ([]Competition, error)
	Create(ctx context.Context, item Competition) error
	Update(ctx context.Context, item Competition) error
}
