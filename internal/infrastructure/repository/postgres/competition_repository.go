package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/competition"
)

type competitionTableModel struct {
	ID       string `db:"id"`
	Document []byte `db:"document"`
	Version  int64  `db:"version"`
}

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) GetByID(ctx context.Context, competitionID string) (competition.Competition, bool, error) {
	var row competitionTableModel
	err := r.db.GetContext(ctx, &row,
		`SELECT id, document, version FROM competitions WHERE id = $1`, competitionID)
	if err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("get competition: %w", err)
	}

	comp, err := competitionFromRow(row)
	if err != nil {
		return competition.Competition{}, false, err
	}
	return comp, true, nil
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	var rows []competitionTableModel
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, document, version FROM competitions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		comp, err := competitionFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, comp)
	}
	return out, nil
}

func (r *CompetitionRepository) Create(ctx context.Context, item competition.Competition) error {
	doc, err := marshalDocument(item)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO competitions (id, document, version) VALUES ($1, $2, $3)`,
		item.ID, doc, item.Version)
	if err != nil {
		return fmt.Errorf("insert competition: %w", err)
	}
	return nil
}

func (r *CompetitionRepository) Update(ctx context.Context, item competition.Competition) error {
	doc, err := marshalDocument(item)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE competitions
		 SET document = $2, version = version + 1, updated_at = now()
		 WHERE id = $1 AND version = $3`,
		item.ID, doc, item.Version)
	if err != nil {
		return fmt.Errorf("update competition: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update competition rows affected: %w", err)
	}
	if affected == 0 {
		return competition.ErrVersionConflict
	}
	return nil
}

func competitionFromRow(row competitionTableModel) (competition.Competition, error) {
	var comp competition.Competition
	if err := unmarshalDocument(row.Document, &comp); err != nil {
		return competition.Competition{}, fmt.Errorf("competition %s: %w", row.ID, err)
	}
	comp.ID = row.ID
	comp.Version = row.Version
	return comp, nil
}
