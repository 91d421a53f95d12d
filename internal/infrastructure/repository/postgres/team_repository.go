package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/team"
)

type teamTableModel struct {
	ID       string `db:"id"`
	Document []byte `db:"document"`
	Version  int64  `db:"version"`
}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	var row teamTableModel
	err := r.db.GetContext(ctx, &row,
		`SELECT id, document, version FROM teams WHERE id = $1`, teamID)
	if err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}

	t, err := teamFromRow(row)
	if err != nil {
		return team.Team{}, false, err
	}
	return t, true, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	var rows []teamTableModel
	err := r.db.SelectContext(ctx, &rows, `SELECT id, document, version FROM teams ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		t, err := teamFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	doc, err := marshalDocument(item)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO teams (id, document, version) VALUES ($1, $2, $3)`,
		item.ID, doc, item.Version)
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	doc, err := marshalDocument(item)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE teams
		 SET document = $2, version = version + 1, updated_at = now()
		 WHERE id = $1 AND version = $3`,
		item.ID, doc, item.Version)
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update team rows affected: %w", err)
	}
	if affected == 0 {
		return team.ErrVersionConflict
	}
	return nil
}

func teamFromRow(row teamTableModel) (team.Team, error) {
	var t team.Team
	if err := unmarshalDocument(row.Document, &t); err != nil {
		return team.Team{}, fmt.Errorf("team %s: %w", row.ID, err)
	}
	t.ID = row.ID
	t.Version = row.Version
	return t, nil
}
