package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/player"
)

type playerTableModel struct {
	ID       string `db:"id"`
	TeamID   string `db:"team_id"`
	Document []byte `db:"document"`
	Version  int64  `db:"version"`
}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	var row playerTableModel
	err := r.db.GetContext(ctx, &row,
		`SELECT id, team_id, document, version FROM players WHERE id = $1`, playerID)
	if err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}

	p, err := playerFromRow(row)
	if err != nil {
		return player.Player{}, false, err
	}
	return p, true, nil
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	var rows []playerTableModel
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, team_id, document, version FROM players WHERE team_id = $1 ORDER BY id`, teamID)
	if err != nil {
		return nil, fmt.Errorf("list players by team: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		p, err := playerFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) error {
	doc, err := marshalDocument(item)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO players (id, team_id, document, version) VALUES ($1, $2, $3, $4)`,
		item.ID, item.TeamID, doc, item.Version)
	if err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	doc, err := marshalDocument(item)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE players
		 SET team_id = $2, document = $3, version = version + 1, updated_at = now()
		 WHERE id = $1 AND version = $4`,
		item.ID, item.TeamID, doc, item.Version)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update player rows affected: %w", err)
	}
	if affected == 0 {
		return player.ErrVersionConflict
	}
	return nil
}

func playerFromRow(row playerTableModel) (player.Player, error) {
	var p player.Player
	if err := unmarshalDocument(row.Document, &p); err != nil {
		return player.Player{}, fmt.Errorf("player %s: %w", row.ID, err)
	}
	p.ID = row.ID
	p.TeamID = row.TeamID
	p.Version = row.Version
	return p, nil
}
