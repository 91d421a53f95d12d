package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/livefixture"
)

type liveFixtureTableModel struct {
	FixtureID string `db:"fixture_id"`
	Document  []byte `db:"document"`
	Version   int64  `db:"version"`
}

type LiveFixtureRepository struct {
	db *sqlx.DB
}

func NewLiveFixtureRepository(db *sqlx.DB) *LiveFixtureRepository {
	return &LiveFixtureRepository{db: db}
}

func (r *LiveFixtureRepository) GetByFixtureID(ctx context.Context, fixtureID string) (livefixture.LiveFixture, bool, error) {
	var row liveFixtureTableModel
	err := r.db.GetContext(ctx, &row,
		`SELECT fixture_id, document, version FROM live_fixtures WHERE fixture_id = $1`, fixtureID)
	if err != nil {
		if isNotFound(err) {
			return livefixture.LiveFixture{}, false, nil
		}
		return livefixture.LiveFixture{}, false, fmt.Errorf("get live fixture: %w", err)
	}

	var live livefixture.LiveFixture
	if err := unmarshalDocument(row.Document, &live); err != nil {
		return livefixture.LiveFixture{}, false, fmt.Errorf("live fixture %s: %w", row.FixtureID, err)
	}
	live.FixtureID = row.FixtureID
	live.Version = row.Version
	return live, true, nil
}

func (r *LiveFixtureRepository) Create(ctx context.Context, item livefixture.LiveFixture) error {
	doc, err := marshalDocument(item)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO live_fixtures (fixture_id, document, version) VALUES ($1, $2, $3)`,
		item.FixtureID, doc, item.Version)
	if err != nil {
		return fmt.Errorf("insert live fixture: %w", err)
	}
	return nil
}

func (r *LiveFixtureRepository) Update(ctx context.Context, item livefixture.LiveFixture) error {
	doc, err := marshalDocument(item)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE live_fixtures
		 SET document = $2, version = version + 1, updated_at = now()
		 WHERE fixture_id = $1 AND version = $3`,
		item.FixtureID, doc, item.Version)
	if err != nil {
		return fmt.Errorf("update live fixture: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update live fixture rows affected: %w", err)
	}
	if affected == 0 {
		return livefixture.ErrVersionConflict
	}
	return nil
}

func (r *LiveFixtureRepository) Delete(ctx context.Context, fixtureID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM live_fixtures WHERE fixture_id = $1`, fixtureID); err != nil {
		return fmt.Errorf("delete live fixture: %w", err)
	}
	return nil
}
