package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/fixture"
)

type fixtureTableModel struct {
	ID            string `db:"id"`
	CompetitionID string `db:"competition_id"`
	Status        string `db:"status"`
	Finalization  string `db:"finalization"`
	Document      []byte `db:"document"`
	Version       int64  `db:"version"`
}

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	var row fixtureTableModel
	err := r.db.GetContext(ctx, &row,
		`SELECT id, competition_id, status, finalization, document, version
		 FROM fixtures WHERE id = $1`, fixtureID)
	if err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("get fixture: %w", err)
	}

	fx, err := fixtureFromRow(row)
	if err != nil {
		return fixture.Fixture{}, false, err
	}
	return fx, true, nil
}

func (r *FixtureRepository) ListByCompetition(ctx context.Context, competitionID string) ([]fixture.Fixture, error) {
	var rows []fixtureTableModel
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, competition_id, status, finalization, document, version
		 FROM fixtures WHERE competition_id = $1 ORDER BY id`, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures by competition: %w", err)
	}

	return fixturesFromRows(rows)
}

func (r *FixtureRepository) ListUnfinalized(ctx context.Context) ([]fixture.Fixture, error) {
	var rows []fixtureTableModel
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, competition_id, status, finalization, document, version
		 FROM fixtures WHERE finalization IN ($1, $2) ORDER BY id`,
		fixture.FinalizationRunning, fixture.FinalizationFailed)
	if err != nil {
		return nil, fmt.Errorf("list unfinalized fixtures: %w", err)
	}

	return fixturesFromRows(rows)
}

func (r *FixtureRepository) Create(ctx context.Context, item fixture.Fixture) error {
	doc, err := marshalDocument(item)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO fixtures (id, competition_id, status, finalization, document, version)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		item.ID, item.CompetitionID, item.Status, item.Finalization, doc, item.Version)
	if err != nil {
		return fmt.Errorf("insert fixture: %w", err)
	}
	return nil
}

func (r *FixtureRepository) Update(ctx context.Context, item fixture.Fixture) error {
	doc, err := marshalDocument(item)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE fixtures
		 SET competition_id = $2, status = $3, finalization = $4, document = $5,
		     version = version + 1, updated_at = now()
		 WHERE id = $1 AND version = $6`,
		item.ID, item.CompetitionID, item.Status, item.Finalization, doc, item.Version)
	if err != nil {
		return fmt.Errorf("update fixture: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update fixture rows affected: %w", err)
	}
	if affected == 0 {
		return fixture.ErrVersionConflict
	}
	return nil
}

func fixtureFromRow(row fixtureTableModel) (fixture.Fixture, error) {
	var fx fixture.Fixture
	if err := unmarshalDocument(row.Document, &fx); err != nil {
		return fixture.Fixture{}, fmt.Errorf("fixture %s: %w", row.ID, err)
	}
	fx.ID = row.ID
	fx.CompetitionID = row.CompetitionID
	fx.Status = row.Status
	fx.Finalization = row.Finalization
	fx.Version = row.Version
	return fx, nil
}

func fixturesFromRows(rows []fixtureTableModel) ([]fixture.Fixture, error) {
	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		fx, err := fixtureFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, fx)
	}
	return out, nil
}
