package usecase

import (
	"context"
	"sync"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/audit"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/competition"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/fixture"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/livefixture"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/notification"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/player"
	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/team"
)

type stubFixtureRepo struct {
	mu        sync.Mutex
	items     map[string]fixture.Fixture
	updateErr error
}

func newStubFixtureRepo() *stubFixtureRepo {
	return &stubFixtureRepo{items: make(map[string]fixture.Fixture)}
}

func (r *stubFixtureRepo) GetByID(_ context.Context, id string) (fixture.Fixture, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fx, ok := r.items[id]
	return fx, ok, nil
}

func (r *stubFixtureRepo) ListByCompetition(_ context.Context, competitionID string) ([]fixture.Fixture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []fixture.Fixture
	for _, fx := range r.items {
		if fx.CompetitionID == competitionID {
			out = append(out, fx)
		}
	}
	return out, nil
}

func (r *stubFixtureRepo) ListUnfinalized(_ context.Context) ([]fixture.Fixture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []fixture.Fixture
	for _, fx := range r.items {
		if fx.Finalization == fixture.FinalizationRunning || fx.Finalization == fixture.FinalizationFailed {
			out = append(out, fx)
		}
	}
	return out, nil
}

func (r *stubFixtureRepo) Create(_ context.Context, item fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *stubFixtureRepo) Update(_ context.Context, item fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.items[item.ID]
	if !ok || stored.Version != item.Version {
		return fixture.ErrVersionConflict
	}
	item.Version++
	r.items[item.ID] = item
	return nil
}

func (r *stubFixtureRepo) get(id string) fixture.Fixture {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id]
}

type stubLiveFixtureRepo struct {
	mu    sync.Mutex
	items map[string]livefixture.LiveFixture
}

func newStubLiveFixtureRepo() *stubLiveFixtureRepo {
	return &stubLiveFixtureRepo{items: make(map[string]livefixture.LiveFixture)}
}

func (r *stubLiveFixtureRepo) GetByFixtureID(_ context.Context, fixtureID string) (livefixture.LiveFixture, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lf, ok := r.items[fixtureID]
	return lf, ok, nil
}

func (r *stubLiveFixtureRepo) Create(_ context.Context, item livefixture.LiveFixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.FixtureID] = item
	return nil
}

func (r *stubLiveFixtureRepo) Update(_ context.Context, item livefixture.LiveFixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[item.FixtureID]
	if !ok || stored.Version != item.Version {
		return livefixture.ErrVersionConflict
	}
	item.Version++
	r.items[item.FixtureID] = item
	return nil
}

func (r *stubLiveFixtureRepo) Delete(_ context.Context, fixtureID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, fixtureID)
	return nil
}

func (r *stubLiveFixtureRepo) has(fixtureID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[fixtureID]
	return ok
}

type stubCompetitionRepo struct {
	mu    sync.Mutex
	items map[string]competition.Competition
}

func newStubCompetitionRepo() *stubCompetitionRepo {
	return &stubCompetitionRepo{items: make(map[string]competition.Competition)}
}

func (r *stubCompetitionRepo) GetByID(_ context.Context, id string) (competition.Competition, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	return c, ok, nil
}

func (r *stubCompetitionRepo) List(_ context.Context) ([]competition.Competition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]competition.Competition, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	return out, nil
}

func (r *stubCompetitionRepo) Create(_ context.Context, item competition.Competition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *stubCompetitionRepo) Update(_ context.Context, item competition.Competition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[item.ID]
	if !ok || stored.Version != item.Version {
		return competition.ErrVersionConflict
	}
	item.Version++
	r.items[item.ID] = item
	return nil
}

func (r *stubCompetitionRepo) get(id string) competition.Competition {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id]
}

type stubPlayerRepo struct {
	mu    sync.Mutex
	items map[string]player.Player
}

func newStubPlayerRepo() *stubPlayerRepo {
	return &stubPlayerRepo{items: make(map[string]player.Player)}
}

func (r *stubPlayerRepo) GetByID(_ context.Context, id string) (player.Player, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	return p, ok, nil
}

func (r *stubPlayerRepo) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []player.Player
	for _, p := range r.items {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPlayerRepo) Create(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *stubPlayerRepo) Update(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[item.ID]
	if !ok || stored.Version != item.Version {
		return player.ErrVersionConflict
	}
	item.Version++
	r.items[item.ID] = item
	return nil
}

func (r *stubPlayerRepo) get(id string) player.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id]
}

type stubTeamRepo struct {
	mu        sync.Mutex
	items     map[string]team.Team
	updateErr error
}

func newStubTeamRepo() *stubTeamRepo {
	return &stubTeamRepo{items: make(map[string]team.Team)}
}

func (r *stubTeamRepo) GetByID(_ context.Context, id string) (team.Team, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
	return t, ok, nil
}

func (r *stubTeamRepo) List(_ context.Context) ([]team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]team.Team, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, t)
	}
	return out, nil
}

func (r *stubTeamRepo) Create(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *stubTeamRepo) Update(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.items[item.ID]
	if !ok || stored.Version != item.Version {
		return team.ErrVersionConflict
	}
	item.Version++
	r.items[item.ID] = item
	return nil
}

func (r *stubTeamRepo) setUpdateErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateErr = err
}

func (r *stubTeamRepo) get(id string) team.Team {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id]
}

type stubAuditRecorder struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (r *stubAuditRecorder) Record(_ context.Context, entry audit.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *stubAuditRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

type stubNotifier struct {
	mu    sync.Mutex
	items []notification.Notification
}

func (n *stubNotifier) Notify(_ context.Context, item notification.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, item)
	return nil
}

func (n *stubNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.items)
}
