package memory

import (
	"context"
	"sync"

	"github.com/WebDeveloperGlory/fupre-sports-media-backend/internal/domain/livefixture"
)

type LiveFixtureRepository struct {
	mu    sync.RWMutex
	items map[string]livefixture.LiveFixture
}

func NewLiveFixtureRepository() *LiveFixtureRepository {
	return &LiveFixtureRepository{items: make(map[string]livefixture.LiveFixture)}
}

func (r *LiveFixtureRepository) GetByFixtureID(_ context.Context, fixtureID string) (livefixture.LiveFixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[fixtureID]
	return item, ok, nil
}

func (r *LiveFixtureRepository) Create(_ context.Context, item livefixture.LiveFixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.FixtureID] = item
	return nil
}

func (r *LiveFixtureRepository) Update(_ context.Context, item livefixture.LiveFixture) error {
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

func (r *LiveFixtureRepository) Delete(_ context.Context, fixtureID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, fixtureID)
	return nil
}
