package memory

import (
	"context"
	"sync"

	"github.com/fplmate/fpl-companion/internal/domain/fixture"
)

type FixtureRepository struct {
	mu       sync.RWMutex
	fixtures []fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	r := &FixtureRepository{}
	r.replace(fixtures)
	return r
}

func (r *FixtureRepository) ListByEvent(_ context.Context, event int) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0, len(r.fixtures))
	for _, f := range r.fixtures {
		if f.Event == event {
			out = append(out, f)
		}
	}

	return out, nil
}

func (r *FixtureRepository) ListUpcoming(_ context.Context, fromEvent, count int) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0, len(r.fixtures))
	for _, f := range r.fixtures {
		if f.Event >= fromEvent && f.Event < fromEvent+count {
			out = append(out, f)
		}
	}

	return out, nil
}

func (r *FixtureRepository) ReplaceAll(_ context.Context, fixtures []fixture.Fixture) error {
	r.replace(fixtures)
	return nil
}

func (r *FixtureRepository) replace(fixtures []fixture.Fixture) {
	copied := make([]fixture.Fixture, 0, len(fixtures))
	copied = append(copied, fixtures...)

	r.mu.Lock()
	r.fixtures = copied
	r.mu.Unlock()
}
