package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fplmate/fpl-companion/internal/domain/fixture"
	basecache "github.com/fplmate/fpl-companion/internal/platform/cache"
)

// FixtureRepository decorates a fixture store with caching. Predictions read
// the upcoming-fixture window on every suggestion request, so those reads
// are served from memory between syncs.
type FixtureRepository struct {
	next  fixture.Repository
	cache *basecache.Store
}

func NewFixtureRepository(next fixture.Repository, cache *basecache.Store) *FixtureRepository {
	return &FixtureRepository{next: next, cache: cache}
}

func (r *FixtureRepository) ListByEvent(ctx context.Context, event int) ([]fixture.Fixture, error) {
	key := "fixtures:event:" + strconv.Itoa(event)
	return r.load(ctx, key, func(ctx context.Context) ([]fixture.Fixture, error) {
		return r.next.ListByEvent(ctx, event)
	})
}

func (r *FixtureRepository) ListUpcoming(ctx context.Context, fromEvent, count int) ([]fixture.Fixture, error) {
	key := "fixtures:upcoming:" + strconv.Itoa(fromEvent) + ":" + strconv.Itoa(count)
	return r.load(ctx, key, func(ctx context.Context) ([]fixture.Fixture, error) {
		return r.next.ListUpcoming(ctx, fromEvent, count)
	})
}

func (r *FixtureRepository) ReplaceAll(ctx context.Context, fixtures []fixture.Fixture) error {
	if err := r.next.ReplaceAll(ctx, fixtures); err != nil {
		return err
	}

	r.cache.DeletePrefix(ctx, "fixtures:")
	return nil
}

func (r *FixtureRepository) load(ctx context.Context, key string, fetch func(context.Context) ([]fixture.Fixture, error)) ([]fixture.Fixture, error) {
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return append([]fixture.Fixture(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, ok := v.([]fixture.Fixture)
	if !ok {
		return nil, fmt.Errorf("unexpected cached fixture type %T for key %s", v, key)
	}

	return append([]fixture.Fixture(nil), items...), nil
}
