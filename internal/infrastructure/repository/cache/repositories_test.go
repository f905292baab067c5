package cache

import (
	"context"
	"testing"
	"time"

	"github.com/fplmate/fpl-companion/internal/domain/fixture"
	basecache "github.com/fplmate/fpl-companion/internal/platform/cache"
)

type countingFixtureRepo struct {
	fixtures []fixture.Fixture
	calls    int
}

func (r *countingFixtureRepo) ListByEvent(_ context.Context, event int) ([]fixture.Fixture, error) {
	r.calls++
	out := make([]fixture.Fixture, 0, len(r.fixtures))
	for _, f := range r.fixtures {
		if f.Event == event {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *countingFixtureRepo) ListUpcoming(_ context.Context, fromEvent, count int) ([]fixture.Fixture, error) {
	r.calls++
	out := make([]fixture.Fixture, 0, len(r.fixtures))
	for _, f := range r.fixtures {
		if f.Event >= fromEvent && f.Event < fromEvent+count {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *countingFixtureRepo) ReplaceAll(_ context.Context, fixtures []fixture.Fixture) error {
	r.fixtures = fixtures
	return nil
}

func TestFixtureRepositoryServesRepeatReadsFromCache(t *testing.T) {
	next := &countingFixtureRepo{fixtures: []fixture.Fixture{
		{ID: 1, Event: 7, HomeTeamID: 1, AwayTeamID: 2},
		{ID: 2, Event: 8, HomeTeamID: 2, AwayTeamID: 1},
	}}
	repo := NewFixtureRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	first, err := repo.ListUpcoming(ctx, 7, 2)
	if err != nil {
		t.Fatalf("ListUpcoming failed: %v", err)
	}
	second, err := repo.ListUpcoming(ctx, 7, 2)
	if err != nil {
		t.Fatalf("ListUpcoming failed: %v", err)
	}

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("unexpected results: first=%d second=%d", len(first), len(second))
	}
	if next.calls != 1 {
		t.Fatalf("backing repo calls = %d, want 1", next.calls)
	}
}

func TestFixtureRepositoryInvalidatesOnReplace(t *testing.T) {
	next := &countingFixtureRepo{fixtures: []fixture.Fixture{
		{ID: 1, Event: 7, HomeTeamID: 1, AwayTeamID: 2},
	}}
	repo := NewFixtureRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	if _, err := repo.ListByEvent(ctx, 7); err != nil {
		t.Fatalf("ListByEvent failed: %v", err)
	}

	if err := repo.ReplaceAll(ctx, []fixture.Fixture{
		{ID: 9, Event: 7, HomeTeamID: 3, AwayTeamID: 4},
	}); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	refreshed, err := repo.ListByEvent(ctx, 7)
	if err != nil {
		t.Fatalf("ListByEvent failed: %v", err)
	}
	if len(refreshed) != 1 || refreshed[0].ID != 9 {
		t.Fatalf("stale fixtures after replace: %+v", refreshed)
	}
}
