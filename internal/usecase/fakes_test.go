package usecase

import (
	"context"
	"sync"

	"github.com/fplmate/fpl-companion/internal/domain/fixture"
	"github.com/fplmate/fpl-companion/internal/domain/player"
	"github.com/fplmate/fpl-companion/internal/domain/squad"
	"github.com/fplmate/fpl-companion/internal/domain/team"
)

type fakePlayerRepo struct {
	mu      sync.Mutex
	players []player.Player
	listErr error
}

func (r *fakePlayerRepo) List(context.Context) ([]player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]player.Player(nil), r.players...), nil
}

func (r *fakePlayerRepo) GetByIDs(_ context.Context, ids []int64) ([]player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	out := make([]player.Player, 0, len(ids))
	for _, p := range r.players {
		if _, ok := wanted[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) ReplaceAll(_ context.Context, players []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players = append([]player.Player(nil), players...)
	return nil
}

type fakeTeamRepo struct {
	mu    sync.Mutex
	clubs []team.Club
}

func (r *fakeTeamRepo) List(context.Context) ([]team.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]team.Club(nil), r.clubs...), nil
}

func (r *fakeTeamRepo) ReplaceAll(_ context.Context, clubs []team.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clubs = append([]team.Club(nil), clubs...)
	return nil
}

type fakeFixtureRepo struct {
	mu       sync.Mutex
	fixtures []fixture.Fixture
}

func (r *fakeFixtureRepo) ListByEvent(_ context.Context, event int) ([]fixture.Fixture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]fixture.Fixture, 0, len(r.fixtures))
	for _, f := range r.fixtures {
		if f.Event == event {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFixtureRepo) ListUpcoming(_ context.Context, fromEvent, count int) ([]fixture.Fixture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]fixture.Fixture, 0, len(r.fixtures))
	for _, f := range r.fixtures {
		if f.Event >= fromEvent && f.Event < fromEvent+count {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFixtureRepo) ReplaceAll(_ context.Context, fixtures []fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fixtures = append([]fixture.Fixture(nil), fixtures...)
	return nil
}

type fakeSquadRepo struct {
	mu     sync.Mutex
	states map[string]squad.State
	saves  int
}

func newFakeSquadRepo() *fakeSquadRepo {
	return &fakeSquadRepo{states: make(map[string]squad.State)}
}

func (r *fakeSquadRepo) Get(_ context.Context, sessionID string) (squad.State, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[sessionID]
	return state, ok, nil
}

func (r *fakeSquadRepo) Save(_ context.Context, state squad.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[state.SessionID] = state
	r.saves++
	return nil
}

func (r *fakeSquadRepo) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, sessionID)
	return nil
}

type fakeSource struct {
	bootstrap    ExternalBootstrap
	bootstrapErr error
	fixtures     []fixture.Fixture
	fixturesErr  error
	picks        ExternalEntryPicks
	picksErr     error
}

func (s *fakeSource) FetchBootstrap(context.Context) (ExternalBootstrap, error) {
	if s.bootstrapErr != nil {
		return ExternalBootstrap{}, s.bootstrapErr
	}
	return s.bootstrap, nil
}

func (s *fakeSource) FetchFixtures(context.Context) ([]fixture.Fixture, error) {
	if s.fixturesErr != nil {
		return nil, s.fixturesErr
	}
	return append([]fixture.Fixture(nil), s.fixtures...), nil
}

func (s *fakeSource) FetchEntryPicks(context.Context, int64, int) (ExternalEntryPicks, error) {
	if s.picksErr != nil {
		return ExternalEntryPicks{}, s.picksErr
	}
	return s.picks, nil
}

func universeRecord(id, clubID int64, elementType, nowCost, totalPoints int, form string) player.Player {
	return player.Player{
		ID:          id,
		Code:        id * 10,
		WebName:     "p" + string(rune('a'+id%26)),
		TeamID:      clubID,
		ElementType: elementType,
		NowCost:     nowCost,
		TotalPoints: totalPoints,
		Minutes:     900,
		Form:        form,
	}
}
