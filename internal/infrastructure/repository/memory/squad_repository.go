package memory

import (
	"context"
	"sync"

	"github.com/fplmate/fpl-companion/internal/domain/squad"
)

type SquadRepository struct {
	mu     sync.RWMutex
	states map[string]squad.State
}

func NewSquadRepository() *SquadRepository {
	return &SquadRepository{states: make(map[string]squad.State)}
}

func (r *SquadRepository) Get(_ context.Context, sessionID string) (squad.State, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.states[sessionID]
	if !ok {
		return squad.State{}, false, nil
	}

	players := make([]squad.Player, 0, len(state.Players))
	players = append(players, state.Players...)
	state.Players = players

	return state, true, nil
}

func (r *SquadRepository) Save(_ context.Context, state squad.State) error {
	players := make([]squad.Player, 0, len(state.Players))
	players = append(players, state.Players...)
	state.Players = players

	r.mu.Lock()
	r.states[state.SessionID] = state
	r.mu.Unlock()

	return nil
}

func (r *SquadRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.states, sessionID)
	r.mu.Unlock()

	return nil
}
