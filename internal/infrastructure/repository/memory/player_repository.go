package memory

import (
	"context"
	"sync"

	"github.com/fplmate/fpl-companion/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players []player.Player
	byID    map[int64]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{byID: make(map[int64]player.Player)}
	r.replace(players)
	return r
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	out = append(out, r.players...)

	return out, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, ids []int64) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(ids))
	for _, id := range ids {
		p, ok := r.byID[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

func (r *PlayerRepository) ReplaceAll(_ context.Context, players []player.Player) error {
	r.replace(players)
	return nil
}

func (r *PlayerRepository) replace(players []player.Player) {
	copied := make([]player.Player, 0, len(players))
	copied = append(copied, players...)
	byID := make(map[int64]player.Player, len(copied))
	for _, p := range copied {
		byID[p.ID] = p
	}

	r.mu.Lock()
	r.players = copied
	r.byID = byID
	r.mu.Unlock()
}
