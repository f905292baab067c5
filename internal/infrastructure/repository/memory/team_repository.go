package memory

import (
	"context"
	"sync"

	"github.com/fplmate/fpl-companion/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	clubs []team.Club
}

func NewTeamRepository(clubs []team.Club) *TeamRepository {
	r := &TeamRepository{}
	r.replace(clubs)
	return r
}

func (r *TeamRepository) List(_ context.Context) ([]team.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Club, 0, len(r.clubs))
	out = append(out, r.clubs...)

	return out, nil
}

func (r *TeamRepository) ReplaceAll(_ context.Context, clubs []team.Club) error {
	r.replace(clubs)
	return nil
}

func (r *TeamRepository) replace(clubs []team.Club) {
	copied := make([]team.Club, 0, len(clubs))
	copied = append(copied, clubs...)

	r.mu.Lock()
	r.clubs = copied
	r.mu.Unlock()
}
