package team

import (
	"fmt"
	"sync"
)

// Club is one Premier League club from the FPL bootstrap payload.
type Club struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	ShortName           string `json:"short_name"`
	StrengthOverallHome int    `json:"strength_overall_home"`
	StrengthOverallAway int    `json:"strength_overall_away"`
	StrengthAttackHome  int    `json:"strength_attack_home"`
	StrengthAttackAway  int    `json:"strength_attack_away"`
	StrengthDefenceHome int    `json:"strength_defence_home"`
	StrengthDefenceAway int    `json:"strength_defence_away"`
}

func (c Club) Validate() error {
	if c.ID <= 0 {
		return fmt.Errorf("club id must be greater than zero")
	}
	if c.Name == "" {
		return fmt.Errorf("club name is required")
	}
	if c.ShortName == "" {
		return fmt.Errorf("club short name is required")
	}

	return nil
}

// Registry is an explicitly owned club lookup table. Callers construct one,
// load it from the repository, and inject it into whatever needs club-name
// resolution; nothing caches clubs at module level.
type Registry struct {
	mu    sync.RWMutex
	byID  map[int64]Club
	clubs []Club
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[int64]Club)}
}

// Load replaces the registry contents wholesale.
func (r *Registry) Load(clubs []Club) {
	byID := make(map[int64]Club, len(clubs))
	copied := make([]Club, 0, len(clubs))
	for _, c := range clubs {
		byID[c.ID] = c
		copied = append(copied, c)
	}

	r.mu.Lock()
	r.byID = byID
	r.clubs = copied
	r.mu.Unlock()
}

func (r *Registry) Get(id int64) (Club, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	return c, ok
}

// ShortName resolves a club id to its 3-letter code, falling back to the
// numeric id when the club is unknown.
func (r *Registry) ShortName(id int64) string {
	if c, ok := r.Get(id); ok && c.ShortName != "" {
		return c.ShortName
	}

	return fmt.Sprintf("%d", id)
}

func (r *Registry) List() []Club {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Club, 0, len(r.clubs))
	out = append(out, r.clubs...)
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byID)
}
