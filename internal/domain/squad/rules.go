package squad

import (
	"errors"
	"fmt"

	"github.com/fplmate/fpl-companion/internal/domain/player"
)

var (
	ErrSquadComplete         = errors.New("team is already complete")
	ErrPositionQuotaExceeded = errors.New("position quota exceeded")
	ErrClubQuotaExceeded     = errors.New("club quota exceeded")
	ErrDuplicatePlayer       = errors.New("player already in squad")
	ErrInsufficientBudget    = errors.New("not enough budget")
	ErrPlayerNotFound        = errors.New("player not found in squad")
)

// Rules stores squad composition limits. A full 15-player squad hits each
// position quota exactly because the maxima sum to the squad size.
type Rules struct {
	SquadSize       int
	MaxPerClub      int
	QuotaByPosition map[player.Position]int
}

func DefaultRules() Rules {
	return Rules{
		SquadSize:  15,
		MaxPerClub: 3,
		QuotaByPosition: map[player.Position]int{
			player.PositionGoalkeeper: 2,
			player.PositionDefender:   5,
			player.PositionMidfielder: 5,
			player.PositionForward:    3,
		},
	}
}

// CanAdd decides whether the candidate may join the squad: position quota,
// club quota, then duplicate check.
func (r Rules) CanAdd(candidate Player, current []Player) error {
	quota := r.QuotaByPosition[candidate.Position]
	if countPosition(current, candidate.Position) >= quota {
		return fmt.Errorf("%w: position=%s max=%d", ErrPositionQuotaExceeded, candidate.Position, quota)
	}

	if countClub(current, candidate.ClubID) >= r.MaxPerClub {
		return fmt.Errorf("%w: club=%d max=%d", ErrClubQuotaExceeded, candidate.ClubID, r.MaxPerClub)
	}

	for _, p := range current {
		if p.ID == candidate.ID {
			return fmt.Errorf("%w: id=%d", ErrDuplicatePlayer, candidate.ID)
		}
	}

	return nil
}

// CanReplace decides whether incoming may take outgoing's slot. Quota checks
// run against the squad as if outgoing were already removed, and only when
// the respective attribute actually changes.
func (r Rules) CanReplace(outgoing, incoming Player, current []Player) error {
	for _, p := range current {
		if p.ID == incoming.ID && p.ID != outgoing.ID {
			return fmt.Errorf("%w: id=%d", ErrDuplicatePlayer, incoming.ID)
		}
	}

	if incoming.Position != outgoing.Position {
		quota := r.QuotaByPosition[incoming.Position]
		count := 0
		for _, p := range current {
			if p.ID == outgoing.ID {
				continue
			}
			if p.Position == incoming.Position {
				count++
			}
		}
		if count >= quota {
			return fmt.Errorf("%w: position=%s max=%d", ErrPositionQuotaExceeded, incoming.Position, quota)
		}
	}

	if incoming.ClubID != outgoing.ClubID {
		count := 0
		for _, p := range current {
			if p.ID == outgoing.ID {
				continue
			}
			if p.ClubID == incoming.ClubID {
				count++
			}
		}
		if count >= r.MaxPerClub {
			return fmt.Errorf("%w: club=%d max=%d", ErrClubQuotaExceeded, incoming.ClubID, r.MaxPerClub)
		}
	}

	return nil
}

// FitsClubQuota reports whether a candidate from the given club could enter
// the squad with outgoing removed. Used by the suggestion search, which
// filters candidate pools without materializing swaps.
func (r Rules) FitsClubQuota(clubID int64, outgoing Player, current []Player) bool {
	if clubID == outgoing.ClubID {
		return true
	}

	count := 0
	for _, p := range current {
		if p.ID == outgoing.ID {
			continue
		}
		if p.ClubID == clubID {
			count++
		}
	}

	return count < r.MaxPerClub
}

func countPosition(players []Player, pos player.Position) int {
	count := 0
	for _, p := range players {
		if p.Position == pos {
			count++
		}
	}

	return count
}

func countClub(players []Player, clubID int64) int {
	count := 0
	for _, p := range players {
		if p.ClubID == clubID {
			count++
		}
	}

	return count
}
