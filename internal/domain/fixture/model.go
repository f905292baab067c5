package fixture

import (
	"fmt"
	"time"
)

// Fixture is one scheduled match from the FPL fixtures feed.
type Fixture struct {
	ID             int64      `json:"id"`
	Event          int        `json:"event"`
	HomeTeamID     int64      `json:"team_h"`
	AwayTeamID     int64      `json:"team_a"`
	HomeDifficulty int        `json:"team_h_difficulty"`
	AwayDifficulty int        `json:"team_a_difficulty"`
	KickoffTime    *time.Time `json:"kickoff_time"`
	Finished       bool       `json:"finished"`
}

func (f Fixture) Validate() error {
	if f.ID <= 0 {
		return fmt.Errorf("fixture id must be greater than zero")
	}
	if f.HomeTeamID <= 0 || f.AwayTeamID <= 0 {
		return fmt.Errorf("fixture team ids must be greater than zero")
	}

	return nil
}

// InvolvesTeam reports whether the given club plays in this fixture.
func (f Fixture) InvolvesTeam(teamID int64) bool {
	return f.HomeTeamID == teamID || f.AwayTeamID == teamID
}

// DifficultyFor returns the FPL difficulty rating faced by the given club,
// zero when the club is not involved.
func (f Fixture) DifficultyFor(teamID int64) int {
	switch teamID {
	case f.HomeTeamID:
		return f.HomeDifficulty
	case f.AwayTeamID:
		return f.AwayDifficulty
	default:
		return 0
	}
}
