package fpl

import (
	"github.com/fplmate/fpl-companion/internal/domain/player"
	"github.com/fplmate/fpl-companion/internal/domain/team"
)

// Event is one gameweek row from the bootstrap payload.
type Event struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	IsCurrent  bool   `json:"is_current"`
	IsNext     bool   `json:"is_next"`
	Finished   bool   `json:"finished"`
	DeadlineAt string `json:"deadline_time"`
}

// Bootstrap is the subset of bootstrap-static the service consumes.
type Bootstrap struct {
	Events  []Event         `json:"events"`
	Teams   []team.Club     `json:"teams"`
	Players []player.Player `json:"elements"`
}

// CurrentEvent returns the in-progress gameweek, falling back to the next
// one before the season starts. Zero when the payload carries no usable row.
func (b Bootstrap) CurrentEvent() int {
	next := 0
	for _, ev := range b.Events {
		if ev.IsCurrent {
			return ev.ID
		}
		if ev.IsNext && next == 0 {
			next = ev.ID
		}
	}

	return next
}

// Entry is the public profile of an FPL manager.
type Entry struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	PlayerFirstName    string `json:"player_first_name"`
	PlayerLastName     string `json:"player_last_name"`
	SummaryOverallRank int    `json:"summary_overall_rank"`
	CurrentEvent       int    `json:"current_event"`
}

// Pick is one slot of an entry's gameweek selection.
type Pick struct {
	Element       int64 `json:"element"`
	Position      int   `json:"position"`
	Multiplier    int   `json:"multiplier"`
	IsCaptain     bool  `json:"is_captain"`
	IsViceCaptain bool  `json:"is_vice_captain"`
}

// EntryHistory carries the money fields of a picks payload, in tenths.
type EntryHistory struct {
	Event      int `json:"event"`
	Points     int `json:"points"`
	TotalPoint int `json:"total_points"`
	Bank       int `json:"bank"`
	Value      int `json:"value"`
}

// EntryPicks is the /entry/{id}/event/{gw}/picks payload.
type EntryPicks struct {
	EntryHistory EntryHistory `json:"entry_history"`
	Picks        []Pick       `json:"picks"`
}

type apiError struct {
	Detail string `json:"detail"`
}
