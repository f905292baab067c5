package usecase

import (
	"context"

	"github.com/fplmate/fpl-companion/internal/domain/fixture"
	"github.com/fplmate/fpl-companion/internal/domain/player"
	"github.com/fplmate/fpl-companion/internal/domain/team"
)

// ExternalBootstrap is the game-wide dataset pulled from the provider in one
// request: the full player universe, the clubs, and the active gameweek.
type ExternalBootstrap struct {
	Players      []player.Player
	Clubs        []team.Club
	CurrentEvent int
}

// ExternalPick is one slot of an imported squad selection.
type ExternalPick struct {
	ElementID     int64
	SlotPosition  int
	IsCaptain     bool
	IsViceCaptain bool
}

// ExternalEntryPicks is an imported manager selection. Money fields stay in
// provider tenths; the squad pricing layer normalizes them.
type ExternalEntryPicks struct {
	Event      int
	BankTenths int
	Picks      []ExternalPick
}

// GameDataSource is the provider-facing port. The infrastructure layer
// implements it against the public FPL API.
type GameDataSource interface {
	FetchBootstrap(ctx context.Context) (ExternalBootstrap, error)
	FetchFixtures(ctx context.Context) ([]fixture.Fixture, error)
	FetchEntryPicks(ctx context.Context, entryID int64, event int) (ExternalEntryPicks, error)
}
