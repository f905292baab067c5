package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/fplmate/fpl-companion/internal/domain/fixture"
	"github.com/fplmate/fpl-companion/internal/domain/player"
	"github.com/fplmate/fpl-companion/internal/domain/team"
	"github.com/fplmate/fpl-companion/internal/platform/cache"
	"github.com/fplmate/fpl-companion/internal/platform/logging"
)

// EventTracker shares the active gameweek between services. The sync job
// writes it, everything else reads.
type EventTracker struct {
	current atomic.Int64
}

func (t *EventTracker) Set(event int) {
	if event > 0 {
		t.current.Store(int64(event))
	}
}

// Current returns the active gameweek, defaulting to 1 before the first sync.
func (t *EventTracker) Current() int {
	if v := t.current.Load(); v > 0 {
		return int(v)
	}
	return 1
}

type SyncResult struct {
	Players      int       `json:"players"`
	Clubs        int       `json:"clubs"`
	Fixtures     int       `json:"fixtures"`
	CurrentEvent int       `json:"current_event"`
	SyncedAt     time.Time `json:"synced_at"`
}

// SyncService refreshes the local player/club/fixture snapshot from the
// provider. The two provider reads run concurrently; a failure of either
// aborts the whole refresh so the stores never end up half-updated.
type SyncService struct {
	source      GameDataSource
	playerRepo  player.Repository
	teamRepo    team.Repository
	fixtureRepo fixture.Repository
	clubs       *team.Registry
	cache       *cache.Store
	events      *EventTracker
	logger      *logging.Logger
}

func NewSyncService(
	source GameDataSource,
	playerRepo player.Repository,
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	clubs *team.Registry,
	store *cache.Store,
	events *EventTracker,
	logger *logging.Logger,
) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SyncService{
		source:      source,
		playerRepo:  playerRepo,
		teamRepo:    teamRepo,
		fixtureRepo: fixtureRepo,
		clubs:       clubs,
		cache:       store,
		events:      events,
		logger:      logger,
	}
}

func (s *SyncService) Run(ctx context.Context) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.Run")
	defer span.End()

	var (
		boot     ExternalBootstrap
		fixtures []fixture.Fixture
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		payload, err := s.source.FetchBootstrap(ctx)
		if err != nil {
			return fmt.Errorf("fetch bootstrap: %w", err)
		}
		boot = payload
		return nil
	})
	p.Go(func(ctx context.Context) error {
		payload, err := s.source.FetchFixtures(ctx)
		if err != nil {
			return fmt.Errorf("fetch fixtures: %w", err)
		}
		fixtures = payload
		return nil
	})
	if err := p.Wait(); err != nil {
		return SyncResult{}, err
	}

	players := make([]player.Player, 0, len(boot.Players))
	for _, rec := range boot.Players {
		if err := rec.Validate(); err != nil {
			s.logger.WarnContext(ctx, "skip invalid player record", "player_id", rec.ID, "error", err)
			continue
		}
		players = append(players, rec)
	}

	clubs := make([]team.Club, 0, len(boot.Clubs))
	for _, c := range boot.Clubs {
		if err := c.Validate(); err != nil {
			s.logger.WarnContext(ctx, "skip invalid club record", "club_id", c.ID, "error", err)
			continue
		}
		clubs = append(clubs, c)
	}

	valid := make([]fixture.Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if err := f.Validate(); err != nil {
			continue
		}
		valid = append(valid, f)
	}

	if err := s.playerRepo.ReplaceAll(ctx, players); err != nil {
		return SyncResult{}, fmt.Errorf("store players: %w", err)
	}
	if err := s.teamRepo.ReplaceAll(ctx, clubs); err != nil {
		return SyncResult{}, fmt.Errorf("store clubs: %w", err)
	}
	if err := s.fixtureRepo.ReplaceAll(ctx, valid); err != nil {
		return SyncResult{}, fmt.Errorf("store fixtures: %w", err)
	}

	s.clubs.Load(clubs)
	s.events.Set(boot.CurrentEvent)
	if s.cache != nil {
		s.cache.DeletePrefix(ctx, "players:")
		s.cache.DeletePrefix(ctx, "clubs:")
	}

	result := SyncResult{
		Players:      len(players),
		Clubs:        len(clubs),
		Fixtures:     len(valid),
		CurrentEvent: s.events.Current(),
		SyncedAt:     time.Now().UTC(),
	}
	s.logger.InfoContext(ctx, "game data synced",
		"players", result.Players,
		"clubs", result.Clubs,
		"fixtures", result.Fixtures,
		"current_event", result.CurrentEvent,
	)

	return result, nil
}
