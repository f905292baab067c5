package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fplmate/fpl-companion/internal/domain/player"
	"github.com/fplmate/fpl-companion/internal/domain/squad"
	"github.com/fplmate/fpl-companion/internal/domain/team"
	"github.com/fplmate/fpl-companion/internal/platform/cache"
)

const maxPlayerPageSize = 100

type PlayerFilter struct {
	Position string
	ClubID   int64
	Search   string
	MaxPrice float64
	Limit    int
	Offset   int
}

type PlayerService struct {
	playerRepo player.Repository
	teamRepo   team.Repository
	cache      *cache.Store
}

func NewPlayerService(playerRepo player.Repository, teamRepo team.Repository, store *cache.Store) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		cache:      store,
	}
}

// ListPlayers returns a filtered page of the player universe, sorted by
// total points descending so the strongest players surface first.
func (s *PlayerService) ListPlayers(ctx context.Context, filter PlayerFilter) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	if filter.Position != "" {
		if _, ok := player.AllPositions[player.Position(strings.ToUpper(filter.Position))]; !ok {
			return nil, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, filter.Position)
		}
	}
	if filter.Limit <= 0 || filter.Limit > maxPlayerPageSize {
		filter.Limit = maxPlayerPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	players, err := s.allPlayers(ctx)
	if err != nil {
		return nil, err
	}

	position := player.Position(strings.ToUpper(filter.Position))
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]player.Player, 0, filter.Limit)
	skipped := 0
	for _, rec := range players {
		if filter.Position != "" {
			pos, err := player.PositionFromElementType(rec.ElementType)
			if err != nil || pos != position {
				continue
			}
		}
		if filter.ClubID > 0 && rec.TeamID != filter.ClubID {
			continue
		}
		if filter.MaxPrice > 0 && squad.ResolvePrice(rec) > filter.MaxPrice {
			continue
		}
		if search != "" && !matchesSearch(rec, search) {
			continue
		}

		if skipped < filter.Offset {
			skipped++
			continue
		}
		out = append(out, rec)
		if len(out) >= filter.Limit {
			break
		}
	}

	return out, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, id int64) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	if id <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}

	items, err := s.playerRepo.GetByIDs(ctx, []int64{id})
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if len(items) == 0 {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, id)
	}

	return items[0], nil
}

func (s *PlayerService) ListClubs(ctx context.Context) ([]team.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListClubs")
	defer span.End()

	loaded, err := s.cache.GetOrLoad(ctx, "clubs:list", func(ctx context.Context) (any, error) {
		clubs, err := s.teamRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list clubs: %w", err)
		}
		sort.SliceStable(clubs, func(i, j int) bool { return clubs[i].ID < clubs[j].ID })
		return clubs, nil
	})
	if err != nil {
		return nil, err
	}

	clubs, ok := loaded.([]team.Club)
	if !ok {
		return nil, fmt.Errorf("unexpected cached club type %T", loaded)
	}

	return clubs, nil
}

// allPlayers serves the sorted universe from cache between syncs.
func (s *PlayerService) allPlayers(ctx context.Context) ([]player.Player, error) {
	loaded, err := s.cache.GetOrLoad(ctx, "players:list", func(ctx context.Context) (any, error) {
		players, err := s.playerRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list players: %w", err)
		}
		sort.SliceStable(players, func(i, j int) bool {
			if players[i].TotalPoints != players[j].TotalPoints {
				return players[i].TotalPoints > players[j].TotalPoints
			}
			return players[i].ID < players[j].ID
		})
		return players, nil
	})
	if err != nil {
		return nil, err
	}

	players, ok := loaded.([]player.Player)
	if !ok {
		return nil, fmt.Errorf("unexpected cached player type %T", loaded)
	}

	return players, nil
}

func matchesSearch(rec player.Player, search string) bool {
	return strings.Contains(strings.ToLower(rec.WebName), search) ||
		strings.Contains(strings.ToLower(rec.FirstName), search) ||
		strings.Contains(strings.ToLower(rec.SecondName), search)
}
