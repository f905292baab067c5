package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/fplmate/fpl-companion/internal/domain/fixture"
	"github.com/fplmate/fpl-companion/internal/domain/player"
)

const (
	defaultPredictionHorizon = 3
	defaultPredictionWorkers = 8

	formWeight       = 0.6
	perNinetyWeight  = 0.4
	difficultyPivot  = 3.0
	difficultyFactor = 0.1
	jitterSpread     = 0.05
)

type PredictionConfig struct {
	Horizon       int
	Workers       int
	JitterEnabled bool
	JitterSeed    int64
}

// PredictionService is the prediction provider: a heuristic that scores each
// player's expected points for the upcoming gameweeks from recent form,
// season output, fixture difficulty and availability. Scores are opaque to
// the rest of the system; only their ordering matters.
type PredictionService struct {
	fixtureRepo fixture.Repository
	cfg         PredictionConfig
}

func NewPredictionService(fixtureRepo fixture.Repository, cfg PredictionConfig) *PredictionService {
	if cfg.Horizon <= 0 {
		cfg.Horizon = defaultPredictionHorizon
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultPredictionWorkers
	}

	return &PredictionService{
		fixtureRepo: fixtureRepo,
		cfg:         cfg,
	}
}

// PredictPlayers scores the given players for the horizon starting at
// fromEvent. The returned map is keyed by player id; players the heuristic
// cannot score are simply absent.
func (s *PredictionService) PredictPlayers(ctx context.Context, players []player.Player, fromEvent int) (map[int64]float64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.PredictPlayers")
	defer span.End()

	if len(players) == 0 {
		return map[int64]float64{}, nil
	}

	factors, err := s.clubDifficultyFactors(ctx, fromEvent)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(players))

	workers := s.cfg.Workers
	if workers > len(players) {
		workers = len(players)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create prediction pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range players {
		i := i
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			scores[i] = s.scorePlayer(players[i], factors)
		}); err != nil {
			wg.Done()
			return nil, fmt.Errorf("submit prediction task: %w", err)
		}
	}
	wg.Wait()

	out := make(map[int64]float64, len(players))
	for i, p := range players {
		out[p.ID] = scores[i]
	}

	return out, nil
}

func (s *PredictionService) scorePlayer(p player.Player, factors map[int64]float64) float64 {
	form, _ := strconv.ParseFloat(p.Form, 64)

	perNinety := 0.0
	if p.Minutes > 0 {
		appearances := float64(p.Minutes) / 90.0
		if appearances < 1 {
			appearances = 1
		}
		perNinety = float64(p.TotalPoints) / appearances
	}

	score := formWeight*form + perNinetyWeight*perNinety

	if factor, ok := factors[p.TeamID]; ok {
		score *= factor
	} else {
		// No fixtures inside the horizon means a blank gameweek run.
		score = 0
	}

	if p.ChanceOfPlayingNextRound != nil {
		score *= float64(*p.ChanceOfPlayingNextRound) / 100.0
	}

	if s.cfg.JitterEnabled {
		score *= jitterMultiplier(s.cfg.JitterSeed, p.ID)
	}

	if score < 0 {
		return 0
	}
	return score
}

// clubDifficultyFactors turns each club's upcoming fixture difficulties into
// a multiplier around 1.0: easy runs score above, hard runs below, and a
// double gameweek counts every match.
func (s *PredictionService) clubDifficultyFactors(ctx context.Context, fromEvent int) (map[int64]float64, error) {
	fixtures, err := s.fixtureRepo.ListUpcoming(ctx, fromEvent, s.cfg.Horizon)
	if err != nil {
		return nil, fmt.Errorf("list upcoming fixtures: %w", err)
	}

	perClub := make(map[int64][]int, 32)
	for _, f := range fixtures {
		perClub[f.HomeTeamID] = append(perClub[f.HomeTeamID], f.HomeDifficulty)
		perClub[f.AwayTeamID] = append(perClub[f.AwayTeamID], f.AwayDifficulty)
	}

	factors := make(map[int64]float64, len(perClub))
	for clubID, difficulties := range perClub {
		sum := 0
		for _, d := range difficulties {
			sum += d
		}
		avg := float64(sum) / float64(len(difficulties))
		factor := 1.0 + (difficultyPivot-avg)*difficultyFactor

		// More matches than gameweeks in the horizon means extra chances to
		// score points.
		matchesPerEvent := float64(len(difficulties)) / float64(s.cfg.Horizon)
		if matchesPerEvent > 1 {
			factor *= matchesPerEvent
		}

		if factor < 0 {
			factor = 0
		}
		factors[clubID] = factor
	}

	return factors, nil
}

// jitterMultiplier derives a deterministic multiplier in [1-spread, 1+spread]
// from the seed and the player id, so a fixed seed reproduces identical
// predictions regardless of worker scheduling.
func jitterMultiplier(seed, playerID int64) float64 {
	rng := rand.New(rand.NewSource(seed ^ (playerID * 0x9e3779b9)))
	return 1 - jitterSpread + 2*jitterSpread*rng.Float64()
}
