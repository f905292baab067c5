package usecase

import (
	"context"
	"fmt"

	"github.com/fplmate/fpl-companion/internal/domain/player"
	"github.com/fplmate/fpl-companion/internal/domain/squad"
	"github.com/fplmate/fpl-companion/internal/platform/logging"
)

const (
	defaultSuggestionLimit = 3
	maxSuggestionLimit     = 10
)

// SuggestionService glues the prediction provider to the transfer search:
// it scores the full universe, attaches the scores to both the squad and the
// candidates, and hands the lot to the suggester.
type SuggestionService struct {
	squads     *SquadService
	playerRepo player.Repository
	predictor  *PredictionService
	events     *EventTracker
	suggester  *squad.Suggester
	logger     *logging.Logger
}

func NewSuggestionService(
	squads *SquadService,
	playerRepo player.Repository,
	predictor *PredictionService,
	events *EventTracker,
	rules squad.Rules,
	logger *logging.Logger,
) *SuggestionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SuggestionService{
		squads:     squads,
		playerRepo: playerRepo,
		predictor:  predictor,
		events:     events,
		suggester:  squad.NewSuggester(rules, logger),
		logger:     logger,
	}
}

// Suggest proposes up to limit transfers for the session's squad. An empty
// squad yields an empty list, not an error.
func (s *SuggestionService) Suggest(ctx context.Context, sessionID string, limit int) ([]squad.TransferSuggestion, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuggestionService.Suggest")
	defer span.End()

	if limit <= 0 {
		limit = defaultSuggestionLimit
	}
	if limit > maxSuggestionLimit {
		limit = maxSuggestionLimit
	}

	snap, err := s.squads.GetSquad(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if snap.Size == 0 {
		return []squad.TransferSuggestion{}, nil
	}

	records, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list player universe: %w", err)
	}

	predictions, err := s.predictor.PredictPlayers(ctx, records, s.events.Current())
	if err != nil {
		return nil, fmt.Errorf("predict players: %w", err)
	}

	universe := make([]squad.Player, 0, len(records))
	for _, rec := range records {
		sp, err := squad.FromRecord(rec)
		if err != nil {
			continue
		}
		if score, ok := predictions[sp.ID]; ok {
			v := score
			sp.PredictedPoints = &v
		}
		universe = append(universe, sp)
	}

	current := make([]squad.Player, len(snap.Players))
	copy(current, snap.Players)
	for i := range current {
		if score, ok := predictions[current[i].ID]; ok {
			v := score
			current[i].PredictedPoints = &v
		}
	}

	suggestions := s.suggester.Suggest(current, universe, limit)
	if suggestions == nil {
		suggestions = []squad.TransferSuggestion{}
	}

	return suggestions, nil
}
