package usecase

import (
	"context"
	"testing"

	"github.com/fplmate/fpl-companion/internal/domain/fixture"
	"github.com/fplmate/fpl-companion/internal/domain/player"
	"github.com/fplmate/fpl-companion/internal/domain/squad"
	"github.com/fplmate/fpl-companion/internal/platform/logging"
)

func TestSuggestProposesUpgradeWithinBudget(t *testing.T) {
	// Two forwards in the universe: the owned one is out of form, the other
	// thriving at the same price.
	weak := universeRecord(101, 1, 4, 80, 20, "1.0")
	strong := universeRecord(102, 2, 4, 80, 120, "9.0")
	repo := &fakePlayerRepo{players: []player.Player{weak, strong}}

	fixtures := &fakeFixtureRepo{fixtures: []fixture.Fixture{
		{ID: 1, Event: 7, HomeTeamID: 1, AwayTeamID: 2, HomeDifficulty: 3, AwayDifficulty: 3},
	}}

	events := &EventTracker{}
	events.Set(7)
	squads := NewSquadService(squad.DefaultRules(), repo, newFakeSquadRepo(), &fakeSource{}, events, logging.NewNop())
	predictor := NewPredictionService(fixtures, PredictionConfig{Horizon: 1})
	svc := NewSuggestionService(squads, repo, predictor, events, squad.DefaultRules(), logging.NewNop())
	ctx := context.Background()

	if _, _, err := squads.AddPlayer(ctx, "sess-1", 101); err != nil {
		t.Fatalf("AddPlayer failed: %v", err)
	}

	suggestions, err := svc.Suggest(ctx, "sess-1", 0)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(suggestions))
	}
	if suggestions[0].Out.ID != 101 || suggestions[0].In.ID != 102 {
		t.Fatalf("unexpected swap: %d->%d", suggestions[0].Out.ID, suggestions[0].In.ID)
	}
	if suggestions[0].PointsImprovement <= 0 {
		t.Fatalf("improvement = %v, want positive", suggestions[0].PointsImprovement)
	}
}

func TestSuggestEmptySquadYieldsEmptyList(t *testing.T) {
	repo := &fakePlayerRepo{players: squadTestUniverse()}
	events := &EventTracker{}
	squads := NewSquadService(squad.DefaultRules(), repo, newFakeSquadRepo(), &fakeSource{}, events, logging.NewNop())
	predictor := NewPredictionService(&fakeFixtureRepo{}, PredictionConfig{Horizon: 1})
	svc := NewSuggestionService(squads, repo, predictor, events, squad.DefaultRules(), logging.NewNop())

	suggestions, err := svc.Suggest(context.Background(), "sess-empty", 3)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if suggestions == nil || len(suggestions) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", suggestions)
	}
}
