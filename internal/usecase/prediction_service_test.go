package usecase

import (
	"context"
	"testing"

	"github.com/fplmate/fpl-companion/internal/domain/fixture"
	"github.com/fplmate/fpl-companion/internal/domain/player"
)

func predictionFixtures() []fixture.Fixture {
	return []fixture.Fixture{
		// Club 1 faces an easy run, club 2 a hard one.
		{ID: 1, Event: 7, HomeTeamID: 1, AwayTeamID: 9, HomeDifficulty: 2, AwayDifficulty: 4},
		{ID: 2, Event: 8, HomeTeamID: 1, AwayTeamID: 10, HomeDifficulty: 2, AwayDifficulty: 3},
		{ID: 3, Event: 7, HomeTeamID: 11, AwayTeamID: 2, HomeDifficulty: 2, AwayDifficulty: 5},
		{ID: 4, Event: 8, HomeTeamID: 2, AwayTeamID: 12, HomeDifficulty: 5, AwayDifficulty: 2},
	}
}

func TestPredictPlayersFavorsEasyFixtures(t *testing.T) {
	repo := &fakeFixtureRepo{fixtures: predictionFixtures()}
	svc := NewPredictionService(repo, PredictionConfig{Horizon: 2})

	// Identical players apart from their club's fixture run.
	players := []player.Player{
		universeRecord(1, 1, 3, 80, 60, "5.0"),
		universeRecord(2, 2, 3, 80, 60, "5.0"),
	}

	scores, err := svc.PredictPlayers(context.Background(), players, 7)
	if err != nil {
		t.Fatalf("PredictPlayers failed: %v", err)
	}
	if scores[1] <= scores[2] {
		t.Fatalf("easy run should outscore hard run: %v vs %v", scores[1], scores[2])
	}
	if scores[1] <= 0 || scores[2] <= 0 {
		t.Fatalf("both players should score positive: %v", scores)
	}
}

func TestPredictPlayersBlankGameweekScoresZero(t *testing.T) {
	repo := &fakeFixtureRepo{fixtures: predictionFixtures()}
	svc := NewPredictionService(repo, PredictionConfig{Horizon: 2})

	// Club 99 has no fixtures inside the horizon.
	players := []player.Player{universeRecord(5, 99, 4, 100, 90, "8.0")}

	scores, err := svc.PredictPlayers(context.Background(), players, 7)
	if err != nil {
		t.Fatalf("PredictPlayers failed: %v", err)
	}
	if scores[5] != 0 {
		t.Fatalf("blank gameweek score = %v, want 0", scores[5])
	}
}

func TestPredictPlayersScalesByAvailability(t *testing.T) {
	repo := &fakeFixtureRepo{fixtures: predictionFixtures()}
	svc := NewPredictionService(repo, PredictionConfig{Horizon: 2})

	fit := universeRecord(1, 1, 3, 80, 60, "5.0")
	doubt := universeRecord(2, 1, 3, 80, 60, "5.0")
	chance := 50
	doubt.ChanceOfPlayingNextRound = &chance

	scores, err := svc.PredictPlayers(context.Background(), []player.Player{fit, doubt}, 7)
	if err != nil {
		t.Fatalf("PredictPlayers failed: %v", err)
	}
	if scores[2] >= scores[1] {
		t.Fatalf("50%% doubt should halve the score: fit=%v doubt=%v", scores[1], scores[2])
	}
}

func TestPredictPlayersJitterIsSeedDeterministic(t *testing.T) {
	repo := &fakeFixtureRepo{fixtures: predictionFixtures()}
	players := []player.Player{
		universeRecord(1, 1, 3, 80, 60, "5.0"),
		universeRecord(2, 2, 4, 95, 80, "6.1"),
	}

	first := NewPredictionService(repo, PredictionConfig{Horizon: 2, JitterEnabled: true, JitterSeed: 42})
	second := NewPredictionService(repo, PredictionConfig{Horizon: 2, JitterEnabled: true, JitterSeed: 42})

	a, err := first.PredictPlayers(context.Background(), players, 7)
	if err != nil {
		t.Fatalf("PredictPlayers failed: %v", err)
	}
	b, err := second.PredictPlayers(context.Background(), players, 7)
	if err != nil {
		t.Fatalf("PredictPlayers failed: %v", err)
	}

	for id := range a {
		if a[id] != b[id] {
			t.Fatalf("same seed must reproduce scores: player=%d %v vs %v", id, a[id], b[id])
		}
	}

	disabled := NewPredictionService(repo, PredictionConfig{Horizon: 2})
	c, err := disabled.PredictPlayers(context.Background(), players, 7)
	if err != nil {
		t.Fatalf("PredictPlayers failed: %v", err)
	}
	if c[1] == a[1] && c[2] == a[2] {
		t.Fatal("jitter should move scores off the deterministic baseline")
	}
}
