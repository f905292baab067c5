package squad

import (
	"testing"

	"github.com/fplmate/fpl-companion/internal/domain/player"
)

type nopLogger struct{}

func (nopLogger) Error(string, ...any) {}

func predictedPlayer(id, clubID int64, pos player.Position, price, predicted float64) Player {
	p := testSquadPlayer(id, clubID, pos, price)
	p.PredictedPoints = &predicted
	return p
}

func TestSuggestPrefersBiggestImprovement(t *testing.T) {
	s := NewSuggester(DefaultRules(), nopLogger{})

	current := []Player{
		predictedPlayer(1, 1, player.PositionForward, 7.0, 2.0),
		predictedPlayer(2, 2, player.PositionMidfielder, 6.0, 5.0),
	}
	universe := []Player{
		predictedPlayer(10, 3, player.PositionForward, 7.5, 6.0),
		predictedPlayer(11, 4, player.PositionForward, 6.5, 4.0),
		predictedPlayer(12, 5, player.PositionMidfielder, 6.0, 5.5),
	}

	got := s.Suggest(current, universe, 5)
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got))
	}

	// Forward swap improves by 4.0 and must rank above the 0.5 midfield gain.
	if got[0].Out.ID != 1 || got[0].In.ID != 10 {
		t.Fatalf("top suggestion = %d->%d, want 1->10", got[0].Out.ID, got[0].In.ID)
	}
	if got[0].PointsImprovement != 4.0 {
		t.Fatalf("top improvement = %v, want 4.0", got[0].PointsImprovement)
	}

	for _, sg := range got {
		if sg.PointsImprovement <= 0 {
			t.Fatalf("greedy pass returned non-positive improvement: %+v", sg)
		}
	}
}

func TestSuggestRespectsBudget(t *testing.T) {
	s := NewSuggester(DefaultRules(), nopLogger{})

	// Valuation 99.0: only candidates up to 8.0 fit after selling the 7.0
	// forward.
	current := []Player{
		predictedPlayer(1, 1, player.PositionForward, 7.0, 2.0),
		predictedPlayer(2, 2, player.PositionGoalkeeper, 92.0, 5.0),
	}
	universe := []Player{
		predictedPlayer(10, 3, player.PositionForward, 8.5, 9.0),
		predictedPlayer(11, 4, player.PositionForward, 8.0, 6.0),
	}

	got := s.Suggest(current, universe, 5)
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}
	if got[0].In.ID != 11 {
		t.Fatalf("expected the affordable candidate 11, got %d", got[0].In.ID)
	}

	snapValuation := Round1(Valuation(current) - got[0].Out.SellValue() + got[0].In.Price)
	if snapValuation > TotalBudget {
		t.Fatalf("suggested squad valuation %v exceeds budget", snapValuation)
	}
}

func TestSuggestSkipsOwnedAndQuotaBreakingCandidates(t *testing.T) {
	s := NewSuggester(DefaultRules(), nopLogger{})

	current := []Player{
		predictedPlayer(1, 8, player.PositionDefender, 4.5, 1.0),
		predictedPlayer(2, 8, player.PositionDefender, 4.5, 3.0),
		predictedPlayer(3, 8, player.PositionMidfielder, 6.0, 3.0),
		predictedPlayer(4, 2, player.PositionDefender, 4.5, 1.5),
	}
	universe := []Player{
		// Already owned.
		predictedPlayer(2, 8, player.PositionDefender, 4.5, 9.0),
		// Would be a fourth club-8 player once the club-2 defender leaves.
		predictedPlayer(20, 8, player.PositionDefender, 4.5, 9.0),
		// Legal: replaces a club-8 defender, keeping the count at 3.
		predictedPlayer(21, 9, player.PositionDefender, 4.5, 8.0),
	}

	got := s.Suggest(current, universe, 5)
	if len(got) == 0 {
		t.Fatal("expected at least one suggestion")
	}
	for _, sg := range got {
		if sg.In.ID == 2 {
			t.Fatal("owned player must not be suggested")
		}
		if sg.Out.ClubID != 8 && sg.In.ClubID == 8 {
			t.Fatalf("club quota breached by %d->%d", sg.Out.ID, sg.In.ID)
		}
	}
}

func TestSuggestOneSuggestionPerOutgoing(t *testing.T) {
	s := NewSuggester(DefaultRules(), nopLogger{})

	current := []Player{
		predictedPlayer(1, 1, player.PositionForward, 7.0, 1.0),
	}
	universe := []Player{
		predictedPlayer(10, 2, player.PositionForward, 7.0, 5.0),
		predictedPlayer(11, 3, player.PositionForward, 7.0, 4.0),
	}

	got := s.Suggest(current, universe, 5)
	if len(got) != 1 {
		t.Fatalf("expected one suggestion per outgoing player, got %d", len(got))
	}
	if got[0].In.ID != 10 {
		t.Fatalf("expected best candidate 10, got %d", got[0].In.ID)
	}
}

func TestSuggestFallbackAcceptsNonImprovingSwap(t *testing.T) {
	s := NewSuggester(DefaultRules(), nopLogger{})

	current := []Player{
		predictedPlayer(1, 1, player.PositionForward, 7.0, 5.0),
	}
	// Only a weaker forward exists; the greedy pass finds nothing.
	universe := []Player{
		predictedPlayer(10, 2, player.PositionForward, 6.5, 3.0),
	}

	got := s.Suggest(current, universe, 5)
	if len(got) != 1 {
		t.Fatalf("expected fallback suggestion, got %d", len(got))
	}
	if got[0].In.ID != 10 {
		t.Fatalf("fallback candidate = %d, want 10", got[0].In.ID)
	}
	if got[0].PointsImprovement != -2.0 {
		t.Fatalf("fallback improvement = %v, want -2.0", got[0].PointsImprovement)
	}
}

func TestSuggestUsesTotalPointsProxyForUniverse(t *testing.T) {
	s := NewSuggester(DefaultRules(), nopLogger{})

	current := []Player{
		predictedPlayer(1, 1, player.PositionMidfielder, 6.0, 1.0),
	}
	// No prediction attached, but 80 season points imply a proxy of 8.0.
	proxy := testSquadPlayer(10, 2, player.PositionMidfielder, 6.0)
	proxy.TotalPoints = 80
	universe := []Player{proxy}

	got := s.Suggest(current, universe, 5)
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}
	if got[0].PointsImprovement != 7.0 {
		t.Fatalf("improvement = %v, want 7.0 from the total_points proxy", got[0].PointsImprovement)
	}
}

func TestSuggestEvaluatesDeadwoodFirst(t *testing.T) {
	s := NewSuggester(DefaultRules(), nopLogger{})

	// Six squad members: only the first five in evaluation order are
	// scanned, and the unpredicted defender sorts ahead of all of them.
	current := []Player{
		predictedPlayer(1, 1, player.PositionForward, 7.0, 4.0),
		predictedPlayer(2, 2, player.PositionForward, 7.0, 4.5),
		predictedPlayer(3, 3, player.PositionMidfielder, 6.0, 4.0),
		predictedPlayer(4, 4, player.PositionMidfielder, 6.0, 4.2),
		predictedPlayer(5, 5, player.PositionMidfielder, 6.0, 4.4),
		testSquadPlayer(6, 6, player.PositionDefender, 4.5),
	}
	universe := []Player{
		predictedPlayer(20, 7, player.PositionDefender, 4.5, 3.0),
	}

	got := s.Suggest(current, universe, 5)
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}
	if got[0].Out.ID != 6 {
		t.Fatalf("expected the unpredicted defender to be replaced first, got out=%d", got[0].Out.ID)
	}
}

func TestSuggestEmptyInputs(t *testing.T) {
	s := NewSuggester(DefaultRules(), nopLogger{})

	if got := s.Suggest(nil, nil, 5); got != nil {
		t.Fatalf("empty squad should yield nil, got %v", got)
	}

	current := []Player{predictedPlayer(1, 1, player.PositionForward, 7.0, 2.0)}
	if got := s.Suggest(current, nil, 0); got != nil {
		t.Fatalf("zero limit should yield nil, got %v", got)
	}
}
