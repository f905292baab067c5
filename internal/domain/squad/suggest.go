package squad

import (
	"sort"
)

const (
	// Only the weakest few squad slots are worth scanning; deadwood floats
	// to the front of the evaluation order.
	maxEvaluatedOutgoing = 5
	// Two-stage candidate cap: take a cheap slice of the universe first,
	// then rank it and keep the best few.
	candidatePoolCap   = 50
	rankedCandidateCap = 10
	fallbackCandidates = 5
)

// SuggestLogger is the minimal logging surface the search needs to report a
// recovered failure.
type SuggestLogger interface {
	Error(msg string, args ...any)
}

// Suggester proposes one-for-one swaps that raise predicted points while
// keeping the squad valuation inside the total budget.
type Suggester struct {
	rules       Rules
	totalBudget float64
	logger      SuggestLogger
}

func NewSuggester(rules Rules, logger SuggestLogger) *Suggester {
	return &Suggester{
		rules:       rules,
		totalBudget: TotalBudget,
		logger:      logger,
	}
}

// Suggest returns up to limit suggestions, best improvement first. It never
// fails: an unexpected panic is logged and degrades to no suggestions.
func (s *Suggester) Suggest(current []Player, universe []Player, limit int) (out []TransferSuggestion) {
	defer func() {
		if rec := recover(); rec != nil {
			if s.logger != nil {
				s.logger.Error("transfer suggestion search failed", "panic", rec)
			}
			out = nil
		}
	}()

	if len(current) == 0 || limit <= 0 {
		return nil
	}

	inSquad := make(map[int64]struct{}, len(current))
	for _, p := range current {
		inSquad[p.ID] = struct{}{}
	}
	valuation := Valuation(current)

	ordered := orderForEvaluation(current)
	if len(ordered) > maxEvaluatedOutgoing {
		ordered = ordered[:maxEvaluatedOutgoing]
	}

	claimed := make(map[int64]struct{}, len(ordered))
	suggestions := make([]TransferSuggestion, 0, len(ordered))

	for _, outgoing := range ordered {
		if _, done := claimed[outgoing.ID]; done {
			continue
		}

		candidates := s.candidatePool(outgoing, current, universe, inSquad)
		outgoingPredicted := outgoing.Predicted()

		for _, cand := range candidates {
			improvement := universePredicted(cand) - outgoingPredicted
			if improvement <= 0 {
				continue
			}
			newValuation := Round1(valuation - outgoing.SellValue() + cand.Price)
			if newValuation > s.totalBudget {
				continue
			}

			suggestions = append(suggestions, TransferSuggestion{
				Out:               outgoing,
				In:                cand,
				PointsImprovement: improvement,
				CostDelta:         Round1(cand.Price - outgoing.SellValue()),
			})
			claimed[outgoing.ID] = struct{}{}
			break
		}
	}

	if len(suggestions) == 0 {
		if fb, ok := s.fallback(current, universe, inSquad, valuation); ok {
			suggestions = append(suggestions, fb)
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].PointsImprovement > suggestions[j].PointsImprovement
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	return suggestions
}

// candidatePool slices then ranks the universe: same position, not already
// owned, club quota satisfied with outgoing removed. Capped before and after
// the sort to bound work on large universes.
func (s *Suggester) candidatePool(outgoing Player, current, universe []Player, inSquad map[int64]struct{}) []Player {
	pool := make([]Player, 0, candidatePoolCap)
	for _, cand := range universe {
		if cand.Position != outgoing.Position || cand.ID == outgoing.ID {
			continue
		}
		if _, owned := inSquad[cand.ID]; owned {
			continue
		}
		if !s.rules.FitsClubQuota(cand.ClubID, outgoing, current) {
			continue
		}

		pool = append(pool, cand)
		if len(pool) >= candidatePoolCap {
			break
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return universePredicted(pool[i]) > universePredicted(pool[j])
	})
	if len(pool) > rankedCandidateCap {
		pool = pool[:rankedCandidateCap]
	}

	return pool
}

// fallback picks the single weakest squad member and accepts the best
// affordable same-position replacement even without a strict improvement, so
// a caller is never stranded with zero suggestions on a non-empty squad.
func (s *Suggester) fallback(current, universe []Player, inSquad map[int64]struct{}, valuation float64) (TransferSuggestion, bool) {
	weakest := current[0]
	for _, p := range current[1:] {
		if p.Predicted() < weakest.Predicted() {
			weakest = p
		}
	}

	pool := make([]Player, 0, fallbackCandidates)
	for _, cand := range universe {
		if cand.Position != weakest.Position || cand.ID == weakest.ID {
			continue
		}
		if _, owned := inSquad[cand.ID]; owned {
			continue
		}
		pool = append(pool, cand)
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return universePredicted(pool[i]) > universePredicted(pool[j])
	})
	if len(pool) > fallbackCandidates {
		pool = pool[:fallbackCandidates]
	}

	for _, cand := range pool {
		newValuation := Round1(valuation - weakest.SellValue() + cand.Price)
		if newValuation > s.totalBudget {
			continue
		}

		return TransferSuggestion{
			Out:               weakest,
			In:                cand,
			PointsImprovement: universePredicted(cand) - weakest.Predicted(),
			CostDelta:         Round1(cand.Price - weakest.SellValue()),
		}, true
	}

	return TransferSuggestion{}, false
}

// orderForEvaluation puts zero/unpredicted players first (the likeliest
// deadwood), then orders by position label and id for determinism.
func orderForEvaluation(current []Player) []Player {
	ordered := append([]Player(nil), current...)
	sort.SliceStable(ordered, func(i, j int) bool {
		zi, zj := ordered[i].Predicted() == 0, ordered[j].Predicted() == 0
		if zi != zj {
			return zi
		}
		if ordered[i].Position != ordered[j].Position {
			return ordered[i].Position < ordered[j].Position
		}
		return ordered[i].ID < ordered[j].ID
	})

	return ordered
}

// universePredicted normalizes a universe candidate's prediction: a record
// with season points but no prediction gets a weak total_points/10 proxy,
// anything else missing counts as zero. Squad players normalize to plain
// zero via Predicted.
func universePredicted(p Player) float64 {
	if p.PredictedPoints != nil {
		return *p.PredictedPoints
	}
	if p.TotalPoints > 0 {
		return float64(p.TotalPoints) / 10
	}

	return 0
}
