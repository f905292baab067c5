package squad

import (
	"math"

	"github.com/fplmate/fpl-companion/internal/domain/player"
)

// MinPrice is the fallback floor when no usable cost field exists. No player
// in the game is priced below it, so a zero price is always a data defect.
const MinPrice = 4.0

// tenthsThreshold separates already-unit values (7.5) from raw tenths (75).
// The boundary is load-bearing for existing data; do not change it without
// retagging the upstream cost fields.
const tenthsThreshold = 20.0

func normalizeUnits(v float64) float64 {
	if v > tenthsThreshold {
		v = v / 10
	}

	return Round1(v)
}

// ResolvePrice resolves the current price from whichever cost field the
// record carries: an explicit price, then now_cost, then selling_price.
// Unresolvable or zero prices fall back to MinPrice.
func ResolvePrice(rec player.Player) float64 {
	if rec.Price != nil {
		if v := normalizeUnits(*rec.Price); v > 0 {
			return v
		}
	}
	if rec.NowCost > 0 {
		if v := normalizeUnits(float64(rec.NowCost)); v > 0 {
			return v
		}
	}
	if rec.SellingPrice != nil {
		if v := normalizeUnits(*rec.SellingPrice); v > 0 {
			return v
		}
	}

	return MinPrice
}

// ResolvePurchasePrice prefers an explicit purchase price (import case),
// falling back to the given current price.
func ResolvePurchasePrice(rec player.Player, fallback float64) float64 {
	if rec.PurchasePrice != nil {
		if v := normalizeUnits(*rec.PurchasePrice); v > 0 {
			return v
		}
	}

	return fallback
}

// ResolveSellingPrice prefers an explicit selling price (import case),
// falling back to the given current price.
func ResolveSellingPrice(rec player.Player, fallback float64) float64 {
	if rec.SellingPrice != nil {
		if v := normalizeUnits(*rec.SellingPrice); v > 0 {
			return v
		}
	}

	return fallback
}

// CalculateSellingPrice applies the FPL sell rule: losses pass straight
// through, profit is halved and rounded down to the nearest 0.1 before being
// added back to the purchase price. Computed on integer tenths so the floor
// division is exact.
func CalculateSellingPrice(purchasePrice, currentPrice float64) float64 {
	if currentPrice <= purchasePrice {
		return Round1(currentPrice)
	}

	purchaseTenths := int(math.Round(purchasePrice * 10))
	currentTenths := int(math.Round(currentPrice * 10))
	profitTenths := currentTenths - purchaseTenths

	return float64(purchaseTenths+profitTenths/2) / 10
}

// FromRecord formats a raw player record into a squad-ready player. For a
// fresh (non-imported) record, purchase and selling price both resolve to the
// current price: a player just bought has no accrued profit yet.
func FromRecord(rec player.Player) (Player, error) {
	position, err := player.PositionFromElementType(rec.ElementType)
	if err != nil {
		return Player{}, err
	}
	price := ResolvePrice(rec)

	return Player{
		ID:              rec.ID,
		Code:            rec.Code,
		Name:            rec.DisplayName(),
		FirstName:       rec.FirstName,
		SecondName:      rec.SecondName,
		ClubID:          rec.TeamID,
		Position:        position,
		Price:           price,
		PurchasePrice:   ResolvePurchasePrice(rec, price),
		SellingPrice:    ResolveSellingPrice(rec, price),
		TotalPoints:     rec.TotalPoints,
		GoalsScored:     rec.GoalsScored,
		Assists:         rec.Assists,
		CleanSheets:     rec.CleanSheets,
		Minutes:         rec.Minutes,
		Form:            rec.Form,
		ChanceOfPlaying: rec.ChanceOfPlayingNextRound,
	}, nil
}
