package squad

import (
	"math"

	"github.com/fplmate/fpl-companion/internal/domain/player"
)

// TotalBudget is the fixed squad budget in currency units.
const TotalBudget = 100.0

// Player is a squad-ready player record. Prices are always in whole currency
// units with one-decimal precision, never in the provider's raw tenths.
type Player struct {
	ID            int64           `json:"id"`
	Code          int64           `json:"code"`
	Name          string          `json:"name"`
	FirstName     string          `json:"first_name,omitempty"`
	SecondName    string          `json:"second_name,omitempty"`
	ClubID        int64           `json:"club_id"`
	Position      player.Position `json:"position"`
	Price         float64         `json:"price"`
	PurchasePrice float64         `json:"purchase_price"`
	SellingPrice  float64         `json:"selling_price"`

	PredictedPoints *float64 `json:"predicted_points,omitempty"`

	TotalPoints     int    `json:"total_points"`
	GoalsScored     int    `json:"goals_scored"`
	Assists         int    `json:"assists"`
	CleanSheets     int    `json:"clean_sheets"`
	Minutes         int    `json:"minutes"`
	Form            string `json:"form"`
	ChanceOfPlaying *int   `json:"chance_of_playing,omitempty"`

	// Import-only fields, populated when the squad comes from an FPL entry.
	PositionInTeam int  `json:"position_in_team,omitempty"`
	IsCaptain      bool `json:"is_captain,omitempty"`
	IsViceCaptain  bool `json:"is_vice_captain,omitempty"`
}

// SellValue is what the owner recovers on a sale: the selling price when
// known, otherwise the current price.
func (p Player) SellValue() float64 {
	if p.SellingPrice > 0 {
		return p.SellingPrice
	}

	return p.Price
}

// Predicted returns the attached prediction, zero when none was injected.
func (p Player) Predicted() float64 {
	if p.PredictedPoints != nil {
		return *p.PredictedPoints
	}

	return 0
}

// TransferSuggestion is one proposed like-for-like swap.
type TransferSuggestion struct {
	Out               Player  `json:"out"`
	In                Player  `json:"in"`
	PointsImprovement float64 `json:"points_improvement"`
	CostDelta         float64 `json:"cost_delta"`
}

// Round1 rounds a currency amount to the 0.1-unit increment FPL trades in.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Valuation is the squad's worth at selling prices.
func Valuation(players []Player) float64 {
	var total float64
	for _, p := range players {
		total += p.SellValue()
	}

	return Round1(total)
}
