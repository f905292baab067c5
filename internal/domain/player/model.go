package player

import "fmt"

// Position represents football position categories used in squad rules.
type Position string

const (
	PositionGoalkeeper Position = "GKP"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// PositionFromElementType maps the FPL element_type code (1-4) to a Position.
func PositionFromElementType(elementType int) (Position, error) {
	switch elementType {
	case 1:
		return PositionGoalkeeper, nil
	case 2:
		return PositionDefender, nil
	case 3:
		return PositionMidfielder, nil
	case 4:
		return PositionForward, nil
	default:
		return "", fmt.Errorf("invalid element_type %d: expected 1-4", elementType)
	}
}

// Player is one element from the FPL bootstrap payload. Cost fields stay in
// the provider's raw format here; the squad package resolves them into
// currency units.
type Player struct {
	ID          int64  `json:"id"`
	Code        int64  `json:"code"`
	WebName     string `json:"web_name"`
	FirstName   string `json:"first_name,omitempty"`
	SecondName  string `json:"second_name,omitempty"`
	TeamID      int64  `json:"team"`
	ElementType int    `json:"element_type"`
	NowCost     int    `json:"now_cost"`
	TotalPoints int    `json:"total_points"`
	GoalsScored int    `json:"goals_scored"`
	Assists     int    `json:"assists"`
	CleanSheets int    `json:"clean_sheets"`
	Minutes     int    `json:"minutes"`
	Form        string `json:"form"`

	// Nullable availability percentage for the next round.
	ChanceOfPlayingNextRound *int `json:"chance_of_playing_next_round"`

	// Present only on records imported from an external squad, already in
	// currency units or raw tenths depending on the source.
	Price         *float64 `json:"price,omitempty"`
	PurchasePrice *float64 `json:"purchase_price,omitempty"`
	SellingPrice  *float64 `json:"selling_price,omitempty"`
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id must be greater than zero")
	}
	if p.WebName == "" {
		return fmt.Errorf("player web_name is required")
	}
	if p.TeamID <= 0 {
		return fmt.Errorf("player team id must be greater than zero")
	}
	if _, err := PositionFromElementType(p.ElementType); err != nil {
		return err
	}

	return nil
}

// DisplayName prefers the short web name, falling back to first/last.
func (p Player) DisplayName() string {
	if p.WebName != "" {
		return p.WebName
	}
	if p.FirstName != "" || p.SecondName != "" {
		name := p.FirstName
		if p.SecondName != "" {
			if name != "" {
				name += " "
			}
			name += p.SecondName
		}
		return name
	}

	return fmt.Sprintf("player-%d", p.ID)
}
