package postgres

import (
	"time"

	"github.com/fplmate/fpl-companion/internal/domain/player"
)

type playerTableModel struct {
	ID              int64     `db:"id"`
	Code            int64     `db:"code"`
	WebName         string    `db:"web_name"`
	FirstName       string    `db:"first_name"`
	SecondName      string    `db:"second_name"`
	TeamID          int64     `db:"team_id"`
	ElementType     int       `db:"element_type"`
	NowCost         int       `db:"now_cost"`
	TotalPoints     int       `db:"total_points"`
	GoalsScored     int       `db:"goals_scored"`
	Assists         int       `db:"assists"`
	CleanSheets     int       `db:"clean_sheets"`
	Minutes         int       `db:"minutes"`
	Form            string    `db:"form"`
	ChanceOfPlaying *int      `db:"chance_of_playing"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:                       m.ID,
		Code:                     m.Code,
		WebName:                  m.WebName,
		FirstName:                m.FirstName,
		SecondName:               m.SecondName,
		TeamID:                   m.TeamID,
		ElementType:              m.ElementType,
		NowCost:                  m.NowCost,
		TotalPoints:              m.TotalPoints,
		GoalsScored:              m.GoalsScored,
		Assists:                  m.Assists,
		CleanSheets:              m.CleanSheets,
		Minutes:                  m.Minutes,
		Form:                     m.Form,
		ChanceOfPlayingNextRound: m.ChanceOfPlaying,
	}
}
