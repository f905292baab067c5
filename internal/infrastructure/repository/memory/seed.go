package memory

import (
	"time"

	"github.com/fplmate/fpl-companion/internal/domain/fixture"
	"github.com/fplmate/fpl-companion/internal/domain/player"
	"github.com/fplmate/fpl-companion/internal/domain/team"
)

// Seed data gives local development something to browse before the first
// sync against the live game API. Prices are in raw tenths, as upstream
// delivers them.

func SeedClubs() []team.Club {
	return []team.Club{
		{ID: 1, Name: "Arsenal", ShortName: "ARS", StrengthOverallHome: 1350, StrengthOverallAway: 1330},
		{ID: 2, Name: "Liverpool", ShortName: "LIV", StrengthOverallHome: 1360, StrengthOverallAway: 1340},
		{ID: 3, Name: "Manchester City", ShortName: "MCI", StrengthOverallHome: 1355, StrengthOverallAway: 1345},
		{ID: 4, Name: "Brentford", ShortName: "BRE", StrengthOverallHome: 1120, StrengthOverallAway: 1090},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: 1, Code: 223094, WebName: "Raya", TeamID: 1, ElementType: 1, NowCost: 56, TotalPoints: 98, CleanSheets: 11, Minutes: 3060, Form: "4.2"},
		{ID: 2, Code: 154561, WebName: "Alisson", TeamID: 2, ElementType: 1, NowCost: 55, TotalPoints: 84, CleanSheets: 9, Minutes: 2790, Form: "3.8"},
		{ID: 3, Code: 220627, WebName: "Saliba", TeamID: 1, ElementType: 2, NowCost: 62, TotalPoints: 110, CleanSheets: 12, Minutes: 3150, Form: "4.6"},
		{ID: 4, Code: 244723, WebName: "Van Dijk", TeamID: 2, ElementType: 2, NowCost: 64, TotalPoints: 104, CleanSheets: 10, Minutes: 3105, Form: "4.1"},
		{ID: 5, Code: 441164, WebName: "Gvardiol", TeamID: 3, ElementType: 2, NowCost: 60, TotalPoints: 96, GoalsScored: 4, Minutes: 2880, Form: "4.4"},
		{ID: 6, Code: 447203, WebName: "Collins", TeamID: 4, ElementType: 2, NowCost: 45, TotalPoints: 71, CleanSheets: 6, Minutes: 3015, Form: "3.2"},
		{ID: 7, Code: 223340, WebName: "Saka", TeamID: 1, ElementType: 3, NowCost: 102, TotalPoints: 168, GoalsScored: 14, Assists: 10, Minutes: 2970, Form: "6.9"},
		{ID: 8, Code: 118748, WebName: "Salah", TeamID: 2, ElementType: 3, NowCost: 131, TotalPoints: 211, GoalsScored: 21, Assists: 13, Minutes: 3085, Form: "8.3"},
		{ID: 9, Code: 445044, WebName: "Foden", TeamID: 3, ElementType: 3, NowCost: 95, TotalPoints: 149, GoalsScored: 12, Assists: 8, Minutes: 2745, Form: "5.7"},
		{ID: 10, Code: 488404, WebName: "Mbeumo", TeamID: 4, ElementType: 3, NowCost: 78, TotalPoints: 132, GoalsScored: 11, Assists: 6, Minutes: 2930, Form: "5.4"},
		{ID: 11, Code: 438098, WebName: "Havertz", TeamID: 1, ElementType: 4, NowCost: 81, TotalPoints: 121, GoalsScored: 13, Assists: 5, Minutes: 2835, Form: "5.1"},
		{ID: 12, Code: 447289, WebName: "Haaland", TeamID: 3, ElementType: 4, NowCost: 148, TotalPoints: 205, GoalsScored: 27, Assists: 4, Minutes: 2790, Form: "7.8"},
		{ID: 13, Code: 476055, WebName: "Wissa", TeamID: 4, ElementType: 4, NowCost: 61, TotalPoints: 109, GoalsScored: 12, Assists: 3, Minutes: 2610, Form: "4.8"},
	}
}

func SeedFixtures() []fixture.Fixture {
	kickoff := func(day, hour int) *time.Time {
		t := time.Date(2026, 9, day, hour, 0, 0, 0, time.UTC)
		return &t
	}

	return []fixture.Fixture{
		{ID: 101, Event: 1, HomeTeamID: 1, AwayTeamID: 4, HomeDifficulty: 2, AwayDifficulty: 4, KickoffTime: kickoff(12, 14)},
		{ID: 102, Event: 1, HomeTeamID: 2, AwayTeamID: 3, HomeDifficulty: 4, AwayDifficulty: 4, KickoffTime: kickoff(12, 16)},
		{ID: 103, Event: 2, HomeTeamID: 3, AwayTeamID: 1, HomeDifficulty: 3, AwayDifficulty: 4, KickoffTime: kickoff(19, 14)},
		{ID: 104, Event: 2, HomeTeamID: 4, AwayTeamID: 2, HomeDifficulty: 5, AwayDifficulty: 2, KickoffTime: kickoff(19, 16)},
		{ID: 105, Event: 3, HomeTeamID: 1, AwayTeamID: 2, HomeDifficulty: 4, AwayDifficulty: 4, KickoffTime: kickoff(26, 15)},
		{ID: 106, Event: 3, HomeTeamID: 3, AwayTeamID: 4, HomeDifficulty: 2, AwayDifficulty: 5, KickoffTime: kickoff(26, 17)},
	}
}
