package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/fplmate/fpl-companion/internal/domain/player"
	"github.com/fplmate/fpl-companion/internal/domain/squad"
	"github.com/fplmate/fpl-companion/internal/domain/team"
	"github.com/fplmate/fpl-companion/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	filter, err := playerFilterFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.playerService.ListPlayers(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(ctx, p, h.clubs))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, item, h.clubs))
}

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubs")
	defer span.End()

	clubs, err := h.playerService.ListClubs(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list clubs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]clubDTO, 0, len(clubs))
	for _, c := range clubs {
		items = append(items, clubToDTO(ctx, c))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func playerFilterFromQuery(r *http.Request) (usecase.PlayerFilter, error) {
	query := r.URL.Query()
	filter := usecase.PlayerFilter{
		Position: strings.TrimSpace(query.Get("position")),
		Search:   strings.TrimSpace(query.Get("search")),
	}

	if raw := strings.TrimSpace(query.Get("club_id")); raw != "" {
		clubID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || clubID <= 0 {
			return usecase.PlayerFilter{}, fmt.Errorf("%w: club_id must be a positive integer", usecase.ErrInvalidInput)
		}
		filter.ClubID = clubID
	}
	if raw := strings.TrimSpace(query.Get("max_price")); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil || maxPrice <= 0 {
			return usecase.PlayerFilter{}, fmt.Errorf("%w: max_price must be a positive number", usecase.ErrInvalidInput)
		}
		filter.MaxPrice = maxPrice
	}
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return usecase.PlayerFilter{}, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput)
		}
		filter.Limit = limit
	}
	if raw := strings.TrimSpace(query.Get("offset")); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return usecase.PlayerFilter{}, fmt.Errorf("%w: offset must be a non-negative integer", usecase.ErrInvalidInput)
		}
		filter.Offset = offset
	}

	return filter, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}

	return id, nil
}

type playerDTO struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	FirstName       string  `json:"first_name,omitempty"`
	SecondName      string  `json:"second_name,omitempty"`
	ClubID          int64   `json:"club_id"`
	Club            string  `json:"club"`
	Position        string  `json:"position"`
	Price           float64 `json:"price"`
	TotalPoints     int     `json:"total_points"`
	Form            string  `json:"form"`
	GoalsScored     int     `json:"goals_scored"`
	Assists         int     `json:"assists"`
	CleanSheets     int     `json:"clean_sheets"`
	Minutes         int     `json:"minutes"`
	ChanceOfPlaying *int    `json:"chance_of_playing,omitempty"`
}

type clubDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

func playerToDTO(ctx context.Context, v player.Player, clubs *team.Registry) playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	position := ""
	if pos, err := player.PositionFromElementType(v.ElementType); err == nil {
		position = string(pos)
	}

	return playerDTO{
		ID:              v.ID,
		Name:            v.DisplayName(),
		FirstName:       v.FirstName,
		SecondName:      v.SecondName,
		ClubID:          v.TeamID,
		Club:            clubs.ShortName(v.TeamID),
		Position:        position,
		Price:           squad.ResolvePrice(v),
		TotalPoints:     v.TotalPoints,
		Form:            v.Form,
		GoalsScored:     v.GoalsScored,
		Assists:         v.Assists,
		CleanSheets:     v.CleanSheets,
		Minutes:         v.Minutes,
		ChanceOfPlaying: v.ChanceOfPlayingNextRound,
	}
}

func clubToDTO(ctx context.Context, v team.Club) clubDTO {
	ctx, span := startSpan(ctx, "httpapi.clubToDTO")
	defer span.End()

	return clubDTO{
		ID:        v.ID,
		Name:      v.Name,
		ShortName: v.ShortName,
	}
}
