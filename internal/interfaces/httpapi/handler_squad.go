package httpapi

import (
	"context"
	"net/http"

	"github.com/fplmate/fpl-companion/internal/domain/squad"
	"github.com/fplmate/fpl-companion/internal/domain/team"
)

func (h *Handler) GetSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSquad")
	defer span.End()

	session, err := sessionID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snap, err := h.squadService.GetSquad(ctx, session)
	if err != nil {
		h.logger.WarnContext(ctx, "get squad failed", "session_id", session, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(ctx, snap, h.clubs))
}

func (h *Handler) AddSquadPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddSquadPlayer")
	defer span.End()

	session, err := sessionID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req addPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	added, snap, err := h.squadService.AddPlayer(ctx, session, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "add squad player failed", "session_id", session, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, squadMutationDTO{
		Player: squadPlayerToDTO(ctx, added, h.clubs),
		Squad:  snapshotToDTO(ctx, snap, h.clubs),
	})
}

func (h *Handler) RemoveSquadPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveSquadPlayer")
	defer span.End()

	session, err := sessionID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	removed, snap, err := h.squadService.RemovePlayer(ctx, session, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "remove squad player failed", "session_id", session, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadRemovalDTO{
		Removed: removed,
		Squad:   snapshotToDTO(ctx, snap, h.clubs),
	})
}

func (h *Handler) TransferSquadPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TransferSquadPlayer")
	defer span.End()

	session, err := sessionID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req transferRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	newBank, snap, err := h.squadService.Transfer(ctx, session, req.OutPlayerID, req.InPlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "transfer failed",
			"session_id", session,
			"out_player_id", req.OutPlayerID,
			"in_player_id", req.InPlayerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, transferResultDTO{
		NewBank: newBank,
		Squad:   snapshotToDTO(ctx, snap, h.clubs),
	})
}

func (h *Handler) ClearSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearSquad")
	defer span.End()

	session, err := sessionID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.squadService.ClearSquad(ctx, session); err != nil {
		h.logger.WarnContext(ctx, "clear squad failed", "session_id", session, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"cleared": true})
}

func (h *Handler) ImportSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportSquad")
	defer span.End()

	session, err := sessionID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req importEntryRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snap, err := h.squadService.ImportEntry(ctx, session, req.EntryID, req.Event)
	if err != nil {
		h.logger.WarnContext(ctx, "import entry failed",
			"session_id", session,
			"entry_id", req.EntryID,
			"event", req.Event,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(ctx, snap, h.clubs))
}

type addPlayerRequest struct {
	PlayerID int64 `json:"player_id" validate:"required,gt=0"`
}

type transferRequest struct {
	OutPlayerID int64 `json:"out_player_id" validate:"required,gt=0"`
	InPlayerID  int64 `json:"in_player_id" validate:"required,gt=0"`
}

type importEntryRequest struct {
	EntryID int64 `json:"entry_id" validate:"required,gt=0"`
	Event   int   `json:"event" validate:"gte=0"`
}

type squadSnapshotDTO struct {
	Players   []squadPlayerDTO `json:"players"`
	Bank      float64          `json:"bank"`
	TeamValue float64          `json:"team_value"`
	Size      int              `json:"size"`
	Complete  bool             `json:"complete"`
}

type squadPlayerDTO struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	ClubID          int64    `json:"club_id"`
	Club            string   `json:"club"`
	Position        string   `json:"position"`
	Price           float64  `json:"price"`
	PurchasePrice   float64  `json:"purchase_price"`
	SellingPrice    float64  `json:"selling_price"`
	TotalPoints     int      `json:"total_points"`
	Form            string   `json:"form"`
	PredictedPoints *float64 `json:"predicted_points,omitempty"`
	IsCaptain       bool     `json:"is_captain,omitempty"`
	IsViceCaptain   bool     `json:"is_vice_captain,omitempty"`
}

type squadMutationDTO struct {
	Player squadPlayerDTO   `json:"player"`
	Squad  squadSnapshotDTO `json:"squad"`
}

type squadRemovalDTO struct {
	Removed bool             `json:"removed"`
	Squad   squadSnapshotDTO `json:"squad"`
}

type transferResultDTO struct {
	NewBank float64          `json:"new_bank"`
	Squad   squadSnapshotDTO `json:"squad"`
}

func snapshotToDTO(ctx context.Context, snap squad.Snapshot, clubs *team.Registry) squadSnapshotDTO {
	ctx, span := startSpan(ctx, "httpapi.snapshotToDTO")
	defer span.End()

	players := make([]squadPlayerDTO, 0, len(snap.Players))
	for _, p := range snap.Players {
		players = append(players, squadPlayerToDTO(ctx, p, clubs))
	}

	return squadSnapshotDTO{
		Players:   players,
		Bank:      snap.Bank,
		TeamValue: snap.TeamValue,
		Size:      snap.Size,
		Complete:  snap.Complete,
	}
}

func squadPlayerToDTO(ctx context.Context, p squad.Player, clubs *team.Registry) squadPlayerDTO {
	ctx, span := startSpan(ctx, "httpapi.squadPlayerToDTO")
	defer span.End()

	return squadPlayerDTO{
		ID:              p.ID,
		Name:            p.Name,
		ClubID:          p.ClubID,
		Club:            clubs.ShortName(p.ClubID),
		Position:        string(p.Position),
		Price:           p.Price,
		PurchasePrice:   p.PurchasePrice,
		SellingPrice:    p.SellValue(),
		TotalPoints:     p.TotalPoints,
		Form:            p.Form,
		PredictedPoints: p.PredictedPoints,
		IsCaptain:       p.IsCaptain,
		IsViceCaptain:   p.IsViceCaptain,
	}
}
