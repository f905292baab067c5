package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/fplmate/fpl-companion/internal/domain/squad"
	"github.com/fplmate/fpl-companion/internal/domain/team"
	"github.com/fplmate/fpl-companion/internal/usecase"
)

func (h *Handler) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSuggestions")
	defer span.End()

	session, err := sessionID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	suggestions, err := h.suggestionService.Suggest(ctx, session, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "suggest transfers failed", "session_id", session, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]suggestionDTO, 0, len(suggestions))
	for _, s := range suggestions {
		items = append(items, suggestionToDTO(ctx, s, h.clubs))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type suggestionDTO struct {
	Out               squadPlayerDTO `json:"out"`
	In                squadPlayerDTO `json:"in"`
	PointsImprovement float64        `json:"points_improvement"`
	CostDelta         float64        `json:"cost_delta"`
}

func suggestionToDTO(ctx context.Context, s squad.TransferSuggestion, clubs *team.Registry) suggestionDTO {
	ctx, span := startSpan(ctx, "httpapi.suggestionToDTO")
	defer span.End()

	return suggestionDTO{
		Out:               squadPlayerToDTO(ctx, s.Out, clubs),
		In:                squadPlayerToDTO(ctx, s.In, clubs),
		PointsImprovement: s.PointsImprovement,
		CostDelta:         s.CostDelta,
	}
}
