package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/fplmate/fpl-companion/internal/domain/team"
	"github.com/fplmate/fpl-companion/internal/platform/logging"
	"github.com/fplmate/fpl-companion/internal/usecase"
)

type Handler struct {
	playerService     *usecase.PlayerService
	squadService      *usecase.SquadService
	suggestionService *usecase.SuggestionService
	syncService       *usecase.SyncService
	clubs             *team.Registry
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	squadService *usecase.SquadService,
	suggestionService *usecase.SuggestionService,
	syncService *usecase.SyncService,
	clubs *team.Registry,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		playerService:     playerService,
		squadService:      squadService,
		suggestionService: suggestionService,
		syncService:       syncService,
		clubs:             clubs,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func sessionID(ctx context.Context) (string, error) {
	id, ok := sessionIDFromContext(ctx)
	if !ok {
		return "", fmt.Errorf("%w: session id is missing from request context", usecase.ErrUnauthorized)
	}

	return id, nil
}
