package httpapi

import (
	"net/http"

	"github.com/fplmate/fpl-companion/internal/platform/id"
	"github.com/fplmate/fpl-companion/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	sessions id.Generator,
	logger *logging.Logger,
	corsAllowedOrigins []string,
	syncToken string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if sessions == nil {
		sessions = id.NewRandomGenerator()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerCatalogRoutes(mux, handler)
	registerSquadRoutes(mux, handler, sessions)
	registerInternalRoutes(mux, handler, syncToken)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
