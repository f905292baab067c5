package httpapi

import (
	"net/http"

	"github.com/fplmate/fpl-companion/internal/platform/id"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/clubs", handler.ListClubs)
}

func registerSquadRoutes(mux *http.ServeMux, handler *Handler, sessions id.Generator) {
	mux.Handle("GET /v1/squad", WithSession(sessions, http.HandlerFunc(handler.GetSquad)))
	mux.Handle("DELETE /v1/squad", WithSession(sessions, http.HandlerFunc(handler.ClearSquad)))
	mux.Handle("POST /v1/squad/players", WithSession(sessions, http.HandlerFunc(handler.AddSquadPlayer)))
	mux.Handle("DELETE /v1/squad/players/{playerID}", WithSession(sessions, http.HandlerFunc(handler.RemoveSquadPlayer)))
	mux.Handle("POST /v1/squad/transfers", WithSession(sessions, http.HandlerFunc(handler.TransferSquadPlayer)))
	mux.Handle("POST /v1/squad/import", WithSession(sessions, http.HandlerFunc(handler.ImportSquad)))
	mux.Handle("GET /v1/squad/suggestions", WithSession(sessions, http.HandlerFunc(handler.ListSuggestions)))
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, syncToken string) {
	mux.Handle("POST /v1/internal/sync", RequireSyncToken(syncToken, http.HandlerFunc(handler.RunSync)))
}
