package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerSeasonRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons", handler.ListSeasons)
	mux.HandleFunc("GET /v1/seasons/{seasonID}", handler.GetSeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/fixtures", handler.ListFixtures)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/table", handler.GetTable)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/teams/{team}/history", handler.GetTeamHistory)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/odds", handler.GetOdds)
}
