package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /v1/formations", handler.ListFormations)
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("POST /v1/teams", handler.CreateTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("PUT /v1/teams/{teamID}", handler.UpdateTeam)
	mux.HandleFunc("DELETE /v1/teams/{teamID}", handler.DeleteTeam)

	mux.HandleFunc("GET /v1/teams/{teamID}/players", handler.ListPlayersByTeam)
	mux.HandleFunc("POST /v1/teams/{teamID}/players", handler.CreatePlayer)
	mux.HandleFunc("PUT /v1/players/{playerID}", handler.UpdatePlayer)
	mux.HandleFunc("DELETE /v1/players/{playerID}", handler.DeletePlayer)

	mux.HandleFunc("GET /v1/teams/{teamID}/matches", handler.ListMatchesByTeam)
	mux.HandleFunc("POST /v1/teams/{teamID}/matches", handler.CreateMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("PUT /v1/matches/{matchID}", handler.UpdateMatch)
	mux.HandleFunc("DELETE /v1/matches/{matchID}", handler.DeleteMatch)
}

func registerLineupRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches/{matchID}/systems", handler.ListSystemsForMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/lineups", handler.ListLineupsByMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/stats", handler.GetMatchStats)
	mux.HandleFunc("POST /v1/matches/{matchID}/drafts", handler.StartDraft)

	mux.HandleFunc("GET /v1/lineups/{lineupID}", handler.GetLineup)
	mux.HandleFunc("DELETE /v1/lineups/{lineupID}", handler.DeleteLineup)
	mux.HandleFunc("POST /v1/lineups/{lineupID}/drafts", handler.EditDraft)

	mux.HandleFunc("GET /v1/drafts", handler.ListDrafts)
	mux.HandleFunc("GET /v1/drafts/{draftID}", handler.GetDraft)
	mux.HandleFunc("DELETE /v1/drafts/{draftID}", handler.DiscardDraft)
	mux.HandleFunc("POST /v1/drafts/{draftID}/select", handler.SelectBenchPlayer)
	mux.HandleFunc("POST /v1/drafts/{draftID}/assign", handler.AssignSlot)
	mux.HandleFunc("POST /v1/drafts/{draftID}/unassign", handler.UnassignSlot)
	mux.HandleFunc("POST /v1/drafts/{draftID}/commit", handler.CommitDraft)
}
