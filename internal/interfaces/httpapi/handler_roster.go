package httpapi

import (
	"net/http"

	"github.com/fbsn11/team-management-app/internal/usecase"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListTeams")
	defer span.End()

	teams, err := h.teamService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "CreateTeam")
	defer span.End()

	var req teamRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Create(ctx, usecase.CreateTeamInput{
		Name:               req.Name,
		DefaultPlayerCount: req.DefaultPlayerCount,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(item))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetTeam")
	defer span.End()

	item, err := h.teamService.Get(ctx, r.PathValue("teamID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "UpdateTeam")
	defer span.End()

	var req teamRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.Update(ctx, usecase.UpdateTeamInput{
		ID:                 r.PathValue("teamID"),
		Name:               req.Name,
		DefaultPlayerCount: req.DefaultPlayerCount,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update team failed", "team_id", r.PathValue("teamID"), "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "DeleteTeam")
	defer span.End()

	if err := h.teamService.Delete(ctx, r.PathValue("teamID")); err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "team_id", r.PathValue("teamID"), "error", err)
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListPlayersByTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListPlayersByTeam")
	defer span.End()

	players, err := h.playerService.ListByTeam(ctx, r.PathValue("teamID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "CreatePlayer")
	defer span.End()

	var req playerRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.Create(ctx, usecase.CreatePlayerInput{
		TeamID: r.PathValue("teamID"),
		Name:   req.Name,
		Memo:   req.Memo,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "team_id", r.PathValue("teamID"), "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(item))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "UpdatePlayer")
	defer span.End()

	var req playerRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.playerService.Update(ctx, usecase.UpdatePlayerInput{
		ID:   r.PathValue("playerID"),
		Name: req.Name,
		Memo: req.Memo,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "DeletePlayer")
	defer span.End()

	if err := h.playerService.Delete(ctx, r.PathValue("playerID")); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", r.PathValue("playerID"), "error", err)
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListMatchesByTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListMatchesByTeam")
	defer span.End()

	matches, err := h.matchService.ListByTeam(ctx, r.PathValue("teamID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "CreateMatch")
	defer span.End()

	var req matchRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Create(ctx, usecase.CreateMatchInput{
		TeamID:            r.PathValue("teamID"),
		Datetime:          req.Datetime,
		Title:             req.Title,
		Memo:              req.Memo,
		PlayerCount:       req.PlayerCount,
		SelectedPlayerIDs: req.SelectedPlayerIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "team_id", r.PathValue("teamID"), "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(item))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetMatch")
	defer span.End()

	item, err := h.matchService.Get(ctx, r.PathValue("matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "UpdateMatch")
	defer span.End()

	var req matchRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Update(ctx, usecase.UpdateMatchInput{
		ID:                r.PathValue("matchID"),
		Datetime:          req.Datetime,
		Title:             req.Title,
		Memo:              req.Memo,
		PlayerCount:       req.PlayerCount,
		SelectedPlayerIDs: req.SelectedPlayerIDs,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "DeleteMatch")
	defer span.End()

	if err := h.matchService.Delete(ctx, r.PathValue("matchID")); err != nil {
		h.logger.WarnContext(ctx, "delete match failed", "match_id", r.PathValue("matchID"), "error", err)
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
