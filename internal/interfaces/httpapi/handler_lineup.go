package httpapi

import (
	"context"
	"net/http"

	"github.com/fbsn11/team-management-app/internal/domain/appearance"
	"github.com/fbsn11/team-management-app/internal/usecase"
)

// matchAppearances decorates draft and lineup responses. A stats failure
// is logged and leaves every count at zero.
func (h *Handler) matchAppearances(ctx context.Context, matchID string) map[string]appearance.Stat {
	stats, err := h.statsService.MatchStats(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "appearance stats unavailable", "match_id", matchID, "error", err)
		return nil
	}
	return appearance.ByPlayer(stats)
}

func (h *Handler) draftDTO(ctx context.Context, d usecase.Draft) draftDTO {
	return draftToDTO(d, h.matchAppearances(ctx, d.MatchID))
}

func (h *Handler) ListSystemsForMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListSystemsForMatch")
	defer span.End()

	systems, err := h.lineupService.SystemsForMatch(ctx, r.PathValue("matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]systemDTO, 0, len(systems))
	for _, s := range systems {
		items = append(items, systemToDTO(s))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListLineupsByMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListLineupsByMatch")
	defer span.End()

	lineups, err := h.lineupService.ListByMatch(ctx, r.PathValue("matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats := h.matchAppearances(ctx, r.PathValue("matchID"))
	items := make([]lineupDTO, 0, len(lineups))
	for _, l := range lineups {
		items = append(items, lineupToDTO(l, stats))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatchStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetMatchStats")
	defer span.End()

	m, err := h.matchService.Get(ctx, r.PathValue("matchID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.statsService.MatchStats(ctx, m.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "match stats failed", "match_id", m.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]statDTO, 0, len(stats))
	for _, s := range stats {
		items = append(items, statDTO{PlayerID: s.PlayerID, Name: s.Name, Total: s.Total, AsGK: s.AsGK, AsField: s.AsField})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) StartDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "StartDraft")
	defer span.End()

	var req startDraftRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	draft, err := h.lineupService.StartDraft(ctx, usecase.StartDraftInput{
		MatchID:           r.PathValue("matchID"),
		System:            req.System,
		EligiblePlayerIDs: req.EligiblePlayerIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "start draft failed", "match_id", r.PathValue("matchID"), "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, h.draftDTO(ctx, draft))
}

func (h *Handler) EditDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "EditDraft")
	defer span.End()

	draft, err := h.lineupService.EditDraft(ctx, r.PathValue("lineupID"))
	if err != nil {
		h.logger.WarnContext(ctx, "edit draft failed", "lineup_id", r.PathValue("lineupID"), "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, h.draftDTO(ctx, draft))
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetDraft")
	defer span.End()

	draft, err := h.lineupService.Draft(ctx, r.PathValue("draftID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, h.draftDTO(ctx, draft))
}

// ListDrafts reports the ids of the open drafts.
func (h *Handler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListDrafts")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.lineupService.DraftIDs())
}

func (h *Handler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "DiscardDraft")
	defer span.End()

	h.lineupService.DiscardDraft(ctx, r.PathValue("draftID"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SelectBenchPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "SelectBenchPlayer")
	defer span.End()

	var req selectPlayerRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	draft, err := h.lineupService.SelectBenchPlayer(ctx, r.PathValue("draftID"), req.PlayerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, h.draftDTO(ctx, draft))
}

func (h *Handler) AssignSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "AssignSlot")
	defer span.End()

	var req slotRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	draft, err := h.lineupService.Assign(ctx, r.PathValue("draftID"), *req.SlotIndex)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, h.draftDTO(ctx, draft))
}

func (h *Handler) UnassignSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "UnassignSlot")
	defer span.End()

	var req slotRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	draft, err := h.lineupService.Unassign(ctx, r.PathValue("draftID"), *req.SlotIndex)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, h.draftDTO(ctx, draft))
}

func (h *Handler) CommitDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "CommitDraft")
	defer span.End()

	item, err := h.lineupService.CommitDraft(ctx, r.PathValue("draftID"))
	if err != nil {
		h.logger.WarnContext(ctx, "commit draft failed", "draft_id", r.PathValue("draftID"), "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(item, h.matchAppearances(ctx, item.MatchID)))
}

func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetLineup")
	defer span.End()

	item, err := h.lineupService.GetLineup(ctx, r.PathValue("lineupID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(item, h.matchAppearances(ctx, item.MatchID)))
}

func (h *Handler) DeleteLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "DeleteLineup")
	defer span.End()

	if err := h.lineupService.DeleteLineup(ctx, r.PathValue("lineupID")); err != nil {
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
