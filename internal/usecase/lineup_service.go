package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fbsn11/team-management-app/internal/domain/formation"
	"github.com/fbsn11/team-management-app/internal/domain/lineup"
	"github.com/fbsn11/team-management-app/internal/domain/match"
	"github.com/fbsn11/team-management-app/internal/domain/player"
	idgen "github.com/fbsn11/team-management-app/internal/platform/id"
	"github.com/fbsn11/team-management-app/internal/platform/logging"
)

// StartDraftInput begins a new lineup. Empty EligiblePlayerIDs means every
// player selected for the match.
type StartDraftInput struct {
	MatchID           string
	System            string
	EligiblePlayerIDs []string
}

// Draft is an in-progress lineup. LineupID is set when editing.
type Draft struct {
	ID       string              `json:"id"`
	MatchID  string              `json:"matchId"`
	LineupID string              `json:"lineupId,omitempty"`
	State    lineup.BuilderState `json:"state"`
}

type draftEntry struct {
	id      string
	builder *lineup.Builder
	base    lineup.Lineup
}

func (d *draftEntry) view() Draft {
	out := Draft{ID: d.id, MatchID: d.base.MatchID, State: d.builder.Snapshot()}
	if d.builder.Editing() {
		out.LineupID = d.base.ID
	}
	return out
}

// LineupService drives lineup builders and stores committed lineups.
// Drafts are transient and live only in this process.
type LineupService struct {
	catalog    *formation.Catalog
	matchRepo  match.Repository
	playerRepo player.Repository
	lineupRepo lineup.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time

	mu     sync.Mutex
	drafts map[string]*draftEntry
}

func NewLineupService(
	catalog *formation.Catalog,
	matchRepo match.Repository,
	playerRepo player.Repository,
	lineupRepo lineup.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *LineupService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LineupService{
		catalog:    catalog,
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		lineupRepo: lineupRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
		drafts:     make(map[string]*draftEntry),
	}
}

// SystemsForMatch lists the formations available for the match's player count.
func (s *LineupService) SystemsForMatch(ctx context.Context, matchID string) ([]formation.System, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.SystemsForMatch")
	defer span.End()

	m, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return nil, err
	}
	return s.catalog.SystemsFor(m.PlayerCount), nil
}

func (s *LineupService) StartDraft(ctx context.Context, input StartDraftInput) (Draft, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.StartDraft")
	defer span.End()

	m, err := getMatch(ctx, s.matchRepo, input.MatchID)
	if err != nil {
		return Draft{}, err
	}

	system, ok := s.catalog.Find(m.PlayerCount, strings.TrimSpace(input.System))
	if !ok {
		return Draft{}, fmt.Errorf("%w: %w: %q for %s", ErrInvalidInput, lineup.ErrUnknownSystem, input.System, formation.Label(m.PlayerCount))
	}

	eligibleIDs := m.SelectedPlayerIDs
	if len(input.EligiblePlayerIDs) > 0 {
		eligibleIDs, err = cleanIDs(input.EligiblePlayerIDs, "player")
		if err != nil {
			return Draft{}, err
		}
		for _, id := range eligibleIDs {
			if !m.HasParticipant(id) {
				return Draft{}, fmt.Errorf("%w: player %s is not selected for match=%s", ErrInvalidInput, id, m.ID)
			}
		}
	}

	eligible, err := s.playerRepo.GetByIDs(ctx, eligibleIDs)
	if err != nil {
		return Draft{}, persistenceError(ctx, "get players", err)
	}

	builder, err := lineup.NewBuilder(system, eligible, nil)
	if err != nil {
		return Draft{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return s.storeDraft(ctx, builder, lineup.Lineup{MatchID: m.ID, TeamID: m.TeamID})
}

// EditDraft restores a saved lineup into a builder in edit mode.
func (s *LineupService) EditDraft(ctx context.Context, lineupID string) (Draft, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.EditDraft")
	defer span.End()

	saved, err := s.GetLineup(ctx, lineupID)
	if err != nil {
		return Draft{}, err
	}

	system, ok := s.catalog.Find(len(saved.Positions), saved.System)
	if !ok {
		// the catalog no longer lists this system; the saved slots define it
		system = formation.System{Name: saved.System}
		for _, pos := range saved.Positions {
			system.Slots = append(system.Slots, pos.Slot)
		}
	}

	eligible, err := s.eligibleForEdit(ctx, saved)
	if err != nil {
		return Draft{}, err
	}

	builder, err := lineup.NewBuilder(system, eligible, saved.Positions)
	if err != nil {
		return Draft{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return s.storeDraft(ctx, builder, saved)
}

// eligibleForEdit resolves the lineup's players. Players deleted since the
// lineup was saved keep the name recorded in their slot.
func (s *LineupService) eligibleForEdit(ctx context.Context, saved lineup.Lineup) ([]player.Player, error) {
	found, err := s.playerRepo.GetByIDs(ctx, saved.SelectedPlayerIDs)
	if err != nil {
		return nil, persistenceError(ctx, "get players", err)
	}
	byID := make(map[string]player.Player, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	recorded := make(map[string]string, len(saved.Positions))
	for _, pos := range saved.Positions {
		if pos.Filled() {
			recorded[pos.PlayerID] = pos.PlayerName
		}
	}

	out := make([]player.Player, 0, len(saved.SelectedPlayerIDs))
	for _, id := range saved.SelectedPlayerIDs {
		if p, ok := byID[id]; ok {
			out = append(out, p)
			continue
		}
		if name, ok := recorded[id]; ok {
			out = append(out, player.Player{ID: id, TeamID: saved.TeamID, Name: name})
		}
	}
	return out, nil
}

func (s *LineupService) storeDraft(ctx context.Context, builder *lineup.Builder, base lineup.Lineup) (Draft, error) {
	id, err := s.idGen.NewID()
	if err != nil {
		return Draft{}, fmt.Errorf("generate draft id: %w", err)
	}
	entry := &draftEntry{id: id, builder: builder, base: base}

	s.mu.Lock()
	s.drafts[id] = entry
	view := entry.view()
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "lineup draft started",
		"draft_id", id,
		"match_id", base.MatchID,
		"lineup_id", view.LineupID,
		"system", view.State.System.Name,
	)
	return view, nil
}

func (s *LineupService) Draft(_ context.Context, draftID string) (Draft, error) {
	var out Draft
	err := s.withDraft(draftID, func(d *draftEntry) error {
		out = d.view()
		return nil
	})
	return out, err
}

func (s *LineupService) SelectBenchPlayer(ctx context.Context, draftID, playerID string) (Draft, error) {
	_, span := startUsecaseSpan(ctx, "usecase.LineupService.SelectBenchPlayer")
	defer span.End()

	var out Draft
	err := s.withDraft(draftID, func(d *draftEntry) error {
		if err := d.builder.SelectBenchPlayer(strings.TrimSpace(playerID)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		out = d.view()
		return nil
	})
	return out, err
}

func (s *LineupService) Assign(ctx context.Context, draftID string, slotIndex int) (Draft, error) {
	_, span := startUsecaseSpan(ctx, "usecase.LineupService.Assign")
	defer span.End()

	var out Draft
	err := s.withDraft(draftID, func(d *draftEntry) error {
		if err := d.builder.Assign(slotIndex); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		out = d.view()
		return nil
	})
	return out, err
}

func (s *LineupService) Unassign(ctx context.Context, draftID string, slotIndex int) (Draft, error) {
	_, span := startUsecaseSpan(ctx, "usecase.LineupService.Unassign")
	defer span.End()

	var out Draft
	err := s.withDraft(draftID, func(d *draftEntry) error {
		d.builder.Unassign(slotIndex)
		out = d.view()
		return nil
	})
	return out, err
}

// DiscardDraft drops a draft. Unknown ids are ignored.
func (s *LineupService) DiscardDraft(_ context.Context, draftID string) {
	s.mu.Lock()
	delete(s.drafts, strings.TrimSpace(draftID))
	s.mu.Unlock()
}

// CommitDraft persists the draft. A new draft creates a lineup; an edit
// draft updates the lineup it was restored from. The draft is removed on
// success and kept when validation fails.
func (s *LineupService) CommitDraft(ctx context.Context, draftID string) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.CommitDraft")
	defer span.End()

	var committed lineup.Lineup
	err := s.withDraft(draftID, func(d *draftEntry) error {
		base := d.base
		if !d.builder.Editing() {
			id, err := s.idGen.NewID()
			if err != nil {
				return fmt.Errorf("generate lineup id: %w", err)
			}
			base.ID = id
		}

		out, err := d.builder.Commit(base, s.now().UTC())
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		committed = out
		return nil
	})
	if err != nil {
		return lineup.Lineup{}, err
	}

	editing := committed.UpdatedAt != nil
	if editing {
		updated, err := s.lineupRepo.Update(ctx, committed.ID, lineup.PatchFrom(committed))
		switch {
		case errors.Is(err, lineup.ErrNotFound):
			// deleted while being edited; nothing to update
			s.logger.WarnContext(ctx, "commit edit of missing lineup ignored",
				"draft_id", draftID,
				"lineup_id", committed.ID,
				"match_id", committed.MatchID,
			)
		case err != nil:
			return lineup.Lineup{}, persistenceError(ctx, "update lineup", err)
		default:
			committed = updated
		}
	} else {
		created, err := s.lineupRepo.Create(ctx, committed)
		if err != nil {
			return lineup.Lineup{}, persistenceError(ctx, "create lineup", err)
		}
		committed = created
	}

	s.DiscardDraft(ctx, draftID)
	s.logger.InfoContext(ctx, "lineup committed",
		"lineup_id", committed.ID,
		"match_id", committed.MatchID,
		"system", committed.System,
		"edit", editing,
	)
	return committed, nil
}

// DeleteLineup removes a lineup. Deleting a missing lineup is a no-op.
func (s *LineupService) DeleteLineup(ctx context.Context, lineupID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.DeleteLineup")
	defer span.End()

	lineupID = strings.TrimSpace(lineupID)
	if lineupID == "" {
		return fmt.Errorf("%w: lineup id is required", ErrInvalidInput)
	}
	if _, found, err := s.lineupRepo.GetByID(ctx, lineupID); err == nil && !found {
		s.logger.DebugContext(ctx, "delete of missing lineup ignored", "lineup_id", lineupID)
		return nil
	}
	if err := s.lineupRepo.Delete(ctx, lineupID); err != nil {
		return persistenceError(ctx, "delete lineup", err)
	}
	return nil
}

func (s *LineupService) ListByMatch(ctx context.Context, matchID string) ([]lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.ListByMatch")
	defer span.End()

	m, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return nil, err
	}
	items, err := s.lineupRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return nil, persistenceError(ctx, "list lineups", err)
	}
	return items, nil
}

func (s *LineupService) GetLineup(ctx context.Context, lineupID string) (lineup.Lineup, error) {
	lineupID = strings.TrimSpace(lineupID)
	if lineupID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: lineup id is required", ErrInvalidInput)
	}
	item, found, err := s.lineupRepo.GetByID(ctx, lineupID)
	if err != nil {
		return lineup.Lineup{}, persistenceError(ctx, "get lineup", err)
	}
	if !found {
		return lineup.Lineup{}, fmt.Errorf("%w: lineup=%s", ErrNotFound, lineupID)
	}
	return item, nil
}

// DraftIDs lists the open drafts, mostly for diagnostics.
func (s *LineupService) DraftIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.drafts))
	for id := range s.drafts {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (s *LineupService) withDraft(draftID string, fn func(d *draftEntry) error) error {
	draftID = strings.TrimSpace(draftID)
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[draftID]
	if !ok {
		return fmt.Errorf("%w: draft=%s", ErrNotFound, draftID)
	}
	return fn(d)
}
