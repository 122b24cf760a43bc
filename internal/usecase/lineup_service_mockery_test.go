package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fbsn11/team-management-app/internal/domain/formation"
	"github.com/fbsn11/team-management-app/internal/domain/lineup"
	"github.com/fbsn11/team-management-app/internal/domain/match"
	"github.com/fbsn11/team-management-app/internal/domain/player"
	lineupmock "github.com/fbsn11/team-management-app/internal/mocks/domain/lineup"
	matchmock "github.com/fbsn11/team-management-app/internal/mocks/domain/match"
	playermock "github.com/fbsn11/team-management-app/internal/mocks/domain/player"
	idgen "github.com/fbsn11/team-management-app/internal/platform/id"
	"github.com/stretchr/testify/mock"
)

func TestLineupService_ListByMatch_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	lineupRepo := lineupmock.NewRepository(t)

	service := NewLineupService(formation.DefaultCatalog(), matchRepo, playerRepo, lineupRepo, idgen.NewSequenceGenerator("lu"), nil)
	expected := []lineup.Lineup{
		{ID: "lu-1", MatchID: "m-1", System: "3-2-1"},
		{ID: "lu-2", MatchID: "m-1", System: "2-3-1"},
	}

	matchRepo.
		On("GetByID", mock.Anything, "m-1").
		Return(match.Match{ID: "m-1", TeamID: "t-1", PlayerCount: 7}, true, nil).
		Once()
	lineupRepo.
		On("ListByMatch", mock.Anything, "m-1").
		Return(expected, nil).
		Once()

	got, err := service.ListByMatch(ctx, " m-1 ")
	if err != nil {
		t.Fatalf("list lineups: %v", err)
	}
	if len(got) != len(expected) || got[1].ID != "lu-2" {
		t.Fatalf("unexpected lineups: %+v", got)
	}
}

func TestLineupService_ListByMatch_RepositoryFailureUsingMockery(t *testing.T) {
	t.Parallel()

	matchRepo := matchmock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	lineupRepo := lineupmock.NewRepository(t)

	service := NewLineupService(formation.DefaultCatalog(), matchRepo, playerRepo, lineupRepo, idgen.NewSequenceGenerator("lu"), nil)

	matchRepo.
		On("GetByID", mock.Anything, "m-1").
		Return(match.Match{}, false, errors.New("connection reset")).
		Once()

	_, err := service.ListByMatch(context.Background(), "m-1")
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestLineupService_CommitEdit_SendsPatchUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	playerRepo := playermock.NewRepository(t)
	lineupRepo := lineupmock.NewRepository(t)

	service := NewLineupService(formation.DefaultCatalog(), matchRepo, playerRepo, lineupRepo, idgen.NewSequenceGenerator("draft"), nil)
	createdAt := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return createdAt.Add(time.Hour) }

	saved := lineup.Lineup{
		ID:                "lu-1",
		MatchID:           "m-1",
		TeamID:            "t-1",
		SelectedPlayerIDs: []string{"a", "b", "c", "d", "e"},
		System:            "1-2-1",
		Positions: []lineup.SlotAssignment{
			{Slot: "GK", PlayerID: "a", PlayerName: "A"},
			{Slot: "FP1", PlayerID: "b", PlayerName: "B"},
			{Slot: "FP2", PlayerID: "c", PlayerName: "C"},
			{Slot: "FP3", PlayerID: "d", PlayerName: "D"},
			{Slot: "FP4", PlayerID: "e", PlayerName: "E"},
		},
		CreatedAt: createdAt,
	}
	players := []player.Player{
		{ID: "a", TeamID: "t-1", Name: "A"},
		{ID: "b", TeamID: "t-1", Name: "B"},
		{ID: "c", TeamID: "t-1", Name: "C"},
		{ID: "d", TeamID: "t-1", Name: "D"},
		{ID: "e", TeamID: "t-1", Name: "E"},
	}

	lineupRepo.On("GetByID", mock.Anything, "lu-1").Return(saved, true, nil).Once()
	playerRepo.On("GetByIDs", mock.Anything, saved.SelectedPlayerIDs).Return(players, nil).Once()
	lineupRepo.
		On("Update", mock.Anything, "lu-1", mock.MatchedBy(func(p lineup.Patch) bool {
			return p.System != nil && *p.System == "1-2-1" &&
				p.Positions != nil && (*p.Positions)[0].PlayerID == "b" && (*p.Positions)[1].PlayerID == "a" &&
				p.UpdatedAt != nil && p.UpdatedAt.Equal(createdAt.Add(time.Hour))
		})).
		Return(func(_ context.Context, _ string, p lineup.Patch) (lineup.Lineup, error) {
			return p.Apply(saved), nil
		}).
		Once()

	draft, err := service.EditDraft(ctx, "lu-1")
	if err != nil {
		t.Fatalf("edit draft: %v", err)
	}
	// swap keeper and first field player
	if _, err := service.Unassign(ctx, draft.ID, 1); err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if _, err := service.SelectBenchPlayer(ctx, draft.ID, "b"); err != nil {
		t.Fatalf("select b: %v", err)
	}
	if _, err := service.Assign(ctx, draft.ID, 0); err != nil {
		t.Fatalf("assign b: %v", err)
	}
	if _, err := service.SelectBenchPlayer(ctx, draft.ID, "a"); err != nil {
		t.Fatalf("select a: %v", err)
	}
	if _, err := service.Assign(ctx, draft.ID, 1); err != nil {
		t.Fatalf("assign a: %v", err)
	}

	got, err := service.CommitDraft(ctx, draft.ID)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if got.ID != "lu-1" || !got.CreatedAt.Equal(createdAt) {
		t.Fatalf("unexpected identity: %+v", got)
	}
}
